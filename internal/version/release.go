package version

// Release identifies an exact downloadable driver build, as returned by the
// release metadata endpoint. It is compared for equality only.
type Release string

// String returns the release identifier.
func (r Release) String() string {
	return string(r)
}

// IsZero reports whether the release is empty.
func (r Release) IsZero() bool {
	return r == ""
}
