package browser

import "context"

// Probe is one attempt at finding the browser version.
type Probe struct {
	// Name identifies the candidate, usually an executable name or path.
	Name string
	// Check returns the raw version string, or an error if this candidate
	// is not usable.
	Check func(ctx context.Context) (string, error)
}

// FirstSuccess runs probes in order and returns the result of the first one
// that succeeds. Failing probes are skipped; skipped, if non-nil, is told
// about each failure. ok is false when every probe failed.
func FirstSuccess(ctx context.Context, probes []Probe, skipped func(p Probe, err error)) (result string, ok bool) {
	for _, p := range probes {
		if ctx.Err() != nil {
			return "", false
		}

		v, err := p.Check(ctx)
		if err == nil {
			return v, true
		}
		if skipped != nil {
			skipped(p, err)
		}
	}
	return "", false
}
