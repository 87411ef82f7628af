package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// majorRegex matches 2 to 4 dot-separated digit groups and captures the first.
	majorRegex = regexp.MustCompile(`(\d+)(?:\.\d+){1,3}`)
	// dottedRegex matches the first full dotted-numeric token.
	dottedRegex = regexp.MustCompile(`\d+(?:\.\d+)+`)
)

// ParseError is returned when a version string contains no recognizable version.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no version found in %q", strings.TrimSpace(e.Input))
}

// ExtractMajor returns the major version from raw version output.
// The version may be surrounded by arbitrary text.
func ExtractMajor(raw string) (int, error) {
	match := majorRegex.FindStringSubmatch(raw)
	if match == nil {
		return 0, &ParseError{Input: raw}
	}

	major, err := strconv.Atoi(match[1])
	if err != nil {
		// Only reachable on digit groups that overflow int
		return 0, &ParseError{Input: raw}
	}

	return major, nil
}

// ExtractDotted returns the first dotted version token in raw, e.g. "114.0.5735.90".
func ExtractDotted(raw string) (string, error) {
	token := dottedRegex.FindString(raw)
	if token == "" {
		return "", &ParseError{Input: raw}
	}
	return token, nil
}

// Highest returns the numerically largest major version.
func Highest(majors []int) (int, bool) {
	if len(majors) == 0 {
		return 0, false
	}

	highest := majors[0]
	for _, m := range majors[1:] {
		if m > highest {
			highest = m
		}
	}
	return highest, true
}
