// Package route decomposes raw route strings into ordered segments of literal
// text and brace-delimited path parameters.
package route

import (
	"regexp"
	"strings"
)

// Kind discriminates the two segment flavors.
type Kind int

const (
	Literal Kind = iota
	Parameter
)

// Segment is one slash-delimited element of a route. For Literal segments
// Value is the segment text; for Parameter segments Value is the name inside
// the braces.
type Segment struct {
	Kind  Kind
	Value string
}

// parameter matches a well-formed parameter segment: a single opening brace,
// one or more characters that are neither slashes nor braces, and a single
// closing brace. Nested or unbalanced braces fail the match and the segment
// stays literal.
var parameter = regexp.MustCompile(`^\{([^/{}]+)\}$`)

// Analyze splits rawPath on slashes and classifies each non-empty segment.
// It returns the ordered segment sequence and the parameter names in
// first-occurrence order. Empty segments from leading, trailing, or doubled
// slashes are discarded. Analysis never fails: a malformed segment is treated
// as a literal rather than an error.
func Analyze(rawPath string) ([]Segment, []string) {
	var (
		segments []Segment
		params   []string
	)
	for _, part := range strings.Split(rawPath, "/") {
		if part == "" {
			continue
		}
		if m := parameter.FindStringSubmatch(part); m != nil {
			segments = append(segments, Segment{Kind: Parameter, Value: m[1]})
			params = append(params, m[1])
			continue
		}
		segments = append(segments, Segment{Kind: Literal, Value: part})
	}
	return segments, params
}
