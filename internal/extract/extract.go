// Package extract scans loosely structured API documentation (Markdown or
// plain text) for HTTP endpoint declarations such as "GET /users/{id}" and the
// free-text description lines that follow them.
package extract

import (
	"regexp"
	"strings"
)

// Endpoint is one recognized HTTP operation declaration. Records are created
// once during scanning and never mutated afterwards.
type Endpoint struct {
	Method      string // uppercase, normalized from any casing in the source
	RawPath     string // route as written, e.g. /users/{id}
	Description string // following text lines joined with spaces; empty when none
}

// declaration matches an endpoint declaration line: a recognized HTTP method
// keyword in any casing, whitespace, then a token starting with a slash.
// Anything after the path token is ignored.
var declaration = regexp.MustCompile(`^(?i)(GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\s+(/\S*)`)

var topHeading = regexp.MustCompile(`^#\s+(.+)$`)

// scanState tracks whether the scanner is collecting description lines for the
// most recent declaration.
type scanState int

const (
	stateIdle scanState = iota
	stateCapturingDescription
)

// Scan walks the input line by line and returns every endpoint declaration in
// source order. Description capture ends at a blank line, a heading line, or
// the next declaration; headings and blank lines are structural separators
// only and are never attached to a record. Lines that do not match the
// declaration shape are skipped silently, so a missing or garbled declaration
// never fails the scan, and an input without any declarations yields an empty
// result rather than an error.
func Scan(content string) []Endpoint {
	var (
		endpoints []Endpoint
		desc      []string
		state     = stateIdle
	)

	finish := func() {
		if state == stateCapturingDescription && len(desc) > 0 {
			endpoints[len(endpoints)-1].Description = strings.Join(desc, " ")
		}
		desc = desc[:0]
		state = stateIdle
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			finish()
		case declaration.MatchString(line):
			m := declaration.FindStringSubmatch(line)
			finish()
			endpoints = append(endpoints, Endpoint{
				Method:  strings.ToUpper(m[1]),
				RawPath: m[2],
			})
			state = stateCapturingDescription
		case state == stateCapturingDescription:
			desc = append(desc, line)
		}
	}
	finish()

	return endpoints
}

// Title returns the text of the first top-level Markdown heading in the input,
// or fallback when no such heading exists. Deeper headings (##, ###) do not
// qualify.
func Title(content, fallback string) string {
	for _, raw := range strings.Split(content, "\n") {
		if m := topHeading.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return fallback
}
