package spec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mark3labs/docs2openapi/internal/route"
)

// DefaultTag groups operations whose path yields no usable segment.
const DefaultTag = "default"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// deriveTag picks the grouping tag for a route: the first path segment, or the
// segment after a leading version marker such as v1. Tag derivation is purely
// structural; it never reads descriptions. A path without a usable literal
// segment (empty, parameter-first, or a bare version marker) gets DefaultTag.
func deriveTag(segments []route.Segment) string {
	idx := 0
	if len(segments) > 0 && segments[0].Kind == route.Literal && versionSegment.MatchString(segments[0].Value) {
		idx = 1
	}
	if idx >= len(segments) || segments[idx].Kind != route.Literal {
		return DefaultTag
	}
	return segments[idx].Value
}

// operationID synthesizes the base identifier for a method and route:
// the lowercased method followed by the literal segments, with parameter
// segments contributing by_<name> in place of the literal. GET /users/{id}
// becomes get_users_by_id. A route with no segments falls back to
// <method>_root.
func operationID(method string, segments []route.Segment) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, strings.ToLower(method))
	for _, seg := range segments {
		if seg.Kind == route.Parameter {
			parts = append(parts, "by_"+seg.Value)
			continue
		}
		parts = append(parts, seg.Value)
	}
	if len(segments) == 0 {
		parts = append(parts, "root")
	}
	return strings.Join(parts, "_")
}

// idAllocator guarantees document-wide operationId uniqueness. Distinct raw
// paths can normalize to the same base identifier; later claims receive a
// numeric suffix (_2, _3, ...) in first-seen order.
type idAllocator struct {
	used map[string]struct{}
}

func newIDAllocator() *idAllocator {
	return &idAllocator{used: make(map[string]struct{})}
}

func (a *idAllocator) claim(base string) string {
	id := base
	for n := 2; ; n++ {
		if _, taken := a.used[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
	a.used[id] = struct{}{}
	return id
}
