package spec

import (
	"testing"

	"github.com/mark3labs/docs2openapi/internal/route"
)

func segmentsOf(t *testing.T, path string) []route.Segment {
	t.Helper()
	segs, _ := route.Analyze(path)
	return segs
}

func TestDeriveTag(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path string
		want string
	}{
		{"/users", "users"},
		{"/users/{id}", "users"},
		{"/v1/users", "users"},
		{"/v2/items/{id}", "items"},
		{"/v1", "default"},
		{"/v1/{id}", "default"},
		{"/{id}", "default"},
		{"/", "default"},
		{"/version/users", "version"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if got := deriveTag(segmentsOf(t, tc.path)); got != tc.want {
				t.Errorf("tag for %q: got %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestOperationID(t *testing.T) {
	t.Parallel()
	cases := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/users", "get_users"},
		{"GET", "/users/{id}", "get_users_by_id"},
		{"POST", "/users", "post_users"},
		{"GET", "/orders/{orderId}/items/{itemId}", "get_orders_by_orderId_items_by_itemId"},
		{"GET", "/", "get_root"},
		{"PUT", "/v1/users/{id}", "put_v1_users_by_id"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			if got := operationID(tc.method, segmentsOf(t, tc.path)); got != tc.want {
				t.Errorf("operationID(%s %s): got %q, want %q", tc.method, tc.path, got, tc.want)
			}
		})
	}
}

func TestIDAllocator_SuffixesInFirstSeenOrder(t *testing.T) {
	t.Parallel()
	ids := newIDAllocator()
	if got := ids.claim("get_users"); got != "get_users" {
		t.Errorf("first claim: got %q", got)
	}
	if got := ids.claim("get_users"); got != "get_users_2" {
		t.Errorf("second claim: got %q", got)
	}
	if got := ids.claim("get_users"); got != "get_users_3" {
		t.Errorf("third claim: got %q", got)
	}
	// A natural name equal to an allocated suffix still ends up unique.
	if got := ids.claim("get_users_2"); got != "get_users_2_2" {
		t.Errorf("suffix collision: got %q", got)
	}
}
