package extract

import (
	"reflect"
	"testing"
)

func TestScan_DeclarationsWithDescriptions(t *testing.T) {
	t.Parallel()
	input := "# Users API\n\nGET /users\nObtiene todos los usuarios\n\nPOST /users\nCrea un nuevo usuario\n"

	got := Scan(input)
	want := []Endpoint{
		{Method: "GET", RawPath: "/users", Description: "Obtiene todos los usuarios"},
		{Method: "POST", RawPath: "/users", Description: "Crea un nuevo usuario"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scan mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestScan_NormalizesMethodCasing(t *testing.T) {
	t.Parallel()
	input := "get /a\nPoSt /b\nDELETE /c\n"

	got := Scan(input)
	if len(got) != 3 {
		t.Fatalf("expected 3 endpoints, got %d: %+v", len(got), got)
	}
	for i, method := range []string{"GET", "POST", "DELETE"} {
		if got[i].Method != method {
			t.Errorf("endpoint %d: method %q, want %q", i, got[i].Method, method)
		}
	}
}

func TestScan_MultiLineDescriptionJoined(t *testing.T) {
	t.Parallel()
	input := "GET /reports\nGenerates the monthly report.\nResults are paginated.\n\nGET /next\n"

	got := Scan(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(got))
	}
	if want := "Generates the monthly report. Results are paginated."; got[0].Description != want {
		t.Errorf("description: got %q, want %q", got[0].Description, want)
	}
	if got[1].Description != "" {
		t.Errorf("expected empty description, got %q", got[1].Description)
	}
}

func TestScan_HeadingEndsDescriptionCapture(t *testing.T) {
	t.Parallel()
	input := "GET /users\nLists users\n## Details\nThis line belongs to no record\n"

	got := Scan(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(got))
	}
	if got[0].Description != "Lists users" {
		t.Errorf("description: got %q", got[0].Description)
	}
}

func TestScan_BackToBackDeclarations(t *testing.T) {
	t.Parallel()
	input := "GET /users\nPOST /users\nCreates a user\n"

	got := Scan(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(got))
	}
	if got[0].Description != "" {
		t.Errorf("first endpoint should have no description, got %q", got[0].Description)
	}
	if got[1].Description != "Creates a user" {
		t.Errorf("second endpoint description: got %q", got[1].Description)
	}
}

func TestScan_MalformedDeclarationsSkipped(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		input string
	}{
		{"method without path", "GET\n"},
		{"unknown method", "FETCH /users\n"},
		{"path without slash", "GET users\n"},
		{"plain prose", "The users endpoint returns users.\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Scan(tc.input); len(got) != 0 {
				t.Fatalf("expected no endpoints, got %+v", got)
			}
		})
	}
}

func TestScan_NoDeclarationsIsNotAnError(t *testing.T) {
	t.Parallel()
	if got := Scan("# Only a title\n\nSome prose.\n"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if got := Scan(""); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %+v", got)
	}
}

func TestScan_PreservesSourceOrder(t *testing.T) {
	t.Parallel()
	input := "GET /zebras\n\nGET /apples\n\nGET /middles\n"

	got := Scan(input)
	paths := []string{"/zebras", "/apples", "/middles"}
	if len(got) != len(paths) {
		t.Fatalf("expected %d endpoints, got %d", len(paths), len(got))
	}
	for i, p := range paths {
		if got[i].RawPath != p {
			t.Errorf("endpoint %d: path %q, want %q", i, got[i].RawPath, p)
		}
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"top-level heading", "# Payments API\n\nGET /payments\n", "Payments API"},
		{"skips deeper headings", "## Section\n# Real Title\n", "Real Title"},
		{"no heading falls back", "GET /users\n", "API"},
		{"empty input falls back", "", "API"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Title(tc.input, "API"); got != tc.want {
				t.Errorf("title: got %q, want %q", got, tc.want)
			}
		})
	}
}
