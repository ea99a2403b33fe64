// Package spec assembles the OpenAPI 3.0 document model from extracted
// endpoint records: grouping operations by path, deriving tags, synthesizing
// unique operation identifiers, and attaching inferred path parameters.
package spec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/docs2openapi/internal/extract"
	"github.com/mark3labs/docs2openapi/internal/route"
)

// Fixed document constants shared by every produced spec.
const (
	OpenAPIVersion = "3.0.0"
	APIVersion     = "1.0.0"
	DefaultTitle   = "API"

	defaultDescription = "API normalized from unstructured documentation"
	defaultServerURL   = "https://api.example.com"
	defaultServerDesc  = "Production server"

	successStatus      = "200"
	successDescription = "Successful response"
	defaultContentType = "application/json"
)

// BuildDocument assembles an OpenAPI v3 document from the extracted endpoints.
// Endpoints are processed in source order so operationId disambiguation is
// deterministic; paths and tags sort lexicographically in the serialized
// output regardless of input order. A duplicate method on the same path
// overwrites the earlier declaration: noisy input, not an error.
func BuildDocument(endpoints []extract.Endpoint, title string) *openapi3.T {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       title,
			Version:     APIVersion,
			Description: defaultDescription,
		},
		Servers: openapi3.Servers{
			{URL: defaultServerURL, Description: defaultServerDesc},
		},
		Paths: openapi3.Paths{},
	}

	ids := newIDAllocator()
	tagSet := make(map[string]struct{})

	for _, ep := range endpoints {
		segments, params := route.Analyze(ep.RawPath)

		tag := deriveTag(segments)
		tagSet[tag] = struct{}{}

		op := &openapi3.Operation{
			Summary:     ep.Description,
			OperationID: ids.claim(operationID(ep.Method, segments)),
			Tags:        []string{tag},
			Parameters:  pathParameters(params),
			Responses:   defaultResponses(),
		}
		if op.Summary == "" {
			op.Summary = ep.Method + " " + ep.RawPath
		}
		if ep.Description != "" {
			op.Description = ep.Description
		}

		item := doc.Paths[ep.RawPath]
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths[ep.RawPath] = item
		}
		item.SetOperation(ep.Method, op)
	}

	names := make([]string, 0, len(tagSet))
	for name := range tagSet {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: name})
	}

	return doc
}

// pathParameters converts inferred parameter names into OpenAPI path
// parameters, preserving first-occurrence order. Every path parameter is
// required with a string schema; no numeric or format detection happens here.
func pathParameters(names []string) openapi3.Parameters {
	if len(names) == 0 {
		return nil
	}
	params := make(openapi3.Parameters, 0, len(names))
	for _, name := range names {
		params = append(params, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				Name:        name,
				In:          openapi3.ParameterInPath,
				Required:    true,
				Description: fmt.Sprintf("Identifier of the %s", name),
				Schema:      openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
			},
		})
	}
	return params
}

// defaultResponses is the uniform response set every operation receives:
// HTTP 200 with a generic JSON object schema. Response inference from
// description text is out of scope.
func defaultResponses() openapi3.Responses {
	desc := successDescription
	return openapi3.Responses{
		successStatus: &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &desc,
				Content:     openapi3.NewContentWithSchema(openapi3.NewObjectSchema(), []string{defaultContentType}),
			},
		},
	}
}

// MarshalCanonical serializes the document to compact JSON with
// lexicographically ordered keys, the form cached and rendered downstream.
// kin-openapi emits a components block even when it is empty, which has no
// place in the produced document, so an empty one is stripped.
func MarshalCanonical(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("reparse document: %w", err)
	}
	if comp, ok := tree["components"].(map[string]any); ok && len(comp) == 0 {
		delete(tree, "components")
	}
	return json.Marshal(tree)
}
