// Package export renders an assembled document payload into its final textual
// form. It is a pure formatting step over the canonical JSON: both formats
// share one cached payload per input.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/yaml"
)

// Supported output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Render converts the canonical JSON payload into the requested format.
// An empty format defaults to YAML.
func Render(payload []byte, format string) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		out, err := yaml.JSONToYAML(payload)
		if err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		return out, nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, payload, "", "  "); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (allowed: yaml, json)", format)
	}
}

// Extension returns the output file extension for format, used to derive
// default output paths from the input path.
func Extension(format string) string {
	if format == FormatJSON {
		return ".json"
	}
	return ".yaml"
}
