package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Format is an output encoding for a report.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatXLSX     Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatYAML, FormatXLSX}

// ParseFormat resolves a format name. "md" and "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", eris.Errorf("report: unknown format %q", s)
}

// Binary reports whether f should not be written to a terminal.
func (f Format) Binary() bool { return f == FormatXLSX }

// Write encodes r to w in format f.
func Write(w io.Writer, r *model.Report, f Format) error {
	switch f {
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return eris.Wrap(err, "report: write markdown")
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(r), "report: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return eris.Wrap(enc.Close(), "report: encode yaml")
	case FormatXLSX:
		return WriteXLSX(w, r)
	}
	return eris.Errorf("report: unknown format %q", f)
}
