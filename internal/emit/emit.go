package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/registry"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatHCL}
}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("unsupported output format '%s', expected one of: json, yaml, hcl", s)
}

// Write renders projects to w in format f. The registry is only consulted
// for HCL output, which needs the DSL names of entity types.
func Write(w io.Writer, f Format, projects []*model.Project, reg *registry.Registry) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(projects)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(projects)); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatHCL:
		src, err := HCL(projects, reg)
		if err != nil {
			return err
		}
		_, err = w.Write(src)
		return err
	}
	return fmt.Errorf("unsupported output format '%s'", f)
}
