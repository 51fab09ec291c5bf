package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/stepconf/internal/config"
	"github.com/vk/stepconf/internal/validate"
)

// Report is the outcome of loading and validating definition files.
type Report struct {
	Model       *config.Model
	Diagnostics hcl.Diagnostics
}

// HasErrors reports whether any diagnostic is an error.
func (r *Report) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Counts returns the number of error and warning diagnostics.
func (r *Report) Counts() (errs, warns int) {
	for _, d := range r.Diagnostics {
		if d.Severity == hcl.DiagError {
			errs++
		} else {
			warns++
		}
	}
	return errs, warns
}

// WriteDiagnostics renders every diagnostic with a source snippet.
func (r *Report) WriteDiagnostics(w io.Writer) error {
	files := make(map[string]*hcl.File, len(r.Model.Sources))
	for name, src := range r.Model.Sources {
		files[name] = &hcl.File{Bytes: src}
	}
	return hcl.NewDiagnosticTextWriter(w, files, 0, false).WriteDiagnostics(r.Diagnostics)
}

// Check loads the configured paths and validates every project. Problems in
// the files are part of the report; the error is reserved for failures that
// prevent loading at all, such as a missing path.
//
// Projects are only validated when the files loaded cleanly, since a
// partially decoded entity mostly yields follow-up problems.
func (a *App) Check(ctx context.Context) (*Report, error) {
	ctx = a.context(ctx)
	a.logger.Debug("Loading definition files.", "paths", a.config.Paths, "include", a.config.Include)

	m, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		var diags hcl.Diagnostics
		if !errors.As(err, &diags) || m == nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		a.logger.Debug("Definition files have errors, skipping validation.", "diagnostics", len(diags))
		return &Report{Model: m, Diagnostics: diags}, nil
	}

	report := &Report{Model: m}
	for _, p := range m.Projects {
		problems := validate.Run(p)
		a.logger.Debug("Project validated.", "project", p.Scope(), "problems", len(problems))
		report.Diagnostics = append(report.Diagnostics, toDiagnostics(m, problems)...)
	}
	return report, nil
}

// toDiagnostics converts validation problems, locating each one at the
// closest definition in the files.
func toDiagnostics(m *config.Model, problems validate.Problems) hcl.Diagnostics {
	diags := make(hcl.Diagnostics, 0, len(problems))
	for _, p := range problems {
		d := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  p.Message,
			Detail:   fmt.Sprintf("Reported for %q at %s.", p.Path, p.Scope),
		}
		if p.Severity == validate.Warning {
			d.Severity = hcl.DiagWarning
		}
		if o, ok := m.Locate(p.Scope, p.Path); ok {
			d.Subject = &hcl.Range{
				Filename: o.Filename,
				Start:    hcl.Pos{Line: o.Start.Line, Column: o.Start.Column, Byte: o.Start.Byte},
				End:      hcl.Pos{Line: o.End.Line, Column: o.End.Column, Byte: o.End.Byte},
			}
		}
		diags = append(diags, d)
	}
	return diags
}
