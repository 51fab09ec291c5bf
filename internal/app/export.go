package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/stepconf/internal/emit"
)

// Export validates the configured files and renders the projects to w in
// the configured format. Nothing is rendered when there are errors.
// Diagnostics go to the error writer so that w only receives the document.
func (a *App) Export(ctx context.Context, w io.Writer) error {
	report, err := a.Check(ctx)
	if err != nil {
		return err
	}
	if len(report.Diagnostics) > 0 {
		if err := report.WriteDiagnostics(a.errW); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	}
	if report.HasErrors() {
		return ErrInvalid
	}

	if err := emit.Write(w, a.config.Format, report.Model.Projects, a.registry); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	a.logger.Debug("Export finished.", "format", a.config.Format, "projects", len(report.Model.Projects))
	return nil
}
