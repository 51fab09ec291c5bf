package app

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalid is returned when the loaded configuration has errors. The
// diagnostics have already been written when it is returned.
var ErrInvalid = errors.New("configuration is invalid")

// Validate checks the configured files and writes every diagnostic followed
// by a one-line summary to the output writer.
func (a *App) Validate(ctx context.Context) error {
	report, err := a.Check(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteDiagnostics(a.outW); err != nil {
		return fmt.Errorf("failed to write diagnostics: %w", err)
	}

	errs, warns := report.Counts()
	if errs > 0 {
		fmt.Fprintf(a.outW, "Configuration is invalid: %d error(s), %d warning(s).\n", errs, warns)
		return ErrInvalid
	}

	var buildTypes, steps int
	for _, p := range report.Model.Projects {
		for _, bt := range p.BuildTypes() {
			buildTypes++
			steps += bt.Steps.Len()
		}
	}
	fmt.Fprintf(a.outW, "Configuration is valid: %d project(s), %d build type(s), %d step(s), %d warning(s).\n",
		len(report.Model.Projects), buildTypes, steps, warns)
	a.logger.Info("Validation finished.", "files", len(report.Model.Files), "warnings", warns)
	return nil
}
