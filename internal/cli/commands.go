package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vk/stepconf/internal/emit"
)

func newValidateCommand(g *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Check definition files and report problems with their locations",
		Long: `Loads every definition file found under the given paths (the current
directory by default) and validates the projects they declare. Exits with
status 1 when any error is found. With --watch, validation runs again on
every change until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.newApp(cmd, args, "")
			if err != nil {
				return err
			}
			if !watch {
				return a.Validate(cmd.Context())
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Watch(ctx, nil)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Validate again whenever a definition file changes")
	return cmd
}

func newExportCommand(g *globalFlags) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Render validated projects as JSON, YAML or HCL",
		Long: `Loads and validates the definition files, then renders the projects.
Nothing is written when validation reports errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := emit.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			a, err := g.newApp(cmd, args, f)
			if err != nil {
				return err
			}
			if output == "" {
				return a.Export(cmd.Context(), cmd.OutOrStdout())
			}

			var buf bytes.Buffer
			if err := a.Export(cmd.Context(), &buf); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.Logger().Info("Export written.", "path", output, "format", f)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(emit.FormatJSON), "Output format: json, yaml or hcl")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	return cmd
}

func newTypesCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "types [name]",
		Short: "List registered steps and features, or describe one of them",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.newApp(cmd, nil, "")
			if err != nil {
				return err
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if err := a.Describe(name); err != nil {
				return usageError(err)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stepconf version %s\n", Version)
		},
	}
}
