package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vk/stepconf/internal/app"
	"github.com/vk/stepconf/internal/emit"
	"github.com/vk/stepconf/internal/fsutil"
)

// Environment variables providing defaults for the log flags.
const (
	EnvLogLevel  = "STEPCONF_LOG_LEVEL"
	EnvLogFormat = "STEPCONF_LOG_FORMAT"
)

// Version is set at build time.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
// Code 1 means the configuration is invalid or a command failed, code 2
// means the command line itself is wrong.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// LoadEnv loads variables from the given .env files, or ./.env when none is
// given. Variables already set in the environment win.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Execute runs the stepconf command line with args. Every failure is
// returned as an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// globalFlags are shared by every command that loads definition files.
type globalFlags struct {
	include   string
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree. Results go to outW; logs and
// diagnostics accompanying an export go to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "stepconf",
		Short: "Validate and export typed CI build configuration",
		Long: `stepconf loads pipeline definition files describing projects, build types,
build steps and features, checks them against the typed schema of every
registered step and feature, and exports them as JSON, YAML or canonical HCL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&g.include, "include", fsutil.DefaultInclude, "Glob selecting definition files inside directories")
	flags.StringVar(&g.logLevel, "log-level", envOr(EnvLogLevel, "info"), "Log level: debug, info, warn, error")
	flags.StringVar(&g.logFormat, "log-format", envOr(EnvLogFormat, "text"), "Log format: text or json")

	root.AddCommand(
		newValidateCommand(g),
		newExportCommand(g),
		newTypesCommand(g),
		newVersionCommand(),
	)
	return root
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// newApp validates the flags into an app configuration and builds the app.
func (g *globalFlags) newApp(cmd *cobra.Command, paths []string, format emit.Format) (*app.App, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	cfg, err := app.NewConfig(app.Config{
		Paths:     paths,
		Include:   g.include,
		LogLevel:  strings.ToLower(g.logLevel),
		LogFormat: strings.ToLower(g.logFormat),
		Format:    format,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg), nil
}

// usageArgs turns argument count errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
