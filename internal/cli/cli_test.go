package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/cli"
	"github.com/vk/stepconf/internal/testutil"
)

const missingSourceHCL = `
project "P" {
  buildType "B" {
    step "dockerCommand" {
      commandType "build" {}
    }
  }
}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errW := &bytes.Buffer{}, &bytes.Buffer{}
	err := cli.Execute(context.Background(), args, out, errW)
	return out.String(), errW.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "expected *cli.ExitError, got %T", err)
	return exitErr.Code
}

func TestExecute_ExitCodes(t *testing.T) {
	t.Parallel()

	valid := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.ExampleHCL})
	invalid := testutil.WriteFiles(t, map[string]string{"main.hcl": missingSourceHCL})

	testCases := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:    "valid configuration",
			args:    []string{"validate", valid},
			wantOut: "Configuration is valid: 1 project(s)",
		},
		{
			name:     "invalid configuration",
			args:     []string{"validate", invalid},
			wantCode: 1,
			wantOut:  "mandatory 'commandType.source' property is not specified",
		},
		{
			name:     "unknown flag",
			args:     []string{"validate", "--no-such-flag"},
			wantCode: 2,
			wantErr:  "unknown flag: --no-such-flag",
		},
		{
			name:     "unknown command",
			args:     []string{"compile"},
			wantCode: 2,
			wantErr:  `unknown command "compile"`,
		},
		{
			name:     "bad log level",
			args:     []string{"validate", "--log-level", "loud", valid},
			wantCode: 2,
			wantErr:  "invalid log level 'loud'",
		},
		{
			name:     "bad export format",
			args:     []string{"export", "--format", "toml", valid},
			wantCode: 2,
			wantErr:  "unsupported output format 'toml'",
		},
		{
			name:     "too many type names",
			args:     []string{"types", "ant", "python"},
			wantCode: 2,
		},
		{
			name:     "unknown type name",
			args:     []string{"types", "gradle"},
			wantCode: 2,
			wantErr:  "unknown entity type 'gradle'",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			out, _, err := execute(t, tc.args...)

			// --- Assert ---
			require.Equal(t, tc.wantCode, exitCode(t, err))
			if tc.wantOut != "" {
				require.Contains(t, out, tc.wantOut)
			}
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestExecute_Export(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.ExampleHCL})

	t.Run("to stdout", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, "export", "-f", "hcl", root)
		require.NoError(t, err)
		require.Contains(t, out, `step "dockerCommand"`)
	})

	t.Run("to a file", func(t *testing.T) {
		t.Parallel()
		target := filepath.Join(t.TempDir(), "out.yaml")

		out, logs, err := execute(t, "export", "--format", "yaml", "--output", target, root)
		require.NoError(t, err)
		require.Empty(t, out)
		require.Contains(t, logs, "Export written.")

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		require.Contains(t, string(data), "docker.command.type: build")
	})

	t.Run("nothing is written for an invalid configuration", func(t *testing.T) {
		t.Parallel()
		invalid := testutil.WriteFiles(t, map[string]string{"main.hcl": missingSourceHCL})
		target := filepath.Join(t.TempDir(), "out.json")

		_, _, err := execute(t, "export", "-o", target, invalid)
		require.Equal(t, 1, exitCode(t, err))
		require.NoFileExists(t, target)
	})
}

func TestExecute_Types(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "types")
	require.NoError(t, err)
	require.Contains(t, out, "step dockerCommand (DockerCommand)")
	require.Contains(t, out, "feature assemblyInfoPatcher")

	out, _, err = execute(t, "types", "python")
	require.NoError(t, err)
	require.Contains(t, out, "step python (python-runner)")
}

func TestExecute_Version(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "stepconf version "+cli.Version+"\n", out)
}

func TestExecute_LogLevelFromEnvironment(t *testing.T) {
	t.Setenv(cli.EnvLogLevel, "loud")
	root := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.ExampleHCL})

	_, _, err := execute(t, "validate", root)
	require.Equal(t, 2, exitCode(t, err))
	require.ErrorContains(t, err, "invalid log level 'loud'")

	_, _, err = execute(t, "validate", "--log-level", "warn", root)
	require.NoError(t, err, "the flag overrides the environment")
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(cli.EnvLogFormat+"=json\n"), 0o644))
	t.Setenv(cli.EnvLogFormat, "")
	require.NoError(t, os.Unsetenv(cli.EnvLogFormat))

	require.NoError(t, cli.LoadEnv(path))
	require.Equal(t, "json", os.Getenv(cli.EnvLogFormat))

	require.Error(t, cli.LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
