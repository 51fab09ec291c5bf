package hcl_adapter_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/buildfeatures"
	"github.com/vk/stepconf/internal/buildsteps"
	"github.com/vk/stepconf/internal/hcl_adapter"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/params"
	"github.com/vk/stepconf/internal/projectfeatures"
	"github.com/vk/stepconf/internal/testutil"
	"github.com/vk/stepconf/internal/validate"
)

func TestLoad_Example(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.ExampleHCL})
	loader := hcl_adapter.NewLoader(testutil.NewRegistry(), "")

	// --- Act ---
	m, err := loader.Load(context.Background(), root)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "main.hcl")}, m.Files)
	require.Len(t, m.Projects, 1)

	p := m.Projects[0]
	require.Equal(t, "MyProject", p.ID)
	require.Equal(t, "My project", p.Name)

	require.Equal(t, 1, p.Features.Len())
	cloud, ok := p.Features.Items()[0].(*projectfeatures.CloudIntegration)
	require.True(t, ok)
	enabled, set := cloud.Enabled.Get()
	require.True(t, set)
	require.False(t, enabled)

	bts := p.BuildTypes()
	require.Len(t, bts, 1)
	require.Equal(t, "Build", bts[0].Name)
	require.Equal(t, 1, bts[0].Steps.Len())

	step, ok := bts[0].Steps.Items()[0].(*buildsteps.DockerCommandStep)
	require.True(t, ok)
	require.Equal(t, "DockerBuild", step.ID)
	require.Equal(t, "Build image", step.Name)
	require.True(t, step.Enabled)
	require.Equal(t, []model.Condition{
		{Op: model.OpEquals, Name: "teamcity.build.branch", Value: "release"},
	}, step.Conditions.Items())
	require.Equal(t, []params.Param{
		{Name: "teamcity.step.mode", Value: "execute_if_success"},
		{Name: "docker.command.type", Value: "build"},
		{Name: "dockerfile.source", Value: "PATH"},
		{Name: "dockerfile.path", Value: "Dockerfile"},
		{Name: "dockerImage.platform", Value: "linux"},
		{Name: "custom.key", Value: "value"},
	}, step.Params().Params())
	require.Equal(t, "Build/steps", step.Owner())

	patcher, ok := bts[0].Features.Items()[0].(*buildfeatures.AssemblyInfoPatcher)
	require.True(t, ok)
	require.Equal(t, "1.0.%build.counter%", patcher.AssemblyFormat.Value())

	require.Empty(t, validate.Run(p))
}

func TestLoad_Origins(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.ExampleHCL})
	m, err := hcl_adapter.NewLoader(testutil.NewRegistry(), "").Load(context.Background(), root)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		scope     string
		path      string
		line, col int
	}{
		{"project", "MyProject", "", 2, 1},
		{"project feature", "MyProject/features[0]", "enabled", 6, 5},
		{"step", "MyProject/Build/steps[0]", "", 12, 5},
		{"step id", "MyProject/Build/steps[0]", "id", 13, 7},
		{"condition value", "MyProject/Build/steps[0]", "conditions[0].value", 19, 9},
		{"nested property", "MyProject/Build/steps[0]", "commandType.source.path", 24, 11},
		{"missing property falls back to its block", "MyProject/Build/steps[0]", "commandType.namesAndTags", 22, 7},
		{"build feature", "MyProject/Build/features[0]", "assemblyFormat", 35, 7},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o, ok := m.Locate(tc.scope, tc.path)
			require.True(t, ok)
			require.Equal(t, filepath.Join(root, "main.hcl"), o.Filename)
			require.Equal(t, tc.line, o.Start.Line)
			require.Equal(t, tc.col, o.Start.Column)
		})
	}
}

func TestLoad_Diagnostics(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		summary string
	}{
		{
			name:    "unknown step type",
			files:   map[string]string{"a.hcl": `project "P" { buildType "B" { step "gradle" {} } }`},
			summary: "Unsupported step type",
		},
		{
			name:    "unknown project feature type",
			files:   map[string]string{"a.hcl": `project "P" { feature "assemblyInfoPatcher" {} }`},
			summary: "Unsupported projectFeature type",
		},
		{
			name: "unknown variant",
			files: map[string]string{"a.hcl": `
project "P" {
  buildType "B" {
    step "dockerCommand" {
      commandType "compose" {}
    }
  }
}`},
			summary: "Unsupported variant",
		},
		{
			name: "unknown attribute",
			files: map[string]string{"a.hcl": `
project "P" {
  buildType "B" {
    step "nodeJS" {
      script = "npm test"
    }
  }
}`},
			summary: "Unsupported argument",
		},
		{
			name: "unknown enum name",
			files: map[string]string{"a.hcl": `
project "P" {
  buildType "B" {
    step "nodeJS" {
      dockerImagePlatform = "Solaris"
    }
  }
}`},
			summary: "Invalid value",
		},
		{
			name: "unknown condition",
			files: map[string]string{"a.hcl": `
project "P" {
  buildType "B" {
    step "nodeJS" {
      condition "isBlue" {
        name = "x"
      }
    }
  }
}`},
			summary: "Unsupported condition",
		},
		{
			name: "duplicate variant block",
			files: map[string]string{"a.hcl": `
project "P" {
  buildType "B" {
    step "dockerCommand" {
      commandType "push" {}
      commandType "other" {}
    }
  }
}`},
			summary: `Duplicate "commandType" block`,
		},
		{
			name: "wrong value type",
			files: map[string]string{"a.hcl": `
project "P" {
  buildType "B" {
    step "nodeJS" {
      enabled = "sometimes"
    }
  }
}`},
			summary: "Incorrect attribute value type",
		},
		{
			name: "duplicate project",
			files: map[string]string{
				"a.hcl": `project "P" {}`,
				"b.hcl": `project "P" {}`,
			},
			summary: "Duplicate project",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			root := testutil.WriteFiles(t, tc.files)

			// --- Act ---
			m, err := hcl_adapter.NewLoader(testutil.NewRegistry(), "").Load(context.Background(), root)

			// --- Assert ---
			require.Error(t, err)
			require.NotNil(t, m)
			var diags hcl.Diagnostics
			require.True(t, errors.As(err, &diags))
			var summaries []string
			for _, d := range diags {
				summaries = append(summaries, d.Summary)
			}
			require.Contains(t, summaries, tc.summary)
		})
	}
}

func TestLoad_KeepsGoingAfterBrokenFile(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `project "Broken" {`,
		"b.hcl": `project "Fine" { name = "fine" }`,
	})

	m, err := hcl_adapter.NewLoader(testutil.NewRegistry(), "").Load(context.Background(), root)

	require.Error(t, err)
	require.Len(t, m.Files, 2)
	require.Len(t, m.Projects, 1)
	require.Equal(t, "Fine", m.Projects[0].ID)
}

func TestLoad_ValuesAndParams(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{"ci/main.hcl": `
project "P" {
  buildType "B" {
    step "dotnetPack" {
      versionSuffix = 7
      skipBuild     = false
      args          = null
      params = {
        "z.last"  = "1"
        "a.first" = 2
      }
    }
  }
}`})

	// --- Act ---
	m, err := hcl_adapter.NewLoader(testutil.NewRegistry(), "ci/*.hcl").Load(context.Background(), root)

	// --- Assert ---
	require.NoError(t, err)
	step := m.Projects[0].BuildTypes()[0].Steps.Items()[0].(*buildsteps.DotnetPackStep)
	require.Equal(t, []params.Param{
		{Name: "command", Value: "pack"},
		{Name: "versionSuffix", Value: "7"},
		{Name: "skipBuild", Value: ""},
		{Name: "z.last", Value: "1"},
		{Name: "a.first", Value: "2"},
	}, step.Params().Params())
	require.False(t, step.Args.IsSet(), "null leaves the property absent")
}
