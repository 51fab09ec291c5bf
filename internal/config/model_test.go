package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/config"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	m := config.NewModel()
	project := config.Origin{Filename: "a.hcl", Start: config.Pos{Line: 1, Column: 1}}
	step := config.Origin{Filename: "a.hcl", Start: config.Pos{Line: 5, Column: 5}}
	source := config.Origin{Filename: "a.hcl", Start: config.Pos{Line: 9, Column: 9}}
	cond := config.Origin{Filename: "a.hcl", Start: config.Pos{Line: 7, Column: 7}}
	m.SetOrigin("P", "", project)
	m.SetOrigin("P/Build/steps[0]", "", step)
	m.SetOrigin("P/Build/steps[0]", "commandType.source", source)
	m.SetOrigin("P/Build/steps[0]", "conditions[1]", cond)

	testCases := []struct {
		name  string
		scope string
		path  string
		want  config.Origin
	}{
		{"exact property", "P/Build/steps[0]", "commandType.source", source},
		{"missing nested property", "P/Build/steps[0]", "commandType.source.path", source},
		{"missing top-level property", "P/Build/steps[0]", "commandType", step},
		{"condition field", "P/Build/steps[0]", "conditions[1].value", cond},
		{"unrecorded build type", "P/Build", "id", project},
		{"unrecorded step", "P/Build/steps[3]", "script", project},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := m.Locate(tc.scope, tc.path)
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}

	_, ok := m.Locate("Q/Build", "id")
	require.False(t, ok)
	require.Equal(t, "a.hcl:9,9", source.String())
}
