package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/validate"
)

// scriptStep is a minimal concrete step with one mandatory property.
type scriptStep struct {
	*model.BuildStep
	Script *props.String
}

func newScriptStep() *scriptStep {
	s := &scriptStep{BuildStep: model.NewBuildStep("simpleRunner")}
	s.Script = s.Bag().String("script", "script.content")
	return s
}

func (s *scriptStep) Validate(c validate.Consumer) {
	s.BuildStep.Validate(c)
	if !s.Script.IsSet() {
		validate.Mandatory(c, "script")
	}
}

type labelFeature struct {
	*model.BuildFeature
}

type cleanupFeature struct {
	*model.ProjectFeature
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		id      string
		wantErr string
	}{
		{name: "empty is allowed", id: ""},
		{name: "letters digits underscores", id: "Build_2"},
		{name: "leading digit", id: "2Build", wantErr: "must start with a latin letter"},
		{name: "dash", id: "my-build", wantErr: "must start with a latin letter"},
		{name: "non latin", id: "Збірка", wantErr: "must start with a latin letter"},
		{name: "max length", id: "A" + strings.Repeat("b", model.MaxIDLength-1)},
		{name: "too long", id: "A" + strings.Repeat("b", model.MaxIDLength), wantErr: "too long"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var col validate.Collector
			model.ValidateID(&col, "id", tc.id)
			if tc.wantErr == "" {
				require.Empty(t, col.Problems)
				return
			}
			require.Len(t, col.Problems, 1)
			require.Equal(t, "id", col.Problems[0].Path)
			require.Contains(t, col.Problems[0].Message, tc.wantErr)
		})
	}
}

func TestBuildStep_Defaults(t *testing.T) {
	t.Parallel()

	s := newScriptStep()

	require.Equal(t, "simpleRunner", s.Type())
	require.True(t, s.Enabled)
	require.Empty(t, s.Owner())
	require.Zero(t, s.Params().Len(), "a fresh step writes nothing")

	_, ok, err := s.ExecutionMode.Get()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExecutionMode_Wire(t *testing.T) {
	t.Parallel()

	want := map[model.ExecutionMode]string{
		model.ModeDefault:      "default",
		model.ModeRunOnSuccess: "execute_if_success",
		model.ModeRunOnFailure: "execute_if_failed",
		model.ModeAlways:       "execute_always",
	}
	for mode, wire := range want {
		s := newScriptStep()
		s.ExecutionMode.Set(mode)
		got, _ := s.Params().Get("teamcity.step.mode")
		require.Equal(t, wire, got)

		back, ok, err := s.ExecutionMode.Get()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, mode, back)
	}
}

func TestBuildStep_Validate(t *testing.T) {
	t.Parallel()

	t.Run("every missing field is reported", func(t *testing.T) {
		t.Parallel()
		s := newScriptStep()
		s.ID = "1bad"
		s.Conditions.Equals("", "")
		s.Conditions.Exists("env.HOME")

		problems := validate.Run(s)

		var paths []string
		for _, p := range problems {
			paths = append(paths, p.Path)
		}
		require.Equal(t, []string{"id", "conditions[0].name", "conditions[0].value", "script"}, paths)
	})

	t.Run("fully populated step is valid", func(t *testing.T) {
		t.Parallel()
		s := newScriptStep()
		s.ID = "Run"
		s.Script.Set("make")
		s.Conditions.Equals("teamcity.build.branch", "main")
		s.Conditions.DoesNotExist("env.CI_SKIP")
		require.Empty(t, validate.Run(s))
	})

	t.Run("corrupt execution mode", func(t *testing.T) {
		t.Parallel()
		s := newScriptStep()
		s.Script.Set("make")
		s.Param("teamcity.step.mode", "sometimes")
		problems := validate.Run(s)
		require.Len(t, problems, 1)
		require.Equal(t, "executionMode", problems[0].Path)
	})
}

func TestCopyFrom(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	base := newScriptStep()
	base.ID = "Base"
	base.Name = "Base step"
	base.Enabled = false
	base.Script.Set("echo base")
	base.Param("custom", "1")
	base.Conditions.Exists("env.X")

	// --- Act ---
	s := newScriptStep()
	s.Param("own", "2")
	s.CopyFrom(base.BuildStep)
	s.Conditions.Exists("env.Y")

	// --- Assert ---
	require.Equal(t, "Base", s.ID)
	require.Equal(t, "Base step", s.Name)
	require.False(t, s.Enabled)
	require.Equal(t, "echo base", s.Script.Value())
	require.Equal(t, []string{"own", "script.content", "custom"}, s.Params().Keys())
	require.Equal(t, 2, s.Conditions.Len())
	require.Equal(t, 1, base.Conditions.Len(), "conditions are copied, not shared")
	require.Empty(t, s.Owner(), "ownership is never copied")

	require.Panics(t, func() {
		model.NewEntity("other").CopyFrom(base.Entity)
	})
}

func TestOwnershipIsExclusive(t *testing.T) {
	t.Parallel()

	s := newScriptStep()
	first := model.NewBuildType("First", func(bt *model.BuildType) { bt.Steps.Step(s) })
	require.Equal(t, "First/steps", s.Owner())

	require.PanicsWithValue(t,
		`model: simpleRunner entity "" already belongs to First/steps, cannot add it to Second/steps`,
		func() {
			model.NewBuildType("Second", func(bt *model.BuildType) { bt.Steps.Step(s) })
		})
	require.Equal(t, 1, first.Steps.Len())

	p := model.NewProject("P", nil)
	p.BuildType(first)
	require.Panics(t, func() { model.NewProject("Q", nil).BuildType(first) })
}

func TestProject_Validate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := model.NewProject("MyProject", func(p *model.Project) {
		p.Features.Feature(&cleanupFeature{model.NewProjectFeature("CleanUp")})

		p.BuildType(model.NewBuildType("Build", func(bt *model.BuildType) {
			one := newScriptStep()
			one.ID = "Step"
			one.Script.Set("make")
			bt.Steps.Step(one)

			two := newScriptStep()
			two.ID = "Step"
			bt.Steps.Step(two)

			feat := &labelFeature{model.NewBuildFeature("VcsLabeling")}
			feat.ID = "9"
			bt.Features.Feature(feat)
		}))
		p.BuildType(model.NewBuildType("Build", nil))
		p.BuildType(model.NewBuildType("", nil))
	})

	// --- Act ---
	problems := validate.Run(p)

	// --- Assert ---
	type row struct{ Scope, Path string }
	var got []row
	for _, pr := range problems {
		got = append(got, row{pr.Scope, pr.Path})
	}
	want := []row{
		{"MyProject/Build/steps[1]", "script"},
		{"MyProject/Build/steps[1]", "id"},
		{"MyProject/Build/features[0]", "id"},
		{"MyProject/Build", "id"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
	require.Contains(t, problems[1].Message, "already used by steps[0]")
	require.Contains(t, problems[3].Message, "already used by buildTypes[0]")
	require.Len(t, p.BuildTypes(), 3)
}

func TestConditions(t *testing.T) {
	t.Parallel()

	for _, op := range model.ConditionOps() {
		parsed, err := model.ParseConditionOp(string(op))
		require.NoError(t, err)
		require.Equal(t, op, parsed)
	}
	_, err := model.ParseConditionOp("between")
	require.ErrorContains(t, err, "unknown condition 'between'")

	var c model.Conditions
	c.Add("between", "x", "y")
	var col validate.Collector
	c.Validate(&col)
	require.Len(t, col.Problems, 1)
	require.Equal(t, "conditions[0]", col.Problems[0].Path)
}
