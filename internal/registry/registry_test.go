package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/registry"
)

type plainStep struct{ *model.BuildStep }

func newPlainStep(typ string) *plainStep {
	return &plainStep{model.NewBuildStep(typ)}
}

type shadowingStep struct{ *model.BuildStep }

func newShadowingStep() *shadowingStep {
	s := &shadowingStep{model.NewBuildStep("shadow")}
	s.Bag().String("name", "step.name")
	return s
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := registry.New()
	def := registry.Definition{
		Kind: registry.KindStep,
		Name: "plain",
		Type: "plain",
		New:  func() model.Configurable { return newPlainStep("plain") },
	}
	r.Register(def)

	require.PanicsWithValue(t, "step definition with name 'plain' already registered", func() { r.Register(def) })

	// The same name under another kind is a different definition.
	def.Kind = registry.KindFeature
	r.Register(def)

	got := r.Definitions()
	require.Len(t, got, 2)
	require.Equal(t, registry.KindStep, got[0].Kind)
	require.Equal(t, registry.KindFeature, got[1].Kind)

	_, ok := r.Lookup(registry.KindProjectFeature, "plain")
	require.False(t, ok)

	byType, ok := r.DefinitionOf(newPlainStep("plain"))
	require.True(t, ok)
	require.Equal(t, registry.KindStep, byType.Kind, "the first definition of a Go type wins")
}

func TestValidateRegistry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		def     registry.Definition
		wantErr string
	}{
		{
			name: "consistent",
			def: registry.Definition{Kind: registry.KindStep, Name: "plain", Type: "plain",
				New: func() model.Configurable { return newPlainStep("plain") }},
		},
		{
			name: "type mismatch",
			def: registry.Definition{Kind: registry.KindStep, Name: "plain", Type: "plain",
				New: func() model.Configurable { return newPlainStep("other") }},
			wantErr: "definition declares type 'plain' but the entity carries 'other'",
		},
		{
			name: "wrong kind",
			def: registry.Definition{Kind: registry.KindProjectFeature, Name: "plain", Type: "plain",
				New: func() model.Configurable { return newPlainStep("plain") }},
			wantErr: "cannot be added to a projectFeature collection",
		},
		{
			name: "shadowed attribute",
			def: registry.Definition{Kind: registry.KindStep, Name: "shadow", Type: "shadow",
				New: func() model.Configurable { return newShadowingStep() }},
			wantErr: "property 'name' shadows a shared attribute",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := registry.New()
			r.Register(tc.def)
			err := r.ValidateRegistry(context.Background())
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
