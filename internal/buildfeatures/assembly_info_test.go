package buildfeatures_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/buildfeatures"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/registry"
	"github.com/vk/stepconf/internal/validate"
)

func TestAssemblyInfo(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var patcher *buildfeatures.AssemblyInfoPatcher
	bt := model.NewBuildType("Build", func(bt *model.BuildType) {
		patcher = buildfeatures.AssemblyInfo(&bt.Features, func(f *buildfeatures.AssemblyInfoPatcher) {
			f.AssemblyFormat.Set("1.0.%build.counter%")
			f.PatchGlobalAssemblyInfo.Set(false)
		})
	})

	// --- Act ---
	problems := validate.Run(bt)

	// --- Assert ---
	require.Empty(t, problems)
	require.Equal(t, "JetBrains.AssemblyInfo", patcher.Type())
	require.True(t, patcher.Enabled)
	require.Equal(t, map[string]string{
		"assembly-format":            "1.0.%build.counter%",
		"patch-global-assembly-info": "false",
	}, patcher.Params().Map())

	patch, ok := patcher.PatchGlobalAssemblyInfo.Get()
	require.True(t, ok)
	require.False(t, patch)
	require.Equal(t, 1, bt.Features.Len())
}

func TestModule(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.RegisterModules(buildfeatures.Module{})
	require.NoError(t, r.ValidateRegistry(context.Background()))
	require.Equal(t, []string{"assemblyInfoPatcher"}, r.Names(registry.KindFeature))
}
