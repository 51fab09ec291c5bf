// Package buildfeatures implements build features: settings applied to a
// whole build type rather than to a single step.
package buildfeatures

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/registry"
)

// AssemblyInfoPatcherType is the type of the AssemblyInfo patcher feature.
const AssemblyInfoPatcherType = "JetBrains.AssemblyInfo"

// AssemblyInfoPatcher rewrites AssemblyInfo files with build-specific
// versions before the build and restores them afterwards.
type AssemblyInfoPatcher struct {
	*model.BuildFeature

	// AssemblyFormat is the AssemblyVersion pattern, e.g. "1.0.%build.counter%".
	AssemblyFormat *props.String
	FileFormat     *props.String
	InfoFormat     *props.String
	// PatchGlobalAssemblyInfo also patches GlobalAssemblyInfo files.
	PatchGlobalAssemblyInfo *props.Bool
}

// NewAssemblyInfoPatcher creates a detached feature.
func NewAssemblyInfoPatcher() *AssemblyInfoPatcher {
	f := &AssemblyInfoPatcher{BuildFeature: model.NewBuildFeature(AssemblyInfoPatcherType)}
	bag := f.Bag()
	f.AssemblyFormat = bag.String("assemblyFormat", "assembly-format")
	f.FileFormat = bag.String("fileFormat", "file-format")
	f.InfoFormat = bag.String("infoFormat", "info-format")
	f.PatchGlobalAssemblyInfo = bag.Bool("patchGlobalAssemblyInfo", "patch-global-assembly-info", props.DefaultBool)
	return f
}

// AssemblyInfo registers the feature into features.
func AssemblyInfo(features *model.BuildFeatures, configure func(f *AssemblyInfoPatcher)) *AssemblyInfoPatcher {
	f := NewAssemblyInfoPatcher()
	if configure != nil {
		configure(f)
	}
	features.Feature(f)
	return f
}

// Module registers every build feature of this package.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.Register(registry.Definition{
		Kind:        registry.KindFeature,
		Name:        "assemblyInfoPatcher",
		Type:        AssemblyInfoPatcherType,
		Description: "Patches AssemblyInfo files with the build number.",
		New:         func() model.Configurable { return NewAssemblyInfoPatcher() },
	})
}
