package buildsteps

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/registry"
)

// Module registers every build step of this package.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.Register(registry.Definition{
		Kind:        registry.KindStep,
		Name:        "dockerCommand",
		Type:        DockerCommandStepType,
		Description: "Runs docker build, docker push or another docker command.",
		New:         func() model.Configurable { return NewDockerCommandStep() },
	})
	r.Register(registry.Definition{
		Kind:        registry.KindStep,
		Name:        "ant",
		Type:        AntStepType,
		Description: "Runs Ant targets from a build file or inline content.",
		New:         func() model.Configurable { return NewAntStep() },
	})
	r.Register(registry.Definition{
		Kind:        registry.KindStep,
		Name:        "python",
		Type:        PythonStepType,
		Description: "Runs a Python command, script or test tool.",
		New:         func() model.Configurable { return NewPythonStep() },
	})
	r.Register(registry.Definition{
		Kind:        registry.KindStep,
		Name:        "nodeJS",
		Type:        NodeJSStepType,
		Description: "Runs a shell script with Node.js.",
		New:         func() model.Configurable { return NewNodeJSStep() },
	})
	r.Register(registry.Definition{
		Kind:        registry.KindStep,
		Name:        "dotnetPublish",
		Type:        DotnetStepType,
		Description: "Runs dotnet publish.",
		New:         func() model.Configurable { return NewDotnetPublishStep() },
	})
	r.Register(registry.Definition{
		Kind:        registry.KindStep,
		Name:        "dotnetPack",
		Type:        DotnetStepType,
		Description: "Runs dotnet pack.",
		New:         func() model.Configurable { return NewDotnetPackStep() },
	})
}
