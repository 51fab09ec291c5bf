package buildsteps

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
)

// NodeJSStepType is the type of a Node.js step.
const NodeJSStepType = "nodejs-runner"

// NodeJSStep runs a shell script with Node.js available on the path.
type NodeJSStep struct {
	*model.BuildStep
	DockerWrapper

	WorkingDir  *props.String
	ShellScript *props.String
}

// NewNodeJSStep creates a detached Node.js step.
func NewNodeJSStep() *NodeJSStep {
	s := &NodeJSStep{BuildStep: model.NewBuildStep(NodeJSStepType)}
	bag := s.Bag()
	s.WorkingDir = bag.String("workingDir", "teamcity.build.workingDir")
	s.ShellScript = bag.String("shellScript", "")
	s.DockerWrapper = declareDockerWrapper(bag)
	return s
}

// NodeJS registers a Node.js step into steps.
func NodeJS(steps *model.BuildSteps, configure func(s *NodeJSStep)) *NodeJSStep {
	s := apply(NewNodeJSStep(), configure)
	steps.Step(s)
	return s
}
