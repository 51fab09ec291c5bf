package buildsteps

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
)

// DotnetStepType is the type shared by every .NET step. The command param
// tells them apart.
const DotnetStepType = "dotnet"

// Verbosity is the logging verbosity of the dotnet CLI.
type Verbosity string

const (
	VerbosityQuiet      Verbosity = "Quiet"
	VerbosityMinimal    Verbosity = "Minimal"
	VerbosityNormal     Verbosity = "Normal"
	VerbosityDetailed   Verbosity = "Detailed"
	VerbosityDiagnostic Verbosity = "Diagnostic"
)

// Verbosities stores each value as its lower-cased name.
var Verbosities = props.NewDefaultEnumTable("Verbosity",
	VerbosityQuiet, VerbosityMinimal, VerbosityNormal, VerbosityDetailed, VerbosityDiagnostic,
)

// dotnetFields are the properties every .NET step shares.
type dotnetFields struct {
	// Projects is a newline separated list of project files or wildcards.
	Projects      *props.String
	WorkingDir    *props.String
	Configuration *props.String
	Runtime       *props.String
	OutputDir     *props.String
	VersionSuffix *props.String
	SkipBuild     *props.Bool
	Args          *props.String
	Logging       *props.Enum[Verbosity]
	// SDK lists the .NET SDK versions the step requires.
	SDK *props.String
}

func newDotnetStep(command string) *model.BuildStep {
	s := model.NewBuildStep(DotnetStepType)
	s.Param("command", command)
	return s
}

// DotnetPublishStep runs "dotnet publish".
type DotnetPublishStep struct {
	*model.BuildStep
	dotnetFields
	DockerWrapper

	Framework *props.String
}

// NewDotnetPublishStep creates a detached publish step.
func NewDotnetPublishStep() *DotnetPublishStep {
	s := &DotnetPublishStep{BuildStep: newDotnetStep("publish")}
	bag := s.Bag()
	s.Projects = bag.String("projects", "paths")
	s.WorkingDir = bag.String("workingDir", "teamcity.build.workingDir")
	s.Framework = bag.String("framework", "")
	s.Configuration = bag.String("configuration", "")
	s.Runtime = bag.String("runtime", "")
	s.OutputDir = bag.String("outputDir", "")
	s.SkipBuild = bag.Bool("skipBuild", "", props.TrueOrEmpty)
	s.VersionSuffix = bag.String("versionSuffix", "")
	s.Args = bag.String("args", "")
	s.Logging = props.EnumOf(bag, "logging", "verbosity", Verbosities)
	s.SDK = bag.String("sdk", "required.sdk")
	s.DockerWrapper = declareDockerWrapper(bag)
	return s
}

// DotnetPublish registers a publish step into steps.
func DotnetPublish(steps *model.BuildSteps, configure func(s *DotnetPublishStep)) *DotnetPublishStep {
	s := apply(NewDotnetPublishStep(), configure)
	steps.Step(s)
	return s
}

// DotnetPackStep runs "dotnet pack".
type DotnetPackStep struct {
	*model.BuildStep
	dotnetFields
	DockerWrapper
}

// NewDotnetPackStep creates a detached pack step.
func NewDotnetPackStep() *DotnetPackStep {
	s := &DotnetPackStep{BuildStep: newDotnetStep("pack")}
	bag := s.Bag()
	s.Projects = bag.String("projects", "paths")
	s.WorkingDir = bag.String("workingDir", "teamcity.build.workingDir")
	s.Configuration = bag.String("configuration", "")
	s.Runtime = bag.String("runtime", "")
	s.OutputDir = bag.String("outputDir", "")
	s.VersionSuffix = bag.String("versionSuffix", "")
	s.SkipBuild = bag.Bool("skipBuild", "", props.TrueOrEmpty)
	s.Args = bag.String("args", "")
	s.Logging = props.EnumOf(bag, "logging", "verbosity", Verbosities)
	s.SDK = bag.String("sdk", "required.sdk")
	s.DockerWrapper = declareDockerWrapper(bag)
	return s
}

// DotnetPack registers a pack step into steps.
func DotnetPack(steps *model.BuildSteps, configure func(s *DotnetPackStep)) *DotnetPackStep {
	s := apply(NewDotnetPackStep(), configure)
	steps.Step(s)
	return s
}
