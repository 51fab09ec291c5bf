package buildsteps

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/validate"
)

// DockerCommandStepType is the type of a Docker command step.
const DockerCommandStepType = "DockerCommand"

// DockerCommandStep runs a docker build, push or any other docker command.
type DockerCommandStep struct {
	*model.BuildStep

	CommandType *props.Compound[CommandType]
}

// NewDockerCommandStep creates a detached Docker command step.
func NewDockerCommandStep() *DockerCommandStep {
	s := &DockerCommandStep{BuildStep: model.NewBuildStep(DockerCommandStepType)}
	s.CommandType = props.CompoundOf(s.Bag(), "commandType", "docker.command.type", CommandTypes)
	return s
}

// DockerCommand registers a Docker command step into steps.
func DockerCommand(steps *model.BuildSteps, configure func(s *DockerCommandStep)) *DockerCommandStep {
	s := apply(NewDockerCommandStep(), configure)
	steps.Step(s)
	return s
}

// Validate reports a missing command type, then delegates to the active one.
func (s *DockerCommandStep) Validate(c validate.Consumer) {
	s.BuildStep.Validate(c)
	if !s.CommandType.IsSet() {
		validate.Mandatory(c, "commandType")
		return
	}
	props.ValidateActive(c, "commandType", s.CommandType)
}

// CommandType is one of DockerBuild, DockerPush or DockerOther.
type CommandType interface {
	props.Variant
	dockerCommand()
}

// CommandTypes are the variants of DockerCommandStep.CommandType.
var CommandTypes = props.NewVariantSet("CommandType",
	props.VariantDef[CommandType]{Name: "build", New: func() CommandType { return NewDockerBuild(nil) }},
	props.VariantDef[CommandType]{Name: "push", New: func() CommandType { return NewDockerPush(nil) }},
	props.VariantDef[CommandType]{Name: "other", New: func() CommandType { return NewDockerOther(nil) }},
)

// DockerBuild runs "docker build".
type DockerBuild struct {
	props.VariantBase

	Source *props.Compound[DockerfileSource]
	// ContextDir defaults to the directory of the Dockerfile when blank.
	ContextDir   *props.String
	Platform     *props.Enum[ImagePlatform]
	NamesAndTags *props.String
	CommandArgs  *props.String
}

// NewDockerBuild creates a build command and runs configure on it.
func NewDockerBuild(configure func(b *DockerBuild)) *DockerBuild {
	b := &DockerBuild{VariantBase: props.NewVariantBase("build")}
	bag := b.Bag()
	b.Source = props.CompoundOf(bag, "source", "dockerfile.source", DockerfileSources)
	b.ContextDir = bag.String("contextDir", "dockerfile.contextDir")
	b.Platform = props.EnumOf(bag, "platform", "dockerImage.platform", ImagePlatforms)
	b.NamesAndTags = bag.String("namesAndTags", "docker.image.namesAndTags")
	b.CommandArgs = bag.String("commandArgs", "command.args")
	return apply(b, configure)
}

func (*DockerBuild) dockerCommand() {}

// Validate requires a source and delegates to it.
func (b *DockerBuild) Validate(c validate.Consumer) {
	props.CheckEnums(c, "commandType.", b.Bag())
	if !b.Source.IsSet() {
		validate.Mandatory(c, "commandType.source")
		return
	}
	props.ValidateActive(c, "commandType.source", b.Source)
}

// DockerPush runs "docker push".
type DockerPush struct {
	props.VariantBase

	NamesAndTags         *props.String
	RemoveImageAfterPush *props.Bool
	CommandArgs          *props.String
}

// NewDockerPush creates a push command and runs configure on it.
func NewDockerPush(configure func(p *DockerPush)) *DockerPush {
	p := &DockerPush{VariantBase: props.NewVariantBase("push")}
	bag := p.Bag()
	p.NamesAndTags = bag.String("namesAndTags", "docker.image.namesAndTags")
	p.RemoveImageAfterPush = bag.Bool("removeImageAfterPush", "docker.push.remove.image", props.TrueOrEmpty)
	p.CommandArgs = bag.String("commandArgs", "command.args")
	return apply(p, configure)
}

func (*DockerPush) dockerCommand() {}

func (p *DockerPush) Validate(c validate.Consumer) {
	if !p.NamesAndTags.IsSet() {
		validate.Mandatory(c, "commandType.namesAndTags")
	}
}

// DockerOther runs an arbitrary docker sub-command.
type DockerOther struct {
	props.VariantBase

	SubCommand  *props.String
	WorkingDir  *props.String
	CommandArgs *props.String
}

// NewDockerOther creates a custom command and runs configure on it.
func NewDockerOther(configure func(o *DockerOther)) *DockerOther {
	o := &DockerOther{VariantBase: props.NewVariantBase("other")}
	bag := o.Bag()
	o.SubCommand = bag.String("subCommand", "docker.sub.command")
	o.WorkingDir = bag.String("workingDir", "teamcity.build.workingDir")
	o.CommandArgs = bag.String("commandArgs", "command.args")
	return apply(o, configure)
}

func (*DockerOther) dockerCommand() {}

func (o *DockerOther) Validate(c validate.Consumer) {
	if !o.SubCommand.IsSet() {
		validate.Mandatory(c, "commandType.subCommand")
	}
}

// DockerfileSource is where a build command takes its Dockerfile from.
type DockerfileSource interface {
	props.Variant
	dockerfileSource()
}

// DockerfileSources are the variants of DockerBuild.Source. "path" is the
// deprecated spelling of "file" and decodes as "file".
var DockerfileSources = props.NewVariantSet("Source",
	props.VariantDef[DockerfileSource]{Name: "file", New: func() DockerfileSource { return NewDockerfileFile(nil) }},
	props.VariantDef[DockerfileSource]{Name: "path", New: func() DockerfileSource { return NewDockerfilePath(nil) }, Deprecated: "use 'file' instead"},
	props.VariantDef[DockerfileSource]{Name: "url", New: func() DockerfileSource { return NewDockerfileURL(nil) }},
	props.VariantDef[DockerfileSource]{Name: "content", New: func() DockerfileSource { return NewDockerfileContent(nil) }},
)

// DockerfileFile reads the Dockerfile from the checkout directory.
type DockerfileFile struct {
	props.VariantBase
	Path *props.String
}

// NewDockerfileFile creates a file source and runs configure on it.
func NewDockerfileFile(configure func(f *DockerfileFile)) *DockerfileFile {
	f := &DockerfileFile{VariantBase: props.NewVariantBase("PATH")}
	f.Path = f.Bag().String("path", "dockerfile.path")
	return apply(f, configure)
}

func (*DockerfileFile) dockerfileSource() {}

func (f *DockerfileFile) Validate(c validate.Consumer) {
	if !f.Path.IsSet() {
		validate.Mandatory(c, "commandType.source.path")
	}
}

// DockerfilePath is the deprecated form of DockerfileFile.
type DockerfilePath struct {
	props.VariantBase
	Path *props.String
}

// NewDockerfilePath creates a path source and runs configure on it.
//
// Deprecated: use NewDockerfileFile.
func NewDockerfilePath(configure func(p *DockerfilePath)) *DockerfilePath {
	p := &DockerfilePath{VariantBase: props.NewVariantBase("PATH")}
	p.Path = p.Bag().String("path", "dockerfile.path")
	return apply(p, configure)
}

func (*DockerfilePath) dockerfileSource() {}

func (p *DockerfilePath) Validate(c validate.Consumer) {
	if !p.Path.IsSet() {
		validate.Mandatory(c, "commandType.source.path")
	}
}

// DockerfileURL downloads the Dockerfile.
type DockerfileURL struct {
	props.VariantBase
	URL *props.String
}

// NewDockerfileURL creates a URL source and runs configure on it.
func NewDockerfileURL(configure func(u *DockerfileURL)) *DockerfileURL {
	u := &DockerfileURL{VariantBase: props.NewVariantBase("URL")}
	u.URL = u.Bag().String("url", "dockerfile.url")
	return apply(u, configure)
}

func (*DockerfileURL) dockerfileSource() {}

func (u *DockerfileURL) Validate(c validate.Consumer) {
	if !u.URL.IsSet() {
		validate.Mandatory(c, "commandType.source.url")
	}
}

// DockerfileContent holds the Dockerfile inline.
type DockerfileContent struct {
	props.VariantBase
	Content *props.String
}

// NewDockerfileContent creates an inline source and runs configure on it.
func NewDockerfileContent(configure func(c *DockerfileContent)) *DockerfileContent {
	dc := &DockerfileContent{VariantBase: props.NewVariantBase("CONTENT")}
	dc.Content = dc.Bag().String("content", "dockerfile.content")
	return apply(dc, configure)
}

func (*DockerfileContent) dockerfileSource() {}

func (dc *DockerfileContent) Validate(c validate.Consumer) {
	if !dc.Content.IsSet() {
		validate.Mandatory(c, "commandType.source.content")
	}
}
