package buildsteps

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/validate"
)

// PythonStepType is the type of a Python step.
const PythonStepType = "python-runner"

// PythonStep runs a Python command in an optional virtual environment.
type PythonStep struct {
	*model.BuildStep
	DockerWrapper

	WorkingDir    *props.String
	PythonVersion *props.Compound[PythonVersion]
	Environment   *props.Compound[PythonEnvironment]
	Command       *props.Compound[PythonCommand]
}

// NewPythonStep creates a detached Python step.
func NewPythonStep() *PythonStep {
	s := &PythonStep{BuildStep: model.NewBuildStep(PythonStepType)}
	bag := s.Bag()
	s.WorkingDir = bag.String("workingDir", "teamcity.build.workingDir")
	s.PythonVersion = props.CompoundOf(bag, "pythonVersion", "", PythonVersions)
	s.Environment = props.CompoundOf(bag, "environment", "envTool", PythonEnvironments)
	s.Command = props.CompoundOf(bag, "command", "", PythonCommands)
	s.DockerWrapper = declareDockerWrapper(bag)
	return s
}

// Python registers a Python step into steps.
func Python(steps *model.BuildSteps, configure func(s *PythonStep)) *PythonStep {
	s := apply(NewPythonStep(), configure)
	steps.Step(s)
	return s
}

// Validate requires a command.
func (s *PythonStep) Validate(c validate.Consumer) {
	s.BuildStep.Validate(c)
	props.ValidateActive(c, "pythonVersion", s.PythonVersion)
	props.ValidateActive(c, "environment", s.Environment)
	if !s.Command.IsSet() {
		validate.Mandatory(c, "command")
		return
	}
	props.ValidateActive(c, "command", s.Command)
}

// PythonVersion is one of Python2, Python3 or CustomPython.
type PythonVersion interface {
	props.Variant
	pythonVersion()
}

// PythonVersions are the variants of PythonStep.PythonVersion.
var PythonVersions = props.NewVariantSet("PythonVersion",
	props.VariantDef[PythonVersion]{Name: "python2", New: func() PythonVersion { return NewPython2(nil) }},
	props.VariantDef[PythonVersion]{Name: "python3", New: func() PythonVersion { return NewPython3(nil) }},
	props.VariantDef[PythonVersion]{Name: "customPython", New: func() PythonVersion { return NewCustomPython(nil) }},
)

// Python2 uses the Python 2 interpreter found on the agent.
type Python2 struct {
	props.VariantBase
	Arguments *props.String
}

func NewPython2(configure func(v *Python2)) *Python2 {
	v := &Python2{VariantBase: props.NewVariantBase("python2")}
	v.Arguments = v.Bag().String("arguments", "")
	return apply(v, configure)
}

func (*Python2) pythonVersion() {}

// Python3 uses the Python 3 interpreter found on the agent.
type Python3 struct {
	props.VariantBase
	Arguments *props.String
}

func NewPython3(configure func(v *Python3)) *Python3 {
	v := &Python3{VariantBase: props.NewVariantBase("python3")}
	v.Arguments = v.Bag().String("arguments", "")
	return apply(v, configure)
}

func (*Python3) pythonVersion() {}

// CustomPython uses an explicit interpreter executable.
type CustomPython struct {
	props.VariantBase
	Arguments  *props.String
	Executable *props.String
}

func NewCustomPython(configure func(v *CustomPython)) *CustomPython {
	v := &CustomPython{VariantBase: props.NewVariantBase("custom")}
	v.Arguments = v.Bag().String("arguments", "")
	v.Executable = v.Bag().String("executable", "pythonExecutable")
	return apply(v, configure)
}

func (*CustomPython) pythonVersion() {}

// PythonEnvironment is the tool that prepares the environment the command
// runs in.
type PythonEnvironment interface {
	props.Variant
	pythonEnvironment()
}

// PythonEnvironments are the variants of PythonStep.Environment.
var PythonEnvironments = props.NewVariantSet("Environment",
	props.VariantDef[PythonEnvironment]{Name: "virtualenv", New: func() PythonEnvironment { return NewVirtualenv(nil) }},
	props.VariantDef[PythonEnvironment]{Name: "venv", New: func() PythonEnvironment { return NewVenv(nil) }},
	props.VariantDef[PythonEnvironment]{Name: "pipenv", New: func() PythonEnvironment { return NewPipenv(nil) }},
	props.VariantDef[PythonEnvironment]{Name: "poetry", New: func() PythonEnvironment { return NewPoetry(nil) }},
	props.VariantDef[PythonEnvironment]{Name: "none", New: func() PythonEnvironment { return NewNoEnvironment() }},
)

// virtualenvFields is shared by Virtualenv and Venv, which store their
// settings under the same keys.
type virtualenvFields struct {
	RequirementsFile *props.String
	Name             *props.String
	PipArgs          *props.String
	VirtualenvArgs   *props.String
}

func declareVirtualenv(b *props.Bag) virtualenvFields {
	return virtualenvFields{
		RequirementsFile: b.String("requirementsFile", "virtualenvFile"),
		Name:             b.String("name", "virtualenvEnvName"),
		PipArgs:          b.String("pipArgs", "virtualenvPipArgs"),
		VirtualenvArgs:   b.String("virtualenvArgs", ""),
	}
}

// Virtualenv creates the environment with virtualenv.
type Virtualenv struct {
	props.VariantBase
	virtualenvFields
}

func NewVirtualenv(configure func(e *Virtualenv)) *Virtualenv {
	e := &Virtualenv{VariantBase: props.NewVariantBase("virtualenv")}
	e.virtualenvFields = declareVirtualenv(e.Bag())
	return apply(e, configure)
}

func (*Virtualenv) pythonEnvironment() {}

// Venv creates the environment with the venv module.
type Venv struct {
	props.VariantBase
	virtualenvFields
}

func NewVenv(configure func(e *Venv)) *Venv {
	e := &Venv{VariantBase: props.NewVariantBase("venv")}
	e.virtualenvFields = declareVirtualenv(e.Bag())
	return apply(e, configure)
}

func (*Venv) pythonEnvironment() {}

// Pipenv installs dependencies with pipenv.
type Pipenv struct {
	props.VariantBase
	Arguments *props.String
}

func NewPipenv(configure func(e *Pipenv)) *Pipenv {
	e := &Pipenv{VariantBase: props.NewVariantBase("pipenv")}
	e.Arguments = e.Bag().String("arguments", "pipenvArgs")
	return apply(e, configure)
}

func (*Pipenv) pythonEnvironment() {}

// Poetry installs dependencies with poetry.
type Poetry struct {
	props.VariantBase
	InstallArgs *props.String
	Executable  *props.String
}

func NewPoetry(configure func(e *Poetry)) *Poetry {
	e := &Poetry{VariantBase: props.NewVariantBase("poetry")}
	e.InstallArgs = e.Bag().String("installArgs", "poetryInstallArgs")
	e.Executable = e.Bag().String("executable", "poetryExecutable")
	return apply(e, configure)
}

func (*Poetry) pythonEnvironment() {}

// NoEnvironment runs the command with the interpreter as is.
type NoEnvironment struct {
	props.VariantBase
}

func NewNoEnvironment() *NoEnvironment {
	return &NoEnvironment{VariantBase: props.NewVariantBase("none")}
}

func (*NoEnvironment) pythonEnvironment() {}

// PythonCommand is what the step runs.
type PythonCommand interface {
	props.Variant
	pythonCommand()
}

// PythonCommands are the variants of PythonStep.Command.
var PythonCommands = props.NewVariantSet("Command",
	props.VariantDef[PythonCommand]{Name: "custom", New: func() PythonCommand { return NewPythonCustom(nil) }},
	props.VariantDef[PythonCommand]{Name: "module", New: func() PythonCommand { return NewPythonModule(nil) }},
	props.VariantDef[PythonCommand]{Name: "file", New: func() PythonCommand { return NewPythonFile(nil) }},
	props.VariantDef[PythonCommand]{Name: "script", New: func() PythonCommand { return NewPythonScript(nil) }},
	props.VariantDef[PythonCommand]{Name: "pylint", New: func() PythonCommand { return NewPylint(nil) }},
	props.VariantDef[PythonCommand]{Name: "flake8", New: func() PythonCommand { return NewFlake8(nil) }},
	props.VariantDef[PythonCommand]{Name: "unittest", New: func() PythonCommand { return NewUnittest(nil) }},
	props.VariantDef[PythonCommand]{Name: "pytest", New: func() PythonCommand { return NewPytest(nil) }},
)

// PythonCustom passes raw arguments to the interpreter.
type PythonCustom struct {
	props.VariantBase
	Arguments *props.String
}

func NewPythonCustom(configure func(c *PythonCustom)) *PythonCustom {
	c := &PythonCustom{VariantBase: props.NewVariantBase("custom")}
	c.Arguments = c.Bag().String("arguments", "innerArguments")
	return apply(c, configure)
}

func (*PythonCustom) pythonCommand() {}

// PythonModule runs a module with "python -m".
type PythonModule struct {
	props.VariantBase
	Module          *props.String
	ScriptArguments *props.String
}

func NewPythonModule(configure func(c *PythonModule)) *PythonModule {
	c := &PythonModule{VariantBase: props.NewVariantBase("module")}
	c.Module = c.Bag().String("module", "")
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*PythonModule) pythonCommand() {}

// PythonFile runs a script file.
type PythonFile struct {
	props.VariantBase
	Filename        *props.String
	ScriptArguments *props.String
}

func NewPythonFile(configure func(c *PythonFile)) *PythonFile {
	c := &PythonFile{VariantBase: props.NewVariantBase("file")}
	c.Filename = c.Bag().String("filename", "scriptFile")
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*PythonFile) pythonCommand() {}

// PythonScript runs inline script content.
type PythonScript struct {
	props.VariantBase
	Content         *props.String
	ScriptArguments *props.String
}

func NewPythonScript(configure func(c *PythonScript)) *PythonScript {
	c := &PythonScript{VariantBase: props.NewVariantBase("script")}
	c.Content = c.Bag().String("content", "scriptContent")
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*PythonScript) pythonCommand() {}

// Pylint runs pylint.
type Pylint struct {
	props.VariantBase
	InstallToolPackage *props.Bool
	ScriptArguments    *props.String
}

func NewPylint(configure func(c *Pylint)) *Pylint {
	c := &Pylint{VariantBase: props.NewVariantBase("pylint")}
	c.InstallToolPackage = c.Bag().Bool("installToolPackage", "", props.TrueOrEmpty)
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*Pylint) pythonCommand() {}

// Flake8 runs flake8. Its discriminator is "flake".
type Flake8 struct {
	props.VariantBase
	InstallToolPackage *props.Bool
	ScriptArguments    *props.String
}

func NewFlake8(configure func(c *Flake8)) *Flake8 {
	c := &Flake8{VariantBase: props.NewVariantBase("flake")}
	c.InstallToolPackage = c.Bag().Bool("installToolPackage", "", props.TrueOrEmpty)
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*Flake8) pythonCommand() {}

// Unittest runs the unittest test runner.
type Unittest struct {
	props.VariantBase
	IsTestReportingEnabled *props.Bool
	IsCoverageEnabled      *props.Bool
	CoverageArgs           *props.String
	ScriptArguments        *props.String
}

func NewUnittest(configure func(c *Unittest)) *Unittest {
	c := &Unittest{VariantBase: props.NewVariantBase("unittest")}
	c.IsTestReportingEnabled = c.Bag().Bool("isTestReportingEnabled", "", props.TrueOrEmpty)
	c.IsCoverageEnabled = c.Bag().Bool("isCoverageEnabled", "", props.DefaultBool)
	c.CoverageArgs = c.Bag().String("coverageArgs", "")
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*Unittest) pythonCommand() {}

// Pytest runs pytest.
type Pytest struct {
	props.VariantBase
	InstallToolPackage     *props.Bool
	IsTestReportingEnabled *props.Bool
	IsCoverageEnabled      *props.Bool
	CoverageArgs           *props.String
	ScriptArguments        *props.String
}

func NewPytest(configure func(c *Pytest)) *Pytest {
	c := &Pytest{VariantBase: props.NewVariantBase("pytest")}
	c.InstallToolPackage = c.Bag().Bool("installToolPackage", "", props.TrueOrEmpty)
	c.IsTestReportingEnabled = c.Bag().Bool("isTestReportingEnabled", "", props.TrueOrEmpty)
	c.IsCoverageEnabled = c.Bag().Bool("isCoverageEnabled", "", props.DefaultBool)
	c.CoverageArgs = c.Bag().String("coverageArgs", "")
	c.ScriptArguments = c.Bag().String("scriptArguments", "")
	return apply(c, configure)
}

func (*Pytest) pythonCommand() {}
