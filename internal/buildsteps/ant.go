package buildsteps

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/validate"
)

// AntStepType is the type of an Ant step.
const AntStepType = "Ant"

// TestPolicy selects which tests run first to reduce test feedback time.
type TestPolicy string

const (
	TestsDisabled                  TestPolicy = "DISABLED"
	TestsRecentlyFailed            TestPolicy = "RECENTLY_FAILED"
	TestsRecentlyFailedAndModified TestPolicy = "RECENTLY_FAILED_AND_MODIFIED"
	TestsModified                  TestPolicy = "MODIFIED"
)

// TestPolicies is the wire mapping of TestPolicy.
var TestPolicies = props.NewEnumTable("TestPolicy",
	props.EnumEntry[TestPolicy]{Value: TestsDisabled, Name: "DISABLED", Wire: ""},
	props.EnumEntry[TestPolicy]{Value: TestsRecentlyFailed, Name: "RECENTLY_FAILED", Wire: "recentlyFailed"},
	props.EnumEntry[TestPolicy]{Value: TestsRecentlyFailedAndModified, Name: "RECENTLY_FAILED_AND_MODIFIED", Wire: "recentlyFailed,newAndModified"},
	props.EnumEntry[TestPolicy]{Value: TestsModified, Name: "MODIFIED", Wire: "newAndModified"},
)

// AntStep runs Ant targets.
type AntStep struct {
	*model.BuildStep
	DockerWrapper

	Mode       *props.Compound[AntMode]
	WorkingDir *props.String
	// Targets is a space separated list of Ant targets.
	Targets      *props.String
	AntHome      *props.String
	AntArguments *props.String
	JDKHome      *props.String
	JVMArgs      *props.String

	ReduceTestFeedback *props.Enum[TestPolicy]
	CoverageEngine     *props.Compound[CoverageEngine]
}

// NewAntStep creates a detached Ant step.
func NewAntStep() *AntStep {
	s := &AntStep{BuildStep: model.NewBuildStep(AntStepType)}
	bag := s.Bag()
	s.Mode = props.CompoundOf(bag, "mode", "use-custom-build-file", AntModes)
	s.WorkingDir = bag.String("workingDir", "teamcity.build.workingDir")
	s.Targets = bag.String("targets", "target")
	s.AntHome = bag.String("antHome", "ant.home")
	s.AntArguments = bag.String("antArguments", "runnerArgs")
	s.JDKHome = bag.String("jdkHome", "target.jdk.home")
	s.JVMArgs = bag.String("jvmArgs", "")
	s.ReduceTestFeedback = props.EnumOf(bag, "reduceTestFeedback", "teamcity.tests.runRiskGroupTestsFirst", TestPolicies)
	s.CoverageEngine = props.CompoundOf(bag, "coverageEngine", "teamcity.coverage.runner", CoverageEngines)
	s.DockerWrapper = declareDockerWrapper(bag)
	return s
}

// Ant registers an Ant step into steps.
func Ant(steps *model.BuildSteps, configure func(s *AntStep)) *AntStep {
	s := apply(NewAntStep(), configure)
	steps.Step(s)
	return s
}

func (s *AntStep) Validate(c validate.Consumer) {
	s.BuildStep.Validate(c)
	props.ValidateActive(c, "mode", s.Mode)
	props.ValidateActive(c, "coverageEngine", s.CoverageEngine)
}

// AntMode is one of AntFile or AntScript.
type AntMode interface {
	props.Variant
	antMode()
}

// AntModes are the variants of AntStep.Mode.
var AntModes = props.NewVariantSet("Mode",
	props.VariantDef[AntMode]{Name: "antFile", New: func() AntMode { return NewAntFile(nil) }},
	props.VariantDef[AntMode]{Name: "antScript", New: func() AntMode { return NewAntScript(nil) }},
)

// AntFile runs a build file from the checkout directory.
type AntFile struct {
	props.VariantBase
	Path *props.String
}

// NewAntFile creates a build file mode and runs configure on it.
func NewAntFile(configure func(f *AntFile)) *AntFile {
	f := &AntFile{VariantBase: props.NewVariantBase("")}
	f.Path = f.Bag().String("path", "build-file-path")
	return apply(f, configure)
}

func (*AntFile) antMode() {}

// AntScript runs build file content given inline.
type AntScript struct {
	props.VariantBase
	Content *props.String
}

// NewAntScript creates an inline build file mode and runs configure on it.
func NewAntScript(configure func(s *AntScript)) *AntScript {
	s := &AntScript{VariantBase: props.NewVariantBase("true")}
	s.Content = s.Bag().String("content", "build-file")
	return apply(s, configure)
}

func (*AntScript) antMode() {}

func (s *AntScript) Validate(c validate.Consumer) {
	if !s.Content.IsSet() {
		validate.Mandatory(c, "mode.content")
	}
}

// CoverageEngine is one of IdeaCoverage, JacocoCoverage or EmmaCoverage.
type CoverageEngine interface {
	props.Variant
	coverageEngine()
}

// CoverageEngines are the variants of AntStep.CoverageEngine.
var CoverageEngines = props.NewVariantSet("CoverageEngine",
	props.VariantDef[CoverageEngine]{Name: "idea", New: func() CoverageEngine { return NewIdeaCoverage(nil) }},
	props.VariantDef[CoverageEngine]{Name: "jacoco", New: func() CoverageEngine { return NewJacocoCoverage(nil) }},
	props.VariantDef[CoverageEngine]{Name: "emma", New: func() CoverageEngine { return NewEmmaCoverage(nil) }},
)

// IdeaCoverage collects coverage with the IntelliJ IDEA engine.
type IdeaCoverage struct {
	props.VariantBase
	// IncludeClasses is a newline separated list of class name patterns.
	IncludeClasses *props.String
	ExcludeClasses *props.String
}

// NewIdeaCoverage creates an IDEA coverage engine and runs configure on it.
func NewIdeaCoverage(configure func(e *IdeaCoverage)) *IdeaCoverage {
	e := &IdeaCoverage{VariantBase: props.NewVariantBase("IDEA")}
	e.IncludeClasses = e.Bag().String("includeClasses", "teamcity.coverage.idea.includePatterns")
	e.ExcludeClasses = e.Bag().String("excludeClasses", "teamcity.coverage.idea.excludePatterns")
	return apply(e, configure)
}

func (*IdeaCoverage) coverageEngine() {}

// JacocoCoverage collects coverage with JaCoCo.
type JacocoCoverage struct {
	props.VariantBase
	ClassLocations *props.String
	ExcludeClasses *props.String
}

// NewJacocoCoverage creates a JaCoCo coverage engine and runs configure on it.
func NewJacocoCoverage(configure func(e *JacocoCoverage)) *JacocoCoverage {
	e := &JacocoCoverage{VariantBase: props.NewVariantBase("JACOCO")}
	e.ClassLocations = e.Bag().String("classLocations", "teamcity.coverage.jacoco.classpath")
	e.ExcludeClasses = e.Bag().String("excludeClasses", "teamcity.coverage.jacoco.patterns")
	return apply(e, configure)
}

func (*JacocoCoverage) coverageEngine() {}

// EmmaCoverage collects coverage with EMMA.
type EmmaCoverage struct {
	props.VariantBase
	Parameters     *props.String
	IncludeSources *props.Bool
}

// NewEmmaCoverage creates an EMMA coverage engine and runs configure on it.
func NewEmmaCoverage(configure func(e *EmmaCoverage)) *EmmaCoverage {
	e := &EmmaCoverage{VariantBase: props.NewVariantBase("EMMA")}
	e.Parameters = e.Bag().String("parameters", "teamcity.coverage.emma.instr.parameters")
	e.IncludeSources = e.Bag().Bool("includeSources", "teamcity.coverage.emma.include.source", props.TrueOrEmpty)
	return apply(e, configure)
}

func (*EmmaCoverage) coverageEngine() {}
