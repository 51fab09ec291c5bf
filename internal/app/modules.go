package app

import (
	"github.com/vk/stepconf/internal/buildfeatures"
	"github.com/vk/stepconf/internal/buildsteps"
	"github.com/vk/stepconf/internal/projectfeatures"
	"github.com/vk/stepconf/internal/registry"
)

// CoreModules is the definitive list of all entity modules that are compiled
// into the stepconf binary.
var CoreModules = []registry.Module{
	buildsteps.Module{},
	buildfeatures.Module{},
	projectfeatures.Module{},
}
