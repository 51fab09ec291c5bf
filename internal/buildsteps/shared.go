package buildsteps

import "github.com/vk/stepconf/internal/props"

// ImagePlatform is the platform of a Docker image.
type ImagePlatform string

const (
	PlatformAny     ImagePlatform = "Any"
	PlatformLinux   ImagePlatform = "Linux"
	PlatformWindows ImagePlatform = "Windows"
)

// ImagePlatforms is the wire mapping shared by every property holding an
// ImagePlatform.
var ImagePlatforms = props.NewEnumTable("ImagePlatform",
	props.EnumEntry[ImagePlatform]{Value: PlatformAny, Name: "Any", Wire: ""},
	props.EnumEntry[ImagePlatform]{Value: PlatformLinux, Name: "Linux", Wire: "linux"},
	props.EnumEntry[ImagePlatform]{Value: PlatformWindows, Name: "Windows", Wire: "windows"},
)

// DockerWrapper runs a step inside a Docker container. It is embedded in
// every step that supports container wrapping.
type DockerWrapper struct {
	// DockerImage is the image to run the step in.
	DockerImage         *props.String
	DockerImagePlatform *props.Enum[ImagePlatform]
	// DockerPull forces a pull before the run.
	DockerPull          *props.Bool
	DockerRunParameters *props.String
}

func declareDockerWrapper(b *props.Bag) DockerWrapper {
	return DockerWrapper{
		DockerImage:         b.String("dockerImage", "plugin.docker.imageId"),
		DockerImagePlatform: props.EnumOf(b, "dockerImagePlatform", "plugin.docker.imagePlatform", ImagePlatforms),
		DockerPull:          b.Bool("dockerPull", "plugin.docker.pull.enabled", props.TrueOrEmpty),
		DockerRunParameters: b.String("dockerRunParameters", "plugin.docker.run.parameters"),
	}
}

// apply runs configure on v when it is not nil and returns v.
func apply[T any](v T, configure func(T)) T {
	if configure != nil {
		configure(v)
	}
	return v
}
