// Package buildsteps implements the build steps: Docker command, Ant,
// Python, Node.js and the .NET publish and pack steps.
//
// Every step comes with a constructor returning a detached step and a
// registration function that configures the step and appends it to a
// build type:
//
//	buildsteps.DockerCommand(&bt.Steps, func(s *buildsteps.DockerCommandStep) {
//		s.Name = "Build image"
//		s.CommandType.Set(buildsteps.NewDockerBuild(func(b *buildsteps.DockerBuild) {
//			b.Source.Set(buildsteps.NewDockerfileFile(func(f *buildsteps.DockerfileFile) {
//				f.Path.Set("Dockerfile")
//			}))
//		}))
//	})
//
// Registration never validates. Problems are reported when the enclosing
// project is validated.
package buildsteps
