package testutil

// ExampleHCL is a complete, valid definition file exercising a project
// feature, a build type with a Docker build step carrying a condition and a
// raw parameter, and a build feature.
const ExampleHCL = `
project "MyProject" {
  name = "My project"

  feature "cloudIntegration" {
    enabled = false
  }

  buildType "Build" {
    name = "Build"

    step "dockerCommand" {
      id            = "DockerBuild"
      name          = "Build image"
      executionMode = "RUN_ON_SUCCESS"

      condition "equals" {
        name  = "teamcity.build.branch"
        value = "release"
      }

      commandType "build" {
        source "file" {
          path = "Dockerfile"
        }
        platform = "Linux"
      }

      params = {
        "custom.key" = "value"
      }
    }

    feature "assemblyInfoPatcher" {
      assemblyFormat = "1.0.%build.counter%"
    }
  }
}
`
