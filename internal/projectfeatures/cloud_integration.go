// Package projectfeatures implements project features: settings that apply
// to a project and, optionally, its subprojects.
package projectfeatures

import (
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/registry"
)

// CloudIntegrationType is the type of the cloud integration feature.
const CloudIntegrationType = "CloudIntegration"

// CloudIntegration controls whether cloud agent profiles of the project can
// be used.
type CloudIntegration struct {
	*model.ProjectFeature

	Enabled            *props.Bool
	SubprojectsEnabled *props.Bool
	AllowOverride      *props.Bool
}

// NewCloudIntegration creates a detached feature.
func NewCloudIntegration() *CloudIntegration {
	f := &CloudIntegration{ProjectFeature: model.NewProjectFeature(CloudIntegrationType)}
	bag := f.Bag()
	f.Enabled = bag.Bool("enabled", "", props.DefaultBool)
	f.SubprojectsEnabled = bag.Bool("subprojectsEnabled", "SubprojectsEnabled", props.DefaultBool)
	f.AllowOverride = bag.Bool("allowOverride", "AllowOverride", props.DefaultBool)
	return f
}

// Cloud registers the feature into features.
func Cloud(features *model.ProjectFeatures, configure func(f *CloudIntegration)) *CloudIntegration {
	f := NewCloudIntegration()
	if configure != nil {
		configure(f)
	}
	features.Feature(f)
	return f
}

// Module registers every project feature of this package.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.Register(registry.Definition{
		Kind:        registry.KindProjectFeature,
		Name:        "cloudIntegration",
		Type:        CloudIntegrationType,
		Description: "Enables cloud agents for the project.",
		New:         func() model.Configurable { return NewCloudIntegration() },
	})
}
