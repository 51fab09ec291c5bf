package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/stepconf/internal/config"
	"github.com/vk/stepconf/internal/ctxlog"
	"github.com/vk/stepconf/internal/fsutil"
	"github.com/vk/stepconf/internal/hclutil"
	"github.com/vk/stepconf/internal/registry"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	registry *registry.Registry
	include  string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a loader that resolves entity types through reg and
// discovers files inside directories with the include glob. An empty include
// uses fsutil.DefaultInclude.
func NewLoader(reg *registry.Registry, include string) *Loader {
	if include == "" {
		include = fsutil.DefaultInclude
	}
	return &Loader{registry: reg, include: include}
}

// Load parses every discovered file and translates its project blocks.
// Problems are collected across all files; when any of them is an error the
// returned error is the full hcl.Diagnostics value.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths), "include", l.include)

	files, err := fsutil.FindFiles(paths, l.include)
	if err != nil {
		return nil, fmt.Errorf("failed to discover definition files: %w", err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	m := config.NewModel()
	d := &decoder{registry: l.registry, model: m}
	parser := hclparse.NewParser()
	projectRanges := make(map[string]hcl.Range)

	var diags hcl.Diagnostics
	for _, file := range files {
		hclFile, ds := parser.ParseHCLFile(file)
		diags = append(diags, ds...)
		if hclFile == nil {
			continue
		}
		m.Files = append(m.Files, file)
		m.Sources[file] = hclFile.Bytes
		if ds.HasErrors() {
			// A body that failed to parse only produces follow-up noise.
			continue
		}

		content, ds := hclFile.Body.Content(fileSchema)
		diags = append(diags, ds...)
		for _, block := range content.Blocks {
			id := block.Labels[0]
			if prev, dup := projectRanges[id]; dup {
				diags = append(diags, hclutil.LabelError(block,
					"Duplicate project",
					fmt.Sprintf("A project with id %q was already defined at %s.", id, prev),
				))
				continue
			}
			projectRanges[id] = block.DefRange

			p, ds := d.translateProject(ctx, block)
			diags = append(diags, ds...)
			m.Projects = append(m.Projects, p)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(m.Files), "projects", len(m.Projects), "diagnostics", len(diags))
	if diags.HasErrors() {
		return m, diags
	}
	return m, nil
}
