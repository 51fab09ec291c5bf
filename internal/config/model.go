package config

import (
	"fmt"
	"strings"

	"github.com/vk/stepconf/internal/model"
)

// Model is the unified, format-agnostic representation of the loaded
// pipeline definitions.
type Model struct {
	Projects []*model.Project
	// Files lists the files the model was loaded from, in load order.
	Files []string
	// Sources holds the raw content of Files, for rendering snippets.
	Sources map[string][]byte

	origins map[string]Origin
}

// Pos is a position in a file. Byte is the zero-based offset.
type Pos struct {
	Line   int
	Column int
	Byte   int
}

// Origin is the range of a definition file a piece of the model came from.
type Origin struct {
	Filename string
	Start    Pos
	End      Pos
}

func (o Origin) String() string {
	return fmt.Sprintf("%s:%d,%d", o.Filename, o.Start.Line, o.Start.Column)
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		Sources: make(map[string][]byte),
		origins: make(map[string]Origin),
	}
}

func originKey(scope, path string) string {
	if path == "" {
		return scope
	}
	return scope + "#" + path
}

// SetOrigin records where the property at path of the entity at scope was
// defined. An empty path stands for the entity itself.
func (m *Model) SetOrigin(scope, path string, o Origin) {
	m.origins[originKey(scope, path)] = o
}

// Locate finds the closest recorded origin of a property. A property that was
// never written, such as a missing mandatory one, resolves to its nearest
// enclosing block: "commandType.source.path" falls back to
// "commandType.source", then "commandType", then the entity, then the
// entities enclosing it.
func (m *Model) Locate(scope, path string) (Origin, bool) {
	for {
		for p := path; ; p = parentPath(p) {
			if o, ok := m.origins[originKey(scope, p)]; ok {
				return o, true
			}
			if p == "" {
				break
			}
		}
		i := strings.LastIndex(scope, "/")
		if i < 0 {
			return Origin{}, false
		}
		scope, path = scope[:i], ""
	}
}

// parentPath strips the last segment of a dotted path. Index suffixes count
// as segments: "conditions[0].name" → "conditions[0]" → "conditions" → "".
func parentPath(p string) string {
	i := strings.LastIndexAny(p, ".[")
	if i < 0 {
		return ""
	}
	return p[:i]
}
