package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Registry holds every template loaded at startup, keyed by template name.
// Templates are read once; the registry is read-only afterwards.
type Registry struct {
	templates map[string]*Template
}

// LoadDir parses every .yaml/.yml file in dir into the registry. A file that
// fails to parse aborts loading; a directory that does not exist yields an
// empty registry.
func LoadDir(dir string) (*Registry, error) {
	reg := &Registry{templates: make(map[string]*Template)}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Warn().Str("dir", dir).Msg("Template directory not found, starting with no templates")
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory '%s': %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template '%s': %w", path, err)
		}
		tpl, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
		}
		if _, exists := reg.templates[tpl.Metadata.Name]; exists {
			return nil, fmt.Errorf("duplicate template name '%s' in '%s'", tpl.Metadata.Name, path)
		}
		reg.templates[tpl.Metadata.Name] = tpl
		log.Debug().Str("template", tpl.Metadata.Name).Str("version", tpl.Metadata.Version).Msg("Loaded template")
	}

	return reg, nil
}

// NewRegistry builds a registry from already-parsed templates (used in tests).
func NewRegistry(templates ...*Template) *Registry {
	reg := &Registry{templates: make(map[string]*Template, len(templates))}
	for _, tpl := range templates {
		reg.templates[tpl.Metadata.Name] = tpl
	}
	return reg
}

// Get returns the template with the given name, or nil.
func (r *Registry) Get(name string) *Template {
	return r.templates[name]
}

// List returns all templates sorted by name.
func (r *Registry) List() []*Template {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]*Template, 0, len(names))
	for _, name := range names {
		list = append(list, r.templates[name])
	}
	return list
}
