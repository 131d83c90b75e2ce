package template

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMalformed indicates a template document that failed structural
// validation. No partial template is returned alongside it.
var ErrMalformed = errors.New("malformed template")

// Parameter kinds.
const (
	KindString           = "string"
	KindNumber           = "number"
	KindBoolean          = "boolean"
	KindChoice           = "choice"            // enumerated choice
	KindSearchableChoice = "searchable-choice" // choice backed by a broker resource lookup
)

// Dynamic source resource kinds.
const (
	SourceVHosts    = "vhosts"
	SourceExchanges = "exchanges"
	SourceQueues    = "queues"
)

type Metadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

type Validation struct {
	Min           *float64 `yaml:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty"`
	Pattern       string   `yaml:"pattern,omitempty"`
	AllowedValues []any    `yaml:"allowedValues,omitempty"`
}

type ResourceFilter struct {
	NameContains string `yaml:"nameContains,omitempty"`
}

// DynamicSource makes a choice parameter's options come from a live broker
// resource listing instead of a static allowedValues list.
type DynamicSource struct {
	ResourceKind       string          `yaml:"resourceKind"`
	DependsOnParameter string          `yaml:"dependsOnParameter,omitempty"`
	Filter             *ResourceFilter `yaml:"filter,omitempty"`
}

type Parameter struct {
	Name          string         `yaml:"name"`
	Label         string         `yaml:"label"`
	Kind          string         `yaml:"kind"`
	Required      *bool          `yaml:"required"`
	Default       any            `yaml:"default,omitempty"`
	Validation    *Validation    `yaml:"validation,omitempty"`
	DynamicSource *DynamicSource `yaml:"dynamicSource,omitempty"`
}

func (p *Parameter) IsRequired() bool {
	return p.Required != nil && *p.Required
}

type ExchangeSpec struct {
	Name             string         `yaml:"name"`
	Type             string         `yaml:"type"`
	Durable          bool           `yaml:"durable"`
	AutoDelete       bool           `yaml:"autoDelete"`
	Internal         bool           `yaml:"internal"`
	Arguments        map[string]any `yaml:"arguments,omitempty"`
	ReuseIfExists    bool           `yaml:"reuseIfExists"`
	ValidateIfExists map[string]any `yaml:"validateIfExists,omitempty"`
}

type QueueSpec struct {
	Name             string         `yaml:"name"`
	Durable          bool           `yaml:"durable"`
	AutoDelete       bool           `yaml:"autoDelete"`
	Arguments        map[string]any `yaml:"arguments,omitempty"`
	ReuseIfExists    bool           `yaml:"reuseIfExists"`
	ValidateIfExists map[string]any `yaml:"validateIfExists,omitempty"`
}

type BindingSpec struct {
	Source          string         `yaml:"source"`
	Destination     string         `yaml:"destination"`
	DestinationKind string         `yaml:"destinationKind"` // "queue" (default) or "exchange"
	RoutingKey      string         `yaml:"routingKey"`
	Arguments       map[string]any `yaml:"arguments,omitempty"`
}

// Template is an immutable parsed template document. One instance per
// template name, loaded once at startup; rendering never mutates it.
type Template struct {
	Metadata   Metadata       `yaml:"template"`
	Parameters []Parameter    `yaml:"parameters"`
	Exchanges  []ExchangeSpec `yaml:"exchanges"`
	Queues     []QueueSpec    `yaml:"queues"`
	Bindings   []BindingSpec  `yaml:"bindings"`
}

// RenderedSystemConfig is a fully substituted resource set: every ${param}
// placeholder resolved to a literal value.
type RenderedSystemConfig struct {
	VHost     string
	Exchanges []ExchangeSpec
	Queues    []QueueSpec
	Bindings  []BindingSpec
}

// Parse unmarshals and structurally validates a template document.
func Parse(raw []byte) (*Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if tpl.Metadata.Name == "" {
		return nil, fmt.Errorf("%w: missing template name", ErrMalformed)
	}
	if tpl.Metadata.Version == "" {
		return nil, fmt.Errorf("%w: missing template version", ErrMalformed)
	}
	if len(tpl.Parameters) == 0 {
		return nil, fmt.Errorf("%w: template '%s' declares no parameters", ErrMalformed, tpl.Metadata.Name)
	}
	if len(tpl.Queues) == 0 {
		return nil, fmt.Errorf("%w: template '%s' declares no queues", ErrMalformed, tpl.Metadata.Name)
	}

	names := make(map[string]bool, len(tpl.Parameters))
	for i := range tpl.Parameters {
		p := &tpl.Parameters[i]
		if p.Name == "" || p.Label == "" || p.Kind == "" || p.Required == nil {
			return nil, fmt.Errorf("%w: parameter %d of template '%s' must declare name, label, kind and required",
				ErrMalformed, i, tpl.Metadata.Name)
		}
		if names[p.Name] {
			return nil, fmt.Errorf("%w: duplicate parameter '%s' in template '%s'", ErrMalformed, p.Name, tpl.Metadata.Name)
		}
		names[p.Name] = true
	}

	// dependsOnParameter must reference a parameter of the same template
	for i := range tpl.Parameters {
		ds := tpl.Parameters[i].DynamicSource
		if ds == nil || ds.DependsOnParameter == "" {
			continue
		}
		if !names[ds.DependsOnParameter] {
			return nil, fmt.Errorf("%w: parameter '%s' depends on unknown parameter '%s'",
				ErrMalformed, tpl.Parameters[i].Name, ds.DependsOnParameter)
		}
	}

	return &tpl, nil
}

// DefaultValues returns the declared defaults, omitting parameters without one.
func DefaultValues(tpl *Template) map[string]any {
	values := make(map[string]any)
	for _, p := range tpl.Parameters {
		if p.Default != nil {
			values[p.Name] = p.Default
		}
	}
	return values
}
