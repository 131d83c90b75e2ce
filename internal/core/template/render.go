package template

import (
	"fmt"
	"regexp"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)\}`)

// Render substitutes every ${param} placeholder in the template's resource
// specs with the merged parameter values and returns a fully resolved config.
// The input template is never mutated; all specs are deep-copied during
// substitution.
func Render(tpl *Template, values map[string]any) *RenderedSystemConfig {
	merged := mergeValues(tpl, values)

	cfg := &RenderedSystemConfig{
		Exchanges: make([]ExchangeSpec, len(tpl.Exchanges)),
		Queues:    make([]QueueSpec, len(tpl.Queues)),
		Bindings:  make([]BindingSpec, len(tpl.Bindings)),
	}

	for i, ex := range tpl.Exchanges {
		rendered := ex
		rendered.Name = renderToString(ex.Name, merged)
		rendered.Arguments = renderMap(ex.Arguments, merged)
		rendered.ValidateIfExists = renderMap(ex.ValidateIfExists, merged)
		cfg.Exchanges[i] = rendered
	}

	for i, q := range tpl.Queues {
		rendered := q
		rendered.Name = renderToString(q.Name, merged)
		rendered.Arguments = renderMap(q.Arguments, merged)
		rendered.ValidateIfExists = renderMap(q.ValidateIfExists, merged)
		cfg.Queues[i] = rendered
	}

	for i, b := range tpl.Bindings {
		rendered := b
		rendered.Source = renderToString(b.Source, merged)
		rendered.Destination = renderToString(b.Destination, merged)
		rendered.RoutingKey = renderToString(b.RoutingKey, merged)
		rendered.Arguments = renderMap(b.Arguments, merged)
		cfg.Bindings[i] = rendered
	}

	return cfg
}

// ValidateAndRender validates first; any validation error short-circuits
// rendering and no config is produced.
func ValidateAndRender(tpl *Template, values map[string]any) (*RenderedSystemConfig, []ValidationError) {
	if errs := Validate(tpl, values); len(errs) > 0 {
		return nil, errs
	}
	return Render(tpl, values), nil
}

// renderValue substitutes placeholders in a single value. A string that is
// exactly one placeholder resolves to the parameter's native value, so
// numeric and boolean parameters keep their type. A placeholder embedded in
// surrounding text stringifies; unknown parameters substitute as "".
func renderValue(value any, values map[string]any) any {
	switch v := value.(type) {
	case string:
		return renderString(v, values)
	case map[string]any:
		return renderMap(v, values)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = renderValue(item, values)
		}
		return out
	}
	return value
}

func renderString(s string, values map[string]any) any {
	if match := placeholderRe.FindStringSubmatch(s); match != nil && match[0] == s {
		if v, ok := values[match[1]]; ok {
			return v
		}
		return ""
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(token string) string {
		name := token[2 : len(token)-1]
		v, ok := values[name]
		if !ok {
			return ""
		}
		return stringify(v)
	})
}

// renderToString is renderString for fields that are strings by definition
// (resource names, routing keys).
func renderToString(s string, values map[string]any) string {
	v := renderString(s, values)
	if str, ok := v.(string); ok {
		return str
	}
	return stringify(v)
}

func renderMap(m map[string]any, values map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = renderValue(v, values)
	}
	return out
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	// yaml floats that are whole numbers read better without the fraction
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%v", v)
}
