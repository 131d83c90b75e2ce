package template

import (
	"fmt"
	"regexp"
	"strconv"
)

// ValidationError is a single per-field parameter failure. Non-fatal; the
// full list is returned so a caller can display every failing field at once.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the given parameter values (merged over the template's
// defaults) against each parameter's kind and declared validation rules.
func Validate(tpl *Template, values map[string]any) []ValidationError {
	merged := mergeValues(tpl, values)

	var errs []ValidationError
	for _, p := range tpl.Parameters {
		value, present := merged[p.Name]
		if !present || value == nil || value == "" {
			if p.IsRequired() {
				errs = append(errs, ValidationError{Field: p.Name, Message: "is required"})
			}
			continue
		}

		switch p.Kind {
		case KindNumber:
			num, ok := toNumber(value)
			if !ok {
				errs = append(errs, ValidationError{Field: p.Name, Message: "must be a number"})
				break
			}
			if v := p.Validation; v != nil {
				if v.Min != nil && num < *v.Min {
					errs = append(errs, ValidationError{
						Field:   p.Name,
						Message: fmt.Sprintf("must be at least %v", *v.Min),
					})
				}
				if v.Max != nil && num > *v.Max {
					errs = append(errs, ValidationError{
						Field:   p.Name,
						Message: fmt.Sprintf("must be at most %v", *v.Max),
					})
				}
			}
		case KindBoolean:
			if _, ok := value.(bool); !ok {
				errs = append(errs, ValidationError{Field: p.Name, Message: "must be a boolean"})
			}
		default:
			if v := p.Validation; v != nil && v.Pattern != "" {
				str := fmt.Sprintf("%v", value)
				re, err := regexp.Compile(v.Pattern)
				if err != nil {
					errs = append(errs, ValidationError{
						Field:   p.Name,
						Message: fmt.Sprintf("has an invalid pattern '%s'", v.Pattern),
					})
				} else if !re.MatchString(str) {
					errs = append(errs, ValidationError{
						Field:   p.Name,
						Message: fmt.Sprintf("must match pattern '%s'", v.Pattern),
					})
				}
			}
		}

		// Allowed set applies to any kind when declared.
		if v := p.Validation; v != nil && len(v.AllowedValues) > 0 {
			if !inAllowedSet(value, v.AllowedValues) {
				errs = append(errs, ValidationError{Field: p.Name, Message: "is not an allowed value"})
			}
		}
	}
	return errs
}

// mergeValues overlays explicit values on top of declared defaults.
func mergeValues(tpl *Template, values map[string]any) map[string]any {
	merged := DefaultValues(tpl)
	for name, value := range values {
		merged[name] = value
	}
	return merged
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		num, err := strconv.ParseFloat(v, 64)
		return num, err == nil
	}
	return 0, false
}

func inAllowedSet(value any, allowed []any) bool {
	str := fmt.Sprintf("%v", value)
	for _, a := range allowed {
		if fmt.Sprintf("%v", a) == str {
			return true
		}
	}
	return false
}
