package identity

import (
	"fmt"
	"time"
)

// Ownership metadata keys embedded into the argument map of every resource
// created for a managed system. These tags are the only persisted state:
// systems are reconstructed purely by scanning them.
const (
	TagSystemID  = "x-manage-system-id"
	TagTemplate  = "x-manage-template"
	TagVersion   = "x-manage-version"
	TagCreatedAt = "x-manage-created-at"
)

// Credential record keys, stored inside binding arguments on the credential
// registry exchange.
const (
	TagCredUsername  = "x-manage-username"
	TagCredPassword  = "x-manage-password"
	TagCredCreatedAt = "x-manage-created-at"
	TagCredKind      = "x-manage-credential-type"
)

// DefaultPrefix substitutes for an empty queue prefix.
const DefaultPrefix = "unnamed"

// DeriveSystemID builds the stable identity token for a logical system.
// The token is the sole join key correlating resources across independent
// broker objects.
func DeriveSystemID(templateName, vhost, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s@%s:%s", templateName, vhost, prefix)
}

// BuildMetadata returns the ownership tags for a new system's resources.
func BuildMetadata(systemID, templateName, templateVersion string) map[string]any {
	return map[string]any{
		TagSystemID:  systemID,
		TagTemplate:  templateName,
		TagVersion:   templateVersion,
		TagCreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// MergeArguments overlays ownership metadata on top of a spec's argument map.
// Metadata wins on key collision. The inputs are not mutated.
func MergeArguments(args, metadata map[string]any) map[string]any {
	merged := make(map[string]any, len(args)+len(metadata))
	for k, v := range args {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}
	return merged
}

// Tag reads a string-valued tag from a resource argument map.
func Tag(args map[string]any, key string) (string, bool) {
	if args == nil {
		return "", false
	}
	value, ok := args[key].(string)
	return value, ok && value != ""
}

// SystemIDOf reads the owning system id from a resource argument map.
func SystemIDOf(args map[string]any) (string, bool) {
	return Tag(args, TagSystemID)
}

// GroupBy indexes resources by a metadata key, the tag-based join that stands
// in for a relational store. Resources without the tag are dropped.
func GroupBy[T any](items []T, key func(T) (string, bool)) map[string][]T {
	groups := make(map[string][]T)
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		groups[k] = append(groups[k], item)
	}
	return groups
}

// PrefixFrom extracts the user-chosen queue prefix from the submitted
// parameter values. The parameter is conventionally named so it can be looked
// up generically.
func PrefixFrom(params map[string]any) string {
	for _, name := range []string{"queuePrefix", "prefix"} {
		if v, ok := params[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
