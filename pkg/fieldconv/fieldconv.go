// Package fieldconv converts between the storage row shape (snake_case
// keys, serialized image list) and the client-facing object shape
// (camelCase keys, real string slice).
package fieldconv

import (
	"encoding/json"
	"strings"
	"unicode"
)

// itemFieldAliases maps the client-side names of category-specific item
// fields to their canonical column names. Some fields accept both a
// short alias and the fully qualified camelCase name.
var itemFieldAliases = map[string]string{
	"courseCode": "course_code",
	"moduleName": "module_name",
	// electronics: accept both short and qualified naming
	"model":                  "model_number",
	"modelNumber":            "model_number",
	"warrantyStatus":         "warranty_status",
	"purchaseDate":           "original_purchase_date",
	"originalPurchaseDate":   "original_purchase_date",
	"accessories":            "accessories_included",
	"accessoriesIncluded":    "accessories_included",
	"itemType":               "item_type",
	"assemblyRequired":       "assembly_required",
	"conditionDetails":       "condition_details",
	"clothingBrand":          "clothing_brand",
	"materialType":           "material_type",
	"sportsBrand":            "sports_brand",
	"sizeDimensions":         "size_dimensions",
	"sportType":              "sport_type",
	"sportsConditionDetails": "sports_condition_details",
}

// ToCamelCase converts a snake_case identifier to camelCase.
func ToCamelCase(s string) string {
	var b strings.Builder
	upperNext := false
	for _, r := range s {
		switch {
		case r == '_':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToSnakeCase converts a camelCase identifier to snake_case.
func ToSnakeCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// KeysToCamel recursively converts all map keys from snake_case to
// camelCase, descending into nested maps and slices.
func KeysToCamel(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[ToCamelCase(k)] = KeysToCamel(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = KeysToCamel(item)
		}
		return out
	default:
		return v
	}
}

// KeysToSnake recursively converts all map keys from camelCase to
// snake_case, descending into nested maps and slices.
func KeysToSnake(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[ToSnakeCase(k)] = KeysToSnake(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = KeysToSnake(item)
		}
		return out
	default:
		return v
	}
}

// NormalizeItemPayload rewrites a client item payload into storage field
// naming. Known aliases are tried first; any remaining camelCase key is
// converted mechanically; keys that match neither pass through unchanged.
func NormalizeItemPayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if canonical, ok := itemFieldAliases[k]; ok {
			out[canonical] = v
			continue
		}
		out[ToSnakeCase(k)] = v
	}
	return out
}

// ParseImages decodes the serialized image list stored in the items
// table. Malformed data degrades to an empty list rather than erroring.
func ParseImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []string{}
	}
	return images
}

// EncodeImages serializes an image list for storage. A nil list is
// stored as an empty JSON array.
func EncodeImages(images []string) string {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(data)
}
