package tools

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Fields is an open set of card or board fields for update operations. Keys
// are sent as-is when already in the API's camelCase, and converted when
// given in snake_case.
type Fields map[string]any

// fieldAliases covers snake_case names whose API field does not follow the
// regular lowerCamel conversion.
var fieldAliases = map[string]string{
	"external_card_id": "externalCardID",
	"external_url":     "externalSystemUrl",
	"card_type_id":     "typeId",
	"type_id":          "typeId",
	"custom_icon_id":   "classOfServiceId",
}

// Normalize returns a copy of f with snake_case keys converted to the API
// field names. Tag lists given as []string are joined with commas, the form
// the card endpoints accept.
func (f Fields) Normalize() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		key := k
		if alias, ok := fieldAliases[k]; ok {
			key = alias
		} else if strings.Contains(k, "_") {
			key = strcase.ToLowerCamel(k)
		}
		if key == "tags" {
			if tags, ok := v.([]string); ok {
				v = joinIDs(tags)
			}
		}
		out[key] = v
	}
	return out
}
