package base

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhigh1594/agileplace-go/tools"
)

// FieldsFlag collects repeated key=value flags into tools.Fields. Values that
// parse as JSON (numbers, booleans, arrays, objects) are sent typed; anything
// else is sent as a string. Numbers keep their exact digits, and values for
// ID fields (parentCardId, lane_id) are always sent as strings.
type FieldsFlag tools.Fields

func (f *FieldsFlag) String() string {
	if f == nil || len(*f) == 0 {
		return ""
	}
	parts := make([]string, 0, len(*f))
	for k, v := range *f {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (f *FieldsFlag) Set(s string) error {
	key, raw, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	if *f == nil {
		*f = FieldsFlag{}
	}
	if isIDField(key) {
		(*f)[key] = raw
		return nil
	}
	(*f)[key] = decodeValue(raw)
	return nil
}

func isIDField(key string) bool {
	return strings.EqualFold(key, "id") ||
		strings.HasSuffix(key, "Id") ||
		strings.HasSuffix(key, "ID") ||
		strings.HasSuffix(strings.ToLower(key), "_id")
}

func decodeValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return v
}
