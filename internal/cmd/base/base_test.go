package base

import (
	"encoding/json"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFlag(t *testing.T) {
	var f FieldsFlag
	require.NoError(t, f.Set("title=Fix login"))
	require.NoError(t, f.Set("size=3"))
	require.NoError(t, f.Set("is_blocked=true"))
	require.NoError(t, f.Set(`tags=["a","b"]`))
	assert.Error(t, f.Set("novalue"))
	assert.Error(t, f.Set("=x"))

	assert.Equal(t, FieldsFlag{
		"title":      "Fix login",
		"size":       json.Number("3"),
		"is_blocked": true,
		"tags":       []any{"a", "b"},
	}, f)
}

func TestFieldsFlagKeepsIDsExact(t *testing.T) {
	var f FieldsFlag
	require.NoError(t, f.Set("parentCardId=12345678901234567"))
	require.NoError(t, f.Set("lane_id=987"))
	require.NoError(t, f.Set("index=12345678901234567"))

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"parentCardId":"12345678901234567","lane_id":"987","index":12345678901234567}`,
		string(b))
}

func TestFlagSetHelp(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.String("board", "", "Board ID")
	f.Int("limit", 200, "Page size")

	help := f.Help()
	assert.Contains(t, help, "-board=<string>")
	assert.Contains(t, help, "(default 200)")
	assert.Contains(t, help, "Page size")
}
