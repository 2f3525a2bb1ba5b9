package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFields_JSONRoundTripKeepsOrder(t *testing.T) {
	in := Fields{
		{Name: "Work Order", Value: "WO-17"},
		{Name: "Description", Value: "Grease bearings"},
		{Name: "Location", Value: "Bldg 7"},
		{Name: "ملاحظات", Value: "تم"},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	require.Equal(t,
		`{"Work Order":"WO-17","Description":"Grease bearings","Location":"Bldg 7","ملاحظات":"تم"}`,
		string(b))

	var out Fields
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, in, out)
}

func TestFields_Get(t *testing.T) {
	f := Fields{{Name: "Asset", Value: "A-100"}}
	require.Equal(t, "A-100", f.Get("Asset"))
	require.Equal(t, "", f.Get("Missing"))
	require.True(t, f.Has("Asset"))
	require.False(t, f.Has("Missing"))
}

func TestFields_UnmarshalRejectsNonObject(t *testing.T) {
	var f Fields
	require.Error(t, json.Unmarshal([]byte(`["a"]`), &f))
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"PM", "Asset", "CM"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		require.Equal(t, Kind(s), k)
	}
	_, err := ParseKind("WO")
	require.Error(t, err)
}
