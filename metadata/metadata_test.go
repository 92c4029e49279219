package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected Value
	}{
		{"Nil", nil, Null()},
		{"Bool", true, Bool(true)},
		{"Float", 3.14, Number(3.14)},
		{"Int", 42, Int(42)},
		{"Int64", int64(7), Number(7)},
		{"String", "hello", String("hello")},
		{"Array", []interface{}{"a", 1.0}, Array(String("a"), Number(1))},
		{
			"Object",
			map[string]interface{}{"k": "v"},
			Object(Document{"k": String("v")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		assert.Error(t, err)
	})
}

func TestValueJSONRoundTrip(t *testing.T) {
	raw := `{"category":"tech","year":2024,"published":true,"score":0.5,"tags":["a","b"],"extra":{"nested":null}}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, String("tech"), doc["category"])
	assert.Equal(t, Number(2024), doc["year"])
	assert.Equal(t, Bool(true), doc["published"])
	assert.Equal(t, Number(0.5), doc["score"])
	assert.Equal(t, Array(String("a"), String("b")), doc["tags"])
	assert.Equal(t, Object(Document{"nested": Null()}), doc["extra"])

	// Re-encode and decode again; the document must survive verbatim.
	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	var again Document
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, doc, again)
}

func TestDocumentClone(t *testing.T) {
	t.Run("DeepCopy", func(t *testing.T) {
		orig := Document{
			"tags":   Array(String("a")),
			"nested": Object(Document{"k": String("v")}),
		}
		clone := orig.Clone()

		clone["tags"].A[0] = String("changed")
		clone["nested"].O["k"] = String("changed")

		assert.Equal(t, String("a"), orig["tags"].A[0])
		assert.Equal(t, String("v"), orig["nested"].O["k"])
	})

	t.Run("Nil", func(t *testing.T) {
		var d Document
		assert.Nil(t, d.Clone())
	})
}

func TestDocumentKeys(t *testing.T) {
	doc := Document{"b": Int(2), "a": Int(1), "c": Int(3)}
	assert.Equal(t, []string{"a", "b", "c"}, doc.Keys())
}

func TestInterfaceRoundTrip(t *testing.T) {
	doc := Document{
		"s": String("x"),
		"n": Number(1.5),
		"b": Bool(false),
		"0": Null(),
		"a": Array(Int(1), Int(2)),
		"o": Object(Document{"inner": String("y")}),
	}

	back, err := FromAnyMap(doc.Interface())
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}
