package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchBuilderEmpty(t *testing.T) {
	b := NewPatchBuilder()
	assert.True(t, b.Empty())
	assert.Empty(t, b.Args())

	b.Add("title", Optional[string]{})
	assert.True(t, b.Empty(), "absent field must not produce an assignment")
	assert.Empty(t, b.Args())
}

func TestPatchBuilderSkipsAbsentFields(t *testing.T) {
	b := NewPatchBuilder()
	b.Add("title", Some("x"))
	b.Add("description", Optional[string]{})

	assert.False(t, b.Empty())
	assert.Equal(t, "SET title = $1", b.Clause())
	assert.Equal(t, []any{"x"}, b.Args())
	assert.Equal(t, 2, b.NextArg())
}

func TestPatchBuilderPreservesInsertionOrder(t *testing.T) {
	b := NewPatchBuilder()
	b.Add("description", Some("d"))
	b.Add("content", Some("c"))
	b.Add("title", Some("t"))

	assert.Equal(t, "SET description = $1, content = $2, title = $3", b.Clause())
	assert.Equal(t, []any{"d", "c", "t"}, b.Args())
	assert.Equal(t, 4, b.NextArg())
}

func TestPatchBuilderNullClearsColumn(t *testing.T) {
	b := NewPatchBuilder()
	b.Add("cover_image_path", Null[string]())

	assert.Equal(t, "SET cover_image_path = $1", b.Clause())
	assert.Equal(t, []any{nil}, b.Args())
}

func TestPatchBuilderSetIsUnconditional(t *testing.T) {
	b := NewPatchBuilder()
	b.Add("title", Some("New Title"))
	b.Set("string_id", "new-title")

	assert.Equal(t, "SET title = $1, string_id = $2", b.Clause())
	assert.Equal(t, []any{"New Title", "new-title"}, b.Args())
}

func TestOptionalUnmarshalJSON(t *testing.T) {
	var req struct {
		Title       Optional[string] `json:"title"`
		Description Optional[string] `json:"description"`
		Cover       Optional[string] `json:"cover"`
	}

	err := json.Unmarshal([]byte(`{"title": "hello", "cover": null}`), &req)
	assert.NoError(t, err)

	v, ok := req.Title.Value()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	assert.False(t, req.Description.Present(), "missing key must stay absent")

	assert.True(t, req.Cover.Present())
	assert.True(t, req.Cover.IsNull())
	assert.Nil(t, req.Cover.Arg())
}
