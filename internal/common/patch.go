package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Optional is a tri-state value for partial updates: absent (the zero
// value), explicit null, or a concrete value. Absent means "leave the
// column untouched"; null means "clear the column".
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

func (o Optional[T]) Present() bool {
	return o.present
}

func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Value returns the concrete value. The second return is false when the
// optional is absent or null.
func (o Optional[T]) Value() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Arg returns the value as a bindable query argument, nil for null.
func (o Optional[T]) Arg() any {
	if o.null {
		return nil
	}
	return o.value
}

// UnmarshalJSON is only invoked for keys that appear in the request body,
// which is what makes the absent state representable over the wire.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(data, []byte("null")) {
		o.null = true
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// Field is the part of an Optional the patch builder needs.
type Field interface {
	Present() bool
	Arg() any
}

// PatchBuilder assembles the SET clause of a partial update. Columns are
// emitted in the order they were added and each one binds a positional
// parameter, so the resulting fragment is stable across replays.
type PatchBuilder struct {
	columns []string
	args    []any
}

func NewPatchBuilder() *PatchBuilder {
	return &PatchBuilder{}
}

// Add appends the column when the field is present and skips it otherwise.
func (b *PatchBuilder) Add(column string, f Field) {
	if !f.Present() {
		return
	}
	b.columns = append(b.columns, column)
	b.args = append(b.args, f.Arg())
}

// Set appends the column unconditionally. Used for derived columns such as
// the slug, which follow another field rather than the request.
func (b *PatchBuilder) Set(column string, v any) {
	b.columns = append(b.columns, column)
	b.args = append(b.args, v)
}

// Empty reports whether no column was added. Callers must skip the UPDATE
// entirely in that case: an assignment-free statement is invalid SQL.
func (b *PatchBuilder) Empty() bool {
	return len(b.args) == 0
}

func (b *PatchBuilder) Clause() string {
	assignments := make([]string, len(b.columns))
	for i, column := range b.columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	return "SET " + strings.Join(assignments, ", ")
}

func (b *PatchBuilder) Args() []any {
	return b.args
}

// NextArg returns the positional index following the bound assignments,
// for use in the WHERE clause.
func (b *PatchBuilder) NextArg() int {
	return len(b.args) + 1
}
