package headers

import (
	"testing"

	"github.com/brizzai/target-wizard/internal/target"
	"github.com/stretchr/testify/assert"
)

func TestEditor_Add(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantAdded bool
	}{
		{name: "both set", key: "Authorization", value: "Bearer x", wantAdded: true},
		{name: "missing value", key: "Authorization", value: "", wantAdded: false},
		{name: "missing key", key: "", value: "Bearer x", wantAdded: false},
		{name: "both empty", key: "", value: "", wantAdded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(nil)
			e.SetPendingKey(tt.key)
			e.SetPendingValue(tt.value)

			assert.Equal(t, tt.wantAdded, e.Add())
			if tt.wantAdded {
				assert.Equal(t, []target.Header{target.NewHeader(tt.key, tt.value)}, e.Entries())
				k, v := e.Pending()
				assert.Empty(t, k)
				assert.Empty(t, v)
			} else {
				assert.Nil(t, e.Entries())
				k, v := e.Pending()
				assert.Equal(t, tt.key, k)
				assert.Equal(t, tt.value, v)
			}
		})
	}
}

func TestEditor_DuplicateKeysPreserved(t *testing.T) {
	e := NewEditor(nil)
	for _, v := range []string{"a", "b"} {
		e.SetPendingKey("X-Dup")
		e.SetPendingValue(v)
		assert.True(t, e.Add())
	}

	assert.Equal(t, []target.Header{
		target.NewHeader("X-Dup", "a"),
		target.NewHeader("X-Dup", "b"),
	}, e.Entries())
}

func TestEditor_Remove(t *testing.T) {
	e := NewEditor([]target.Header{
		target.NewHeader("A", "1"),
		target.NewHeader("B", "2"),
		target.NewHeader("C", "3"),
	})

	assert.False(t, e.Remove(-1))
	assert.False(t, e.Remove(3))
	assert.Equal(t, 3, e.Len())

	assert.True(t, e.Remove(1))
	assert.Equal(t, []target.Header{
		target.NewHeader("A", "1"),
		target.NewHeader("C", "3"),
	}, e.Entries())
}

func TestEditor_AddThenRemoveRestoresList(t *testing.T) {
	initial := []target.Header{target.NewHeader("A", "1"), target.NewHeader("B", "2")}
	e := NewEditor(initial)
	before := e.Entries()

	e.SetPendingKey("A")
	e.SetPendingValue("1")
	assert.True(t, e.Add())
	assert.True(t, e.Remove(e.Len()-1))

	assert.Equal(t, before, e.Entries())
}

func TestEditor_DoesNotAliasInput(t *testing.T) {
	initial := []target.Header{target.NewHeader("A", "1"), target.NewHeader("B", "2")}
	e := NewEditor(initial)

	e.Remove(0)
	out := e.Entries()
	out[0].Key = "mutated"

	assert.Equal(t, "A", initial[0].Key)
	assert.Equal(t, "B", e.Entries()[0].Key)
}
