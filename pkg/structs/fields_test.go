package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Count    int    `json:"count"`
	Untagged string
	Hidden   string `json:"-"`
	private  string
}

func TestFields_UsesJSONNames(t *testing.T) {
	fields := Fields(sample{ID: "1", Name: "go", Count: 3, private: "x"})

	require.Len(t, fields, 4)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "name", fields[1].Name)
	assert.Equal(t, "count", fields[2].Name)
	assert.Equal(t, "Untagged", fields[3].Name)

	assert.True(t, fields[0].IsString())
	assert.False(t, fields[2].IsString())
	assert.Equal(t, "go", fields[1].Value.String())
}

func TestFields_Pointer(t *testing.T) {
	s := &sample{Name: "ptr"}
	assert.Len(t, Fields(s), 4)

	var nilPtr *sample
	assert.Nil(t, Fields(nilPtr))
}

func TestFields_NonStruct(t *testing.T) {
	assert.Nil(t, Fields("not a struct"))
	assert.Nil(t, Fields(42))
}

func TestFields_IsZero(t *testing.T) {
	fields := Fields(sample{ID: "1"})

	assert.False(t, fields[0].IsZero())
	assert.True(t, fields[1].IsZero())
	assert.True(t, fields[2].IsZero())
}

func TestHas(t *testing.T) {
	assert.True(t, Has(sample{}, "name"))
	assert.True(t, Has(sample{}, "Untagged"))
	assert.False(t, Has(sample{}, "Hidden"))
	assert.False(t, Has(sample{}, "bogus"))
}
