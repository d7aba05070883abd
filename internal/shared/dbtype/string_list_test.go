package dbtype_test

import (
	"testing"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/dbtype"

	"github.com/stretchr/testify/assert"
)

func TestStringList_Value(t *testing.T) {
	v, err := dbtype.StringList(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = dbtype.StringList{"lunes", "martes"}.Value()
	assert.NoError(t, err)
	assert.Equal(t, `["lunes","martes"]`, v)
}

func TestStringList_Scan(t *testing.T) {
	var l dbtype.StringList

	assert.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, dbtype.StringList{"a", "b"}, l)

	assert.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("not-json"))
}
