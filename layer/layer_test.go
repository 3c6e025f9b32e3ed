package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForms(t *testing.T) {
	s, err := Parse("5", false)
	require.NoError(t, err)
	assert.Equal(t, Spec{Layer: 5, Datatype: 0, HasLayer: true}, s)

	s, err = Parse("5/2", false)
	require.NoError(t, err)
	assert.Equal(t, Spec{Layer: 5, Datatype: 2, HasLayer: true}, s)

	s, err = Parse("metal1 (10/0)", false)
	require.NoError(t, err)
	assert.Equal(t, Spec{Name: "metal1", Layer: 10, Datatype: 0, HasLayer: true, HasName: true}, s)

	s, err = Parse("poly", false)
	require.NoError(t, err)
	assert.Equal(t, Spec{Name: "poly", HasName: true}, s)
}

func TestParseStrictRejectsMalformed(t *testing.T) {
	_, err := Parse("not a layer(", true)
	require.Error(t, err)
}

func TestTableResolve(t *testing.T) {
	tbl := NewTable()
	tbl.Declare(10, 0, "metal1")

	byName, err := tbl.Resolve(MustParse("metal1"))
	require.NoError(t, err)
	assert.Equal(t, 10, byName.Layer)

	byNum, err := tbl.Resolve(MustParse("10/0"))
	require.NoError(t, err)
	assert.Equal(t, "metal1", byNum.Name)

	_, err = tbl.Resolve(MustParse("unknown"))
	require.Error(t, err)
}
