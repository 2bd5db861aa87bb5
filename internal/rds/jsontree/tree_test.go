package jsontree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

func TestSetAndMarshalObject(t *testing.T) {
	tree := &jsontree.Tree{}
	tree.Set("pi", "6204")
	tree.Set("ta", false)
	tree.Get("group").Set("type", "0A")

	out, err := tree.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"pi":"6204","ta":false,"group":{"type":"0A"}}`, string(out))
}

func TestKeyOrderIsPreserved(t *testing.T) {
	tree := &jsontree.Tree{}
	tree.Set("z", 1)
	tree.Set("a", 2)

	out, err := tree.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2}`, string(out))
}

func TestArrayGrowsViaAt(t *testing.T) {
	tree := &jsontree.Tree{}
	tree.At(2).Set("code", 5)

	out, err := tree.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[null,null,{"code":5}]`, string(out))
}

func TestPushAppendsToArray(t *testing.T) {
	tree := &jsontree.Tree{}
	tree.Push(jsontree.New(1))
	tree.Push(jsontree.New("two"))

	out, err := tree.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"two"]`, string(out))
}

func TestNullLeafMarshalsAsNull(t *testing.T) {
	out, err := jsontree.Null().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestContainsAndIsEmpty(t *testing.T) {
	tree := &jsontree.Tree{}
	assert.True(t, tree.IsEmpty())

	tree.Set("x", 1)
	assert.False(t, tree.IsEmpty())
	assert.True(t, tree.Contains("x"))
	assert.False(t, tree.Contains("y"))
}
