package ubjson_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmihailenco/ubjson"
)

func TestObjectOrder(t *testing.T) {
	o := ubjson.NewObject(0)
	o.Set("z", 1)
	o.Set("a", 2)
	o.Set("z", 3)

	require.Equal(t, 2, o.Len())
	require.Equal(t, []string{"z", "a"}, o.Keys())

	v, ok := o.Get("z")
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, ok = o.Get("missing")
	require.False(t, ok)

	var keys []string
	for k := range o.All() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"z", "a"}, keys)
	require.Equal(t, `{"z": 3, "a": 2}`, o.String())
}

func TestObjectZeroValue(t *testing.T) {
	var o ubjson.Object
	o.Set("k", nil)
	require.Equal(t, 1, o.Len())

	var nilObj *ubjson.Object
	require.Equal(t, 0, nilObj.Len())
	require.Nil(t, nilObj.Keys())
	_, ok := nilObj.Get("k")
	require.False(t, ok)

	b, err := ubjson.Marshal(nilObj)
	require.Nil(t, err)
	require.Equal(t, []byte("Z"), b)
}

func TestObjectOfPanics(t *testing.T) {
	require.Panics(t, func() { ubjson.ObjectOf("a") })
	require.Panics(t, func() { ubjson.ObjectOf(1, 2) })
}
