package main

import (
	"bytes"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vmihailenco/ubjson"
)

func TestParseNumber(t *testing.T) {
	n, err := parseNumber("-42")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), n)

	n, err = parseNumber("18446744073709551616")
	require.NoError(t, err)
	require.IsType(t, (*big.Int)(nil), n)
	assert.Equal(t, "18446744073709551616", n.(*big.Int).String())

	n, err = parseNumber("2.5e3")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, n)

	n, err = parseNumber("1e400")
	require.NoError(t, err)
	require.IsType(t, decimal.Decimal{}, n)
	assert.True(t, n.(decimal.Decimal).Equal(decimal.New(1, 400)))
}

func TestReadJSONKeepsKeyOrder(t *testing.T) {
	values, err := readJSON([]byte(`// leading comment
{"z": 1, "a": {"y": [], "b": null}}`))
	require.NoError(t, err)
	require.Len(t, values, 1)

	obj := values[0].(*ubjson.Object)
	assert.Equal(t, []string{"z", "a"}, obj.Keys())

	inner, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, inner.(*ubjson.Object).Keys())

	y, _ := inner.(*ubjson.Object).Get("y")
	assert.Equal(t, []interface{}{}, y)
}

func TestReadJSONEmpty(t *testing.T) {
	_, err := readJSON([]byte("  /* nothing */ "))
	assert.EqualError(t, err, "no JSON values in input")
}

func TestReadYAML(t *testing.T) {
	values, err := readYAML([]byte(`
base: &base
  n: 0x10
  big: !!int 99999999999999999999
  f: .inf
  s: "007"
copy: *base
`))
	require.NoError(t, err)
	require.Len(t, values, 1)

	obj := values[0].(*ubjson.Object)
	assert.Equal(t, []string{"base", "copy"}, obj.Keys())

	base, _ := obj.Get("base")
	fields := base.(*ubjson.Object)

	n, _ := fields.Get("n")
	assert.Equal(t, int64(16), n)

	huge, _ := fields.Get("big")
	require.IsType(t, (*big.Int)(nil), huge)
	assert.Equal(t, "99999999999999999999", huge.(*big.Int).String())

	f, _ := fields.Get("f")
	assert.True(t, math.IsInf(f.(float64), 1))

	s, _ := fields.Get("s")
	assert.Equal(t, "007", s)

	copied, _ := obj.Get("copy")
	assert.Equal(t, fields.Keys(), copied.(*ubjson.Object).Keys())
}

func TestReadYAMLNonScalarKey(t *testing.T) {
	_, err := readYAML([]byte("? [a, b]\n: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object key must be a scalar")
}

func TestPlain(t *testing.T) {
	in := []interface{}{
		ubjson.NoOp,
		int64(1),
		ubjson.ObjectOf("k", []interface{}{ubjson.NoOp, "v"}),
	}
	out := plain(in).([]interface{})
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0])

	k, _ := out[1].(*ubjson.Object).Get("k")
	assert.Equal(t, []interface{}{"v"}, k)

	assert.Nil(t, plain(ubjson.NoOp))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	v := ubjson.ObjectOf(
		"nan", math.NaN(),
		"f32", float32(0.1),
		"dec", decimal.RequireFromString("123456789012345678901234567890"),
	)
	require.NoError(t, writeJSON(&buf, v, true))
	assert.Equal(t, `{"nan":null,"f32":0.1,"dec":123456789012345678901234567890}`+"\n", buf.String())

	buf.Reset()
	err := writeJSON(&buf, struct{}{}, true)
	assert.EqualError(t, err, "cannot convert struct {} to JSON")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	v := ubjson.ObjectOf(
		"list", []interface{}{int64(1), "true"},
		"inf", math.Inf(-1),
	)
	require.NoError(t, writeYAML(&buf, v))
	assert.True(t, strings.HasPrefix(buf.String(), "list:\n"))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []interface{}{1, "true"}, got["list"])
	assert.Equal(t, math.Inf(-1), got["inf"])
}

func TestDecodeHexInput(t *testing.T) {
	b, err := decodeHexInput([]byte("73 02\n68\t69"))
	require.NoError(t, err)
	assert.Equal(t, []byte("s\x02hi"), b)

	_, err = decodeHexInput([]byte(" \n "))
	assert.EqualError(t, err, "empty input after stripping whitespace from hex")
}
