package ubjson_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vmihailenco/ubjson"
)

type decodeTest struct {
	in  string
	out interface{}
}

var decodeTests = []decodeTest{
	{"Z", nil},
	{"NNNZ", nil},
	{"T", true},
	{"B\x80", int64(-128)},
	{"B\x7f", int64(127)},
	{"i\x80\x00", int64(-32768)},
	{"I\xff\xff\xff\xfe", int64(-2)},
	{"L\x00\x00\x00\x01\x00\x00\x00\x00", int64(1) << 32},
	{"d\x3f\xc0\x00\x00", float32(1.5)},
	{"D\x3f\xf8\x00\x00\x00\x00\x00\x00", 1.5},
	{"s\x00", ""},
	{"S\x00\x00\x00\x02hi", "hi"},
	{"aM\x00", []interface{}{}},
	{"AM\x00\x00\x00\x01T", []interface{}{true}},
	{"aB\x02\xff\x01", []interface{}{int64(-1), int64(1)}},
	{"aI\x01\x00\x01\x00\x00", []interface{}{int64(65536)}},
	{"aM\x02NB\x01NB\x02", []interface{}{int64(1), int64(2)}},
	{"aM\x01a\xffB\x01E", []interface{}{[]interface{}{int64(1)}}},
	{"aM\x01o\xffs\x01kB\x01E", []interface{}{ubjson.ObjectOf("k", int64(1))}},
	{"o\x00", ubjson.NewObject(0)},
	{"O\x00\x00\x00\x01s\x01kZ", ubjson.ObjectOf("k", nil)},
	{"o\x02s\x01bB\x01s\x01aB\x02", ubjson.ObjectOf("b", int64(1), "a", int64(2))},
	{"o\x02s\x01kB\x01s\x01kB\x02", ubjson.ObjectOf("k", int64(2))},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		v, err := ubjson.Unmarshal([]byte(test.in))
		require.Nil(t, err, "%q", test.in)
		require.Equal(t, test.out, v, "%q", test.in)
	}
}

func TestDecodeDecimal(t *testing.T) {
	v, err := ubjson.Unmarshal([]byte("h\x061e-400"))
	require.Nil(t, err)
	require.True(t, decimal.RequireFromString("1e-400").Equal(v.(decimal.Decimal)))

	v, err = ubjson.Unmarshal([]byte("H\x00\x00\x00\x0212"))
	require.Nil(t, err)
	require.True(t, decimal.NewFromInt(12).Equal(v.(decimal.Decimal)))
}

type decodeErrorTest struct {
	in     string
	marker byte
}

var markerErrorTests = []decodeErrorTest{
	{"E", 'E'},
	{"M", 'M'},
	{"x", 'x'},
	{"\x00", 0x00},
	{"s\xff", 's'},
	{"h\xff", 'h'},
	{"s\x01\xff", 's'},
	{"h\x03abc", 'h'},
	{"h\x03NaN", 'h'},
	{"h\x08Infinity", 'h'},
	{"A\xff", 'A'},
	{"aZ\x00", 'Z'},
	{"aM\xff", 'a'},
	{"aM\x01E", 'E'},
	{"AM\x00\x00\x00\x01E", 'E'},
	{"o\x01B\x05Z", 'B'},
	{"o\x01s\x01kE", 'E'},
	{"o\x01Es\x01k", 'E'},
	{"o\xffB\x01B\x02E", 'B'},
}

func TestDecodeMarkerErrors(t *testing.T) {
	for _, test := range markerErrorTests {
		_, err := drain(ubjson.Unmarshal([]byte(test.in)))
		var merr *ubjson.MarkerError
		require.True(t, errors.As(err, &merr), "%q: %v", test.in, err)
		require.Equal(t, test.marker, merr.Marker, "%q", test.in)
		require.True(t, errors.Is(err, ubjson.ErrDecode))
	}
}

func TestDecodeNoOpInSizedContainer(t *testing.T) {
	for _, in := range []string{"aM\x01N", "o\x01Ns\x01kZ", "o\x01s\x01kN"} {
		_, err := ubjson.UnmarshalNoOp([]byte(in))
		var merr *ubjson.MarkerError
		require.True(t, errors.As(err, &merr), "%q: %v", in, err)
		require.Equal(t, byte('N'), merr.Marker)
	}
}

var earlyEndTests = []string{
	"N",
	"NNN",
	"B",
	"i\x00",
	"L\x00\x00\x00",
	"d\x00",
	"s",
	"s\x0aabc",
	"S\x00\x00",
	"S\x40\x00\x00\x00abc",
	"a",
	"aM",
	"aM\x02Z",
	"aB\x02\x01",
	"o\x01",
	"o\x01s\x01k",
	"aM\x01a\xffB\x01",
}

func TestDecodeEarlyEndOfStream(t *testing.T) {
	for _, in := range earlyEndTests {
		_, err := ubjson.Unmarshal([]byte(in))
		var eos *ubjson.EarlyEndOfStreamError
		require.True(t, errors.As(err, &eos), "%q: %v", in, err)
		require.True(t, errors.Is(err, io.ErrUnexpectedEOF), "%q", in)
		require.False(t, errors.Is(err, io.EOF), "%q", in)
	}
}

func TestDecodeSourceError(t *testing.T) {
	errBroken := errors.New("broken pipe")
	src := io.MultiReader(bytes.NewReader([]byte("s\x05ab")), iotest.ErrReader(errBroken))
	_, err := ubjson.NewDecoder(src).Decode()
	require.ErrorIs(t, err, errBroken)
}

func TestDecoderSkipsUnreadStream(t *testing.T) {
	dec := ubjson.NewDecoder(bytes.NewReader([]byte("a\xffB\x01B\x02EZs\x01x")))

	v, err := dec.Decode()
	require.Nil(t, err)
	s := v.(*ubjson.ArrayStream)
	first, err := s.Next()
	require.Nil(t, err)
	require.Equal(t, int64(1), first)

	v, err = dec.Decode()
	require.Nil(t, err)
	require.Nil(t, v)

	v, err = dec.Decode()
	require.Nil(t, err)
	require.Equal(t, "x", v)

	_, err = dec.Decode()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoderBuffered(t *testing.T) {
	dec := ubjson.NewDecoder(iotest.OneByteReader(bytes.NewReader([]byte("TF"))))
	v, err := dec.Decode()
	require.Nil(t, err)
	require.Equal(t, true, v)

	rest, err := io.ReadAll(dec.Buffered())
	require.Nil(t, err)
	require.Empty(t, rest)

	dec = ubjson.NewDecoder(io.MultiReader(bytes.NewReader([]byte("TF"))))
	_, err = dec.Decode()
	require.Nil(t, err)
	rest, err = io.ReadAll(dec.Buffered())
	require.Nil(t, err)
	require.Equal(t, []byte("F"), rest)
}

func TestDecoderReset(t *testing.T) {
	dec := ubjson.NewDecoder(bytes.NewReader([]byte("N")))
	dec.SetAllowNoOp(true)
	v, err := dec.Decode()
	require.Nil(t, err)
	require.Equal(t, ubjson.NoOp, v)

	dec.Reset(bytes.NewReader([]byte("NT")))
	v, err = dec.Decode()
	require.Nil(t, err)
	require.Equal(t, ubjson.NoOp, v)

	dec.SetAllowNoOp(false)
	v, err = dec.Decode()
	require.Nil(t, err)
	require.Equal(t, true, v)
}

func TestDecodeNestingDepth(t *testing.T) {
	in := append(bytes.Repeat([]byte("aM\x01"), 100), 'Z')
	v, err := ubjson.Unmarshal(in)
	require.Nil(t, err)
	for i := 0; i < 100; i++ {
		require.Len(t, v, 1)
		v = v.([]interface{})[0]
	}
	require.Nil(t, v)

	for _, unit := range []string{"aM\x01", "a\xff", "o\x01s\x00"} {
		in := append(bytes.Repeat([]byte(unit), 5000), 'Z')
		_, err := drain(ubjson.Unmarshal(in))
		var merr *ubjson.MarkerError
		require.True(t, errors.As(err, &merr), "%q: %v", unit, err)
		require.Equal(t, "maximum nesting depth exceeded", merr.Reason)
	}
}

func drain(v interface{}, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	switch s := v.(type) {
	case *ubjson.ArrayStream:
		return s.Drain()
	case *ubjson.ObjectStream:
		return s.Drain()
	}
	return v, nil
}
