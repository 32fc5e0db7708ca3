package ubjson

import (
	"strconv"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/vmihailenco/ubjson/codes"
)

// bytes reads the payload of a string or hugeint marker.
func (d *Decoder) bytes(c byte) ([]byte, error) {
	n, err := d.length(c)
	if err != nil {
		return nil, err
	}
	if codes.IsShort(c) && n == codes.StreamLen {
		return nil, markerError(c, "short length 255 is reserved")
	}
	b, err := d.readN(n)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, markerError(c, "invalid UTF-8")
	}
	return b, nil
}

func (d *Decoder) string(c byte) (string, error) {
	b, err := d.bytes(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *Decoder) decimal(c byte) (decimal.Decimal, error) {
	b, err := d.bytes(c)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(string(b))
	if err != nil {
		return decimal.Zero, markerError(c, "invalid decimal "+strconv.Quote(string(b)))
	}
	return v, nil
}

//------------------------------------------------------------------------------

func (d *Decoder) array(c byte, lazy bool) (interface{}, error) {
	typ, err := d.readByte()
	if err != nil {
		return nil, err
	}

	if typ == codes.StreamLen {
		if c == codes.ArrayLong {
			return nil, markerError(c, "long array cannot be streamed")
		}
		s := &ArrayStream{d: d}
		if !lazy {
			return s.Drain()
		}
		d.open = s
		return s, nil
	}

	if !codes.IsArrayType(typ) {
		return nil, markerError(typ, "invalid array element type")
	}
	n, err := d.length(c)
	if err != nil {
		return nil, err
	}
	if c == codes.ArrayShort && n == codes.StreamLen {
		return nil, markerError(c, "short length 255 is reserved")
	}

	if typ == codes.Mixed {
		return d.mixedArray(n)
	}
	return d.typedArray(codes.Width(typ), n)
}

func (d *Decoder) mixedArray(n int) ([]interface{}, error) {
	s := make([]interface{}, 0, min(n, sliceAllocLimit))
	for i := 0; i < n; i++ {
		v, err := d.elem()
		if err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	return s, nil
}

// typedArray reads n raw integer payloads of the given width.
func (d *Decoder) typedArray(width, n int) ([]interface{}, error) {
	s := make([]interface{}, 0, min(n, sliceAllocLimit))
	for i := 0; i < n; i++ {
		v, err := d.int(width)
		if err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	return s, nil
}
