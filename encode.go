package ubjson

import (
	"bytes"
	"io"
	"iter"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/vmihailenco/ubjson/codes"
)

type writer interface {
	io.Writer
	WriteByte(byte) error
}

type byteWriter struct {
	io.Writer

	buf [1]byte
}

func newByteWriter(w io.Writer) *byteWriter {
	return &byteWriter{Writer: w}
}

func (bw *byteWriter) WriteByte(c byte) error {
	bw.buf[0] = c
	_, err := bw.Write(bw.buf[:])
	return err
}

//------------------------------------------------------------------------------

// DefaultFunc converts a value the encoder does not support into one it
// does.
type DefaultFunc func(v interface{}) (interface{}, error)

// Marshal returns the UBJSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type Encoder struct {
	w   writer
	buf []byte

	defaultFunc DefaultFunc
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{
		buf: make([]byte, 9),
	}
	e.Reset(w)
	return e
}

// Reset discards the encoder state and makes it write to w.
func (e *Encoder) Reset(w io.Writer) {
	if bw, ok := w.(writer); ok {
		e.w = bw
	} else {
		e.w = newByteWriter(w)
	}
}

// SetDefault sets the hook used for values of unsupported types. The
// hook must return an encodable value; it is not consulted again for
// the value it returned.
func (e *Encoder) SetDefault(fn DefaultFunc) {
	e.defaultFunc = fn
}

// Encode writes the UBJSON encoding of v. Bytes already written when an
// error occurs are not retracted.
func (e *Encoder) Encode(v interface{}) error {
	return e.encode(v, true)
}

func (e *Encoder) encode(v interface{}, useDefault bool) error {
	switch v := v.(type) {
	case nil:
		return e.EncodeNil()
	case NoOpMarker:
		return e.EncodeNoOp()
	case CustomEncoder:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return e.EncodeNil()
		}
		return v.EncodeUBJSON(e)
	case bool:
		return e.EncodeBool(v)
	case int:
		return e.EncodeInt64(int64(v))
	case int8:
		return e.EncodeInt64(int64(v))
	case int16:
		return e.EncodeInt64(int64(v))
	case int32:
		return e.EncodeInt64(int64(v))
	case int64:
		return e.EncodeInt64(v)
	case uint:
		return e.EncodeUint64(uint64(v))
	case uint8:
		return e.EncodeUint64(uint64(v))
	case uint16:
		return e.EncodeUint64(uint64(v))
	case uint32:
		return e.EncodeUint64(uint64(v))
	case uint64:
		return e.EncodeUint64(v)
	case float32:
		return e.EncodeFloat64(float64(v))
	case float64:
		return e.EncodeFloat64(v)
	case *big.Int:
		if v == nil {
			return e.EncodeNil()
		}
		return e.EncodeBigInt(v)
	case decimal.Decimal:
		return e.EncodeDecimal(v)
	case *decimal.Decimal:
		if v == nil {
			return e.EncodeNil()
		}
		return e.EncodeDecimal(*v)
	case string:
		return e.EncodeString(v)
	case []byte:
		if v == nil {
			return e.EncodeNil()
		}
		return e.EncodeBytes(v)
	case []interface{}:
		if v == nil {
			return e.EncodeNil()
		}
		return e.EncodeArray(v)
	case *Object:
		if v == nil {
			return e.EncodeNil()
		}
		return e.EncodeObject(v)
	case map[string]interface{}:
		if v == nil {
			return e.EncodeNil()
		}
		return e.encodeMapStringInterface(v)
	case *ArrayStream:
		if v == nil {
			return e.EncodeNil()
		}
		return e.encodeArrayStream(v.All())
	case *ObjectStream:
		if v == nil {
			return e.EncodeNil()
		}
		return e.encodeObjectStream(v.All())
	case iter.Seq[interface{}]:
		return e.EncodeArrayStream(v)
	case func(func(interface{}) bool):
		return e.EncodeArrayStream(v)
	case iter.Seq2[string, interface{}]:
		return e.EncodeObjectStream(v)
	case func(func(string, interface{}) bool):
		return e.EncodeObjectStream(v)
	}
	return e.encodeReflect(v, useDefault)
}

func (e *Encoder) encodeDefault(v interface{}, useDefault bool) error {
	if e.defaultFunc == nil || !useDefault {
		return encodeError(v, "unsupported type")
	}
	nv, err := e.defaultFunc(v)
	if err != nil {
		return &EncodeError{Value: v, Reason: err.Error(), Err: err}
	}
	return e.encode(nv, false)
}

// encodeElem encodes a member of a sized container, where a noop would
// be skipped by the decoder and break the declared count.
func (e *Encoder) encodeElem(v interface{}) error {
	if _, ok := v.(NoOpMarker); ok {
		return encodeError(v, "noop inside a sized container")
	}
	return e.Encode(v)
}

func (e *Encoder) EncodeNil() error {
	return e.w.WriteByte(codes.Null)
}

func (e *Encoder) EncodeNoOp() error {
	return e.w.WriteByte(codes.NoOp)
}

func (e *Encoder) EncodeBool(value bool) error {
	if value {
		return e.w.WriteByte(codes.True)
	}
	return e.w.WriteByte(codes.False)
}

func (e *Encoder) write(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

func (e *Encoder) writeString(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}
