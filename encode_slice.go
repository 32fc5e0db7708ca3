package ubjson

import (
	"iter"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/vmihailenco/ubjson/codes"
)

func (e *Encoder) encodeLen(short, long byte, l int) error {
	if l <= codes.MaxShortLen {
		return e.write1(short, uint64(l))
	}
	if uint64(l) > math.MaxUint32 {
		return encodeError(l, "length does not fit into 32 bits")
	}
	return e.write4(long, uint64(l))
}

func (e *Encoder) EncodeString(v string) error {
	if !utf8.ValidString(v) {
		return encodeError(v, "invalid UTF-8")
	}
	if err := e.encodeLen(codes.StringShort, codes.StringLong, len(v)); err != nil {
		return err
	}
	return e.writeString(v)
}

// EncodeBytes encodes v as a string. v must be valid UTF-8.
func (e *Encoder) EncodeBytes(v []byte) error {
	if !utf8.Valid(v) {
		return encodeError(v, "invalid UTF-8")
	}
	if err := e.encodeLen(codes.StringShort, codes.StringLong, len(v)); err != nil {
		return err
	}
	return e.write(v)
}

// EncodeArrayLen writes the header of a sized array of l elements.
// typ is codes.Mixed or the integer marker shared by all elements.
func (e *Encoder) EncodeArrayLen(typ byte, l int) error {
	if !codes.IsArrayType(typ) {
		return encodeError(typ, "invalid array element type")
	}
	if l <= codes.MaxShortLen {
		e.buf = e.buf[:3]
		e.buf[0] = codes.ArrayShort
		e.buf[1] = typ
		e.buf[2] = byte(l)
		return e.write(e.buf)
	}
	if uint64(l) > math.MaxUint32 {
		return encodeError(l, "length does not fit into 32 bits")
	}
	if err := e.w.WriteByte(codes.ArrayLong); err != nil {
		return err
	}
	return e.write4(typ, uint64(l))
}

// EncodeArray encodes v as a sized array. Integer elements that all fit
// one width are written as raw payloads after a shared marker.
func (e *Encoder) EncodeArray(v []interface{}) error {
	return e.encodeSequence(len(v), func(i int) interface{} {
		return v[i]
	})
}

func (e *Encoder) encodeSequence(l int, at func(int) interface{}) error {
	if typ, ns, ok := homogeneous(l, at); ok {
		if err := e.EncodeArrayLen(typ, l); err != nil {
			return err
		}
		width := codes.Width(typ)
		for _, n := range ns {
			if err := e.writeRaw(width, uint64(n)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := e.EncodeArrayLen(codes.Mixed, l); err != nil {
		return err
	}
	for i := 0; i < l; i++ {
		if err := e.encodeElem(at(i)); err != nil {
			return err
		}
	}
	return nil
}

// homogeneous reports whether every element is an integer and returns
// the narrowest marker whose signed range contains both the smallest
// and the largest of them.
func homogeneous(l int, at func(int) interface{}) (byte, []int64, bool) {
	if l == 0 {
		return 0, nil, false
	}
	ns := make([]int64, l)
	lo, hi := int64(math.MaxInt64), int64(math.MinInt64)
	for i := range ns {
		n, ok := toInt64(at(i))
		if !ok {
			return 0, nil, false
		}
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
		ns[i] = n
	}

	typ := intCode(lo)
	if c := intCode(hi); codes.Width(c) > codes.Width(typ) {
		typ = c
	}
	return typ, ns, true
}

func toInt64(v interface{}) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case *big.Int:
		if v == nil || !v.IsInt64() {
			return 0, false
		}
		return v.Int64(), true
	}
	return 0, false
}

//------------------------------------------------------------------------------

// EncodeArrayStream writes the elements of seq as a streamed array,
// consuming seq exactly once.
func (e *Encoder) EncodeArrayStream(seq iter.Seq[interface{}]) error {
	return e.encodeArrayStream(func(yield func(interface{}, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				return
			}
		}
	})
}

func (e *Encoder) encodeArrayStream(seq iter.Seq2[interface{}, error]) error {
	if err := e.write1(codes.ArrayShort, codes.StreamLen); err != nil {
		return err
	}
	for v, err := range seq {
		if err != nil {
			return err
		}
		if err := e.Encode(v); err != nil {
			return err
		}
	}
	return e.w.WriteByte(codes.EOS)
}
