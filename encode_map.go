package ubjson

import (
	"iter"
	"math"
	"sort"

	"github.com/vmihailenco/ubjson/codes"
)

// EncodeObjectLen writes the header of a sized object of l pairs.
func (e *Encoder) EncodeObjectLen(l int) error {
	if l <= codes.MaxShortLen {
		return e.write1(codes.ObjectShort, uint64(l))
	}
	if uint64(l) > math.MaxUint32 {
		return encodeError(l, "length does not fit into 32 bits")
	}
	return e.write4(codes.ObjectLong, uint64(l))
}

// EncodeObject encodes o as a sized object in insertion order.
func (e *Encoder) EncodeObject(o *Object) error {
	if err := e.EncodeObjectLen(o.Len()); err != nil {
		return err
	}
	for _, k := range o.Keys() {
		if err := e.EncodeString(k); err != nil {
			return err
		}
		if err := e.encodeElem(o.values[k]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMapStringInterface(m map[string]interface{}) error {
	if err := e.EncodeObjectLen(len(m)); err != nil {
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := e.EncodeString(k); err != nil {
			return err
		}
		if err := e.encodeElem(m[k]); err != nil {
			return err
		}
	}
	return nil
}

//------------------------------------------------------------------------------

// EncodeObjectStream writes the pairs of seq as a streamed object,
// consuming seq exactly once. A pair whose value is NoOp is written as
// padding and its key is dropped.
func (e *Encoder) EncodeObjectStream(seq iter.Seq2[string, interface{}]) error {
	return e.encodeObjectStream(func(yield func(Pair, error) bool) {
		for k, v := range seq {
			if !yield(Pair{Key: k, Value: v}, nil) {
				return
			}
		}
	})
}

func (e *Encoder) encodeObjectStream(seq iter.Seq2[Pair, error]) error {
	if err := e.write1(codes.ObjectShort, codes.StreamLen); err != nil {
		return err
	}
	for p, err := range seq {
		if err != nil {
			return err
		}
		if p.IsNoOp() {
			if err := e.EncodeNoOp(); err != nil {
				return err
			}
			continue
		}
		if err := e.EncodeString(p.Key); err != nil {
			return err
		}
		if err := e.Encode(p.Value); err != nil {
			return err
		}
	}
	return e.w.WriteByte(codes.EOS)
}
