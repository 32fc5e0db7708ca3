// Package ubjson implements a UBJSON Draft 8 codec: a compact, tagged,
// self-describing binary encoding of null, booleans, numbers,
// arbitrary-precision decimals, UTF-8 strings, arrays and objects,
// including streamed containers of unknown length.
//
// Decoded values have the following Go types:
//   - nil,
//   - bool,
//   - int64,
//   - float32 (marker d) and float64 (marker D),
//   - decimal.Decimal,
//   - string,
//   - []interface{},
//   - *Object,
//   - *ArrayStream and *ObjectStream for top-level streamed containers,
//   - NoOp, only when the decoder surfaces noop markers.
package ubjson

import "fmt"

// CustomEncoder is implemented by types that write their own UBJSON
// representation.
type CustomEncoder interface {
	EncodeUBJSON(*Encoder) error
}

// NoOpMarker is the type of NoOp.
type NoOpMarker struct{}

func (NoOpMarker) String() string { return "NoOp" }

// NoOp is the padding value. It is skipped by default decoders, surfaced
// by decoders with SetAllowNoOp(true), and written as a single noop
// marker by encoders.
var NoOp NoOpMarker

// Pair is a key/value entry of a streamed object.
type Pair struct {
	Key   string
	Value interface{}
}

// IsNoOp reports whether p is the padding pair that a streamed object
// yields for a noop marker in key position.
func (p Pair) IsNoOp() bool {
	_, ok := p.Value.(NoOpMarker)
	return ok
}

func (p Pair) String() string {
	if p.IsNoOp() {
		return "NoOp"
	}
	return fmt.Sprintf("%q: %v", p.Key, p.Value)
}
