package ubjson

import (
	"fmt"
	"io"
	"iter"

	"github.com/vmihailenco/ubjson/codes"
)

// ArrayStream is a streamed array being read from a Decoder. Each call
// to Next reads one element; the stream cannot be restarted.
type ArrayStream struct {
	d   *Decoder
	err error
}

// Next returns the next element, or io.EOF after the end-of-stream
// marker. Any other error is returned again by every later call.
// Nested streamed containers are returned drained.
func (s *ArrayStream) Next() (interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, err := s.next()
	if err != nil {
		s.err = err
		return nil, err
	}
	return v, nil
}

func (s *ArrayStream) next() (interface{}, error) {
	c, err := s.d.readCode(false)
	if err != nil {
		return nil, err
	}
	if c == codes.EOS {
		return nil, io.EOF
	}
	return s.d.decodeCode(c, false)
}

// All iterates over the remaining elements. An error other than the end
// of the stream is yielded once as the last pair.
func (s *ArrayStream) All() iter.Seq2[interface{}, error] {
	return func(yield func(interface{}, error) bool) {
		for {
			v, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Drain reads the remaining elements into a slice.
func (s *ArrayStream) Drain() ([]interface{}, error) {
	var vs []interface{}
	for v, err := range s.All() {
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	if vs == nil {
		vs = []interface{}{}
	}
	return vs, nil
}

func (s *ArrayStream) discard() error {
	for _, err := range s.All() {
		if err != nil {
			return err
		}
	}
	return nil
}

//------------------------------------------------------------------------------

// ObjectStream is a streamed object being read from a Decoder. Each call
// to Next reads one key/value pair; the stream cannot be restarted.
type ObjectStream struct {
	d   *Decoder
	err error
}

// Next returns the next pair, or io.EOF after the end-of-stream marker.
//
// With noops surfaced, a noop in key position yields a padding pair
// (Pair.IsNoOp reports true) while a noop after a key is skipped. An
// end-of-stream marker after a key is an *EarlyEndOfStreamError.
func (s *ObjectStream) Next() (Pair, error) {
	if s.err != nil {
		return Pair{}, s.err
	}
	p, err := s.next()
	if err != nil {
		s.err = err
		return Pair{}, err
	}
	return p, nil
}

func (s *ObjectStream) next() (Pair, error) {
	var key string
	var pending bool
	for {
		c, err := s.d.readCode(false)
		if err != nil {
			return Pair{}, err
		}

		switch {
		case c == codes.NoOp && !pending:
			return Pair{Value: NoOp}, nil
		case c == codes.NoOp:
			continue
		case c == codes.EOS:
			if pending {
				return Pair{}, &EarlyEndOfStreamError{
					Reason: fmt.Sprintf("value missing for key %q", key),
				}
			}
			return Pair{}, io.EOF
		case !pending:
			key, err = s.d.key(c)
			if err != nil {
				return Pair{}, err
			}
			pending = true
		default:
			v, err := s.d.decodeCode(c, false)
			if err != nil {
				return Pair{}, err
			}
			return Pair{Key: key, Value: v}, nil
		}
	}
}

// All iterates over the remaining pairs, padding pairs included. An
// error other than the end of the stream is yielded once as the last
// pair.
func (s *ObjectStream) All() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for {
			p, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

// Drain reads the remaining pairs into an object, dropping padding.
func (s *ObjectStream) Drain() (*Object, error) {
	o := NewObject(0)
	for p, err := range s.All() {
		if err != nil {
			return nil, err
		}
		if p.IsNoOp() {
			continue
		}
		o.Set(p.Key, p.Value)
	}
	return o, nil
}

func (s *ObjectStream) discard() error {
	for _, err := range s.All() {
		if err != nil {
			return err
		}
	}
	return nil
}
