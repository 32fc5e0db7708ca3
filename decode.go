package ubjson

import (
	"bufio"
	"bytes"
	"io"
	"math"

	"github.com/vmihailenco/ubjson/codes"
)

const (
	bytesAllocLimit = 64 << 10
	sliceAllocLimit = 1e4

	maxDepth = 1000
)

type bufReader interface {
	io.Reader
	io.ByteReader
}

// Unmarshal decodes the first value in data. A streamed container at the
// top level is returned as a stream reading from data.
func Unmarshal(data []byte) (interface{}, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}

// UnmarshalNoOp is like Unmarshal but surfaces noop markers as NoOp.
func UnmarshalNoOp(data []byte) (interface{}, error) {
	d := NewDecoder(bytes.NewReader(data))
	d.SetAllowNoOp(true)
	return d.Decode()
}

// A Decoder reads UBJSON values from an input stream.
type Decoder struct {
	r    io.Reader
	s    io.ByteReader
	bufr *bufio.Reader
	buf  []byte

	allowNoOp bool
	depth     int

	// open is the top-level stream returned by the last Decode call.
	open stream
}

type stream interface {
	discard() error
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder introduces its own buffering and may read data from r
// beyond the UBJSON values requested, unless r implements io.ByteReader.
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{
		buf: make([]byte, 8),
	}
	d.Reset(r)
	return d
}

// Reset discards the decoder state and makes it read from r. The
// noop setting is kept.
func (d *Decoder) Reset(r io.Reader) {
	if br, ok := r.(bufReader); ok {
		d.r = br
		d.s = br
		d.bufr = nil
	} else {
		d.bufr = bufio.NewReader(r)
		d.r = d.bufr
		d.s = d.bufr
	}
	d.open = nil
	d.depth = 0
}

// SetAllowNoOp makes the decoder return noop markers as NoOp instead of
// skipping them. Inside sized containers a noop is then an error.
func (d *Decoder) SetAllowNoOp(on bool) {
	d.allowNoOp = on
}

// Buffered returns a reader of the data remaining in the decoder's
// buffer.
func (d *Decoder) Buffered() io.Reader {
	if d.bufr == nil {
		return bytes.NewReader(nil)
	}
	b, _ := d.bufr.Peek(d.bufr.Buffered())
	return bytes.NewReader(b)
}

// Decode reads the next value. A streamed array or object is returned as
// *ArrayStream or *ObjectStream; the next Decode call discards whatever
// the caller left unread of it.
//
// At the end of input Decode returns an *EarlyEndOfStreamError wrapping
// io.EOF.
func (d *Decoder) Decode() (interface{}, error) {
	if s := d.open; s != nil {
		d.open = nil
		if err := s.discard(); err != nil {
			return nil, err
		}
	}

	c, err := d.readCode(true)
	if err != nil {
		return nil, err
	}
	return d.decodeCode(c, true)
}

// readCode reads a marker, skipping noops unless they are allowed.
func (d *Decoder) readCode(top bool) (byte, error) {
	for first := true; ; first = false {
		c, err := d.s.ReadByte()
		if err != nil {
			if err != io.EOF {
				return 0, err
			}
			if top && first {
				return 0, &EarlyEndOfStreamError{Reason: "nothing to decode", Err: io.EOF}
			}
			return 0, &EarlyEndOfStreamError{Reason: "marker expected", Err: io.ErrUnexpectedEOF}
		}
		if c != codes.NoOp || d.allowNoOp {
			return c, nil
		}
	}
}

// decodeCode decodes the value that starts with marker c. Streamed
// containers are returned as streams when lazy is set and drained
// otherwise.
func (d *Decoder) decodeCode(c byte, lazy bool) (interface{}, error) {
	switch c {
	case codes.NoOp:
		return NoOp, nil
	case codes.Null:
		return nil, nil
	case codes.False:
		return false, nil
	case codes.True:
		return true, nil
	case codes.Int8, codes.Int16, codes.Int32, codes.Int64:
		return d.int(codes.Width(c))
	case codes.Float:
		return d.float32()
	case codes.Double:
		return d.float64()
	case codes.HugeShort, codes.HugeLong:
		return d.decimal(c)
	case codes.StringShort, codes.StringLong:
		return d.string(c)
	case codes.ArrayShort, codes.ArrayLong, codes.ObjectShort, codes.ObjectLong:
		return d.container(c, lazy)
	case codes.EOS:
		return nil, markerError(c, "unexpected end-of-stream marker")
	}
	return nil, markerError(c, "")
}

// container decodes an array or object, bounding how deep containers
// nest.
func (d *Decoder) container(c byte, lazy bool) (interface{}, error) {
	if d.depth >= maxDepth {
		return nil, markerError(c, "maximum nesting depth exceeded")
	}
	d.depth++
	defer func() { d.depth-- }()

	if codes.IsArray(c) {
		return d.array(c, lazy)
	}
	return d.object(c, lazy)
}

// elem decodes a member of a sized container.
func (d *Decoder) elem() (interface{}, error) {
	c, err := d.readCode(false)
	if err != nil {
		return nil, err
	}
	if codes.IsForbidden(c) {
		return nil, markerError(c, "invalid marker inside a sized container")
	}
	return d.decodeCode(c, false)
}

//------------------------------------------------------------------------------

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &EarlyEndOfStreamError{Reason: "truncated payload", Err: io.ErrUnexpectedEOF}
	}
	return err
}

func (d *Decoder) readByte() (byte, error) {
	c, err := d.s.ReadByte()
	if err != nil {
		return 0, truncated(err)
	}
	return c, nil
}

func (d *Decoder) readFull(b []byte) error {
	if _, err := io.ReadFull(d.r, b); err != nil {
		return truncated(err)
	}
	return nil
}

// readN reads a payload of n bytes. Large payloads are read in chunks so
// that a bogus length cannot force a large allocation up front.
func (d *Decoder) readN(n int) ([]byte, error) {
	if n <= bytesAllocLimit {
		b := make([]byte, n)
		if err := d.readFull(b); err != nil {
			return nil, err
		}
		return b, nil
	}

	var buf bytes.Buffer
	m, err := io.CopyN(&buf, d.r, int64(n))
	if m < int64(n) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, truncated(err)
	}
	return buf.Bytes(), nil
}

// length reads the length field of a short or long marker.
func (d *Decoder) length(c byte) (int, error) {
	if codes.IsShort(c) {
		n, err := d.readByte()
		return int(n), err
	}
	if err := d.readFull(d.buf[:4]); err != nil {
		return 0, err
	}
	n := uint64(d.uint32(d.buf))
	if n > math.MaxInt {
		return 0, markerError(c, "length overflows int")
	}
	return int(n), nil
}
