package ubjson

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vmihailenco/ubjson/codes"
)

// EncodeInt64 encodes n with the narrowest integer marker whose signed
// range contains it.
func (e *Encoder) EncodeInt64(n int64) error {
	c := intCode(n)
	return e.writeN(c, codes.Width(c), uint64(n))
}

// EncodeUint64 encodes n as an integer, or as a hugeint when n does not
// fit into int64.
func (e *Encoder) EncodeUint64(n uint64) error {
	if n <= math.MaxInt64 {
		return e.EncodeInt64(int64(n))
	}
	return e.encodeHuge(strconv.FormatUint(n, 10))
}

// EncodeBigInt encodes n as an integer, or as a hugeint when n does not
// fit into int64.
func (e *Encoder) EncodeBigInt(n *big.Int) error {
	if n.IsInt64() {
		return e.EncodeInt64(n.Int64())
	}
	return e.encodeHuge(n.String())
}

// EncodeFloat64 encodes n as float32 when its magnitude is within the
// float32 normal range, as float64 when it is within the float64 normal
// range, as null when it is infinite or NaN and as a hugeint otherwise
// (zero and subnormals). Negative zero keeps its sign.
func (e *Encoder) EncodeFloat64(n float64) error {
	abs := math.Abs(n)
	switch {
	case abs >= 1.18e-38 && abs <= 3.4e38:
		return e.write4(codes.Float, uint64(math.Float32bits(float32(n))))
	case abs >= 2.23e-308 && abs <= math.MaxFloat64:
		return e.write8(codes.Double, math.Float64bits(n))
	case math.IsInf(n, 0) || math.IsNaN(n):
		return e.EncodeNil()
	case n == 0 && math.Signbit(n):
		return e.encodeHuge("-0")
	}
	return e.EncodeDecimal(decimal.NewFromFloat(n))
}

func (e *Encoder) EncodeFloat32(n float32) error {
	return e.EncodeFloat64(float64(n))
}

// EncodeDecimal encodes d as a hugeint carrying its decimal text.
func (e *Encoder) EncodeDecimal(d decimal.Decimal) error {
	return e.encodeHuge(d.String())
}

func (e *Encoder) encodeHuge(s string) error {
	if err := e.encodeLen(codes.HugeShort, codes.HugeLong, len(s)); err != nil {
		return err
	}
	return e.writeString(s)
}

func intCode(n int64) byte {
	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return codes.Int8
	case n >= math.MinInt16 && n <= math.MaxInt16:
		return codes.Int16
	case n >= math.MinInt32 && n <= math.MaxInt32:
		return codes.Int32
	default:
		return codes.Int64
	}
}

func (e *Encoder) writeN(code byte, width int, n uint64) error {
	switch width {
	case 1:
		return e.write1(code, n)
	case 2:
		return e.write2(code, n)
	case 4:
		return e.write4(code, n)
	default:
		return e.write8(code, n)
	}
}

// writeRaw writes the big-endian payload of n without a marker.
func (e *Encoder) writeRaw(width int, n uint64) error {
	e.buf = e.buf[:width]
	for i := width - 1; i >= 0; i-- {
		e.buf[i] = byte(n)
		n >>= 8
	}
	return e.write(e.buf)
}

func (e *Encoder) write1(code byte, n uint64) error {
	e.buf = e.buf[:2]
	e.buf[0] = code
	e.buf[1] = byte(n)
	return e.write(e.buf)
}

func (e *Encoder) write2(code byte, n uint64) error {
	e.buf = e.buf[:3]
	e.buf[0] = code
	e.buf[1] = byte(n >> 8)
	e.buf[2] = byte(n)
	return e.write(e.buf)
}

func (e *Encoder) write4(code byte, n uint64) error {
	e.buf = e.buf[:5]
	e.buf[0] = code
	e.buf[1] = byte(n >> 24)
	e.buf[2] = byte(n >> 16)
	e.buf[3] = byte(n >> 8)
	e.buf[4] = byte(n)
	return e.write(e.buf)
}

func (e *Encoder) write8(code byte, n uint64) error {
	e.buf = e.buf[:9]
	e.buf[0] = code
	e.buf[1] = byte(n >> 56)
	e.buf[2] = byte(n >> 48)
	e.buf[3] = byte(n >> 40)
	e.buf[4] = byte(n >> 32)
	e.buf[5] = byte(n >> 24)
	e.buf[6] = byte(n >> 16)
	e.buf[7] = byte(n >> 8)
	e.buf[8] = byte(n)
	return e.write(e.buf)
}
