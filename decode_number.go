package ubjson

import "math"

func (d *Decoder) uint16(b []byte) uint16 {
	return (uint16(b[0]) << 8) | uint16(b[1])
}

func (d *Decoder) uint32(b []byte) uint32 {
	n := (uint32(b[0]) << 24) |
		(uint32(b[1]) << 16) |
		(uint32(b[2]) << 8) |
		uint32(b[3])
	return n
}

func (d *Decoder) uint64(b []byte) uint64 {
	n := (uint64(b[0]) << 56) |
		(uint64(b[1]) << 48) |
		(uint64(b[2]) << 40) |
		(uint64(b[3]) << 32) |
		(uint64(b[4]) << 24) |
		(uint64(b[5]) << 16) |
		(uint64(b[6]) << 8) |
		uint64(b[7])
	return n
}

// int reads a signed big-endian integer payload of the given width.
func (d *Decoder) int(width int) (int64, error) {
	b := d.buf[:width]
	if err := d.readFull(b); err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return int64(int8(b[0])), nil
	case 2:
		return int64(int16(d.uint16(b))), nil
	case 4:
		return int64(int32(d.uint32(b))), nil
	default:
		return int64(d.uint64(b)), nil
	}
}

func (d *Decoder) float32() (float32, error) {
	b := d.buf[:4]
	if err := d.readFull(b); err != nil {
		return 0, err
	}
	return math.Float32frombits(d.uint32(b)), nil
}

func (d *Decoder) float64() (float64, error) {
	b := d.buf[:8]
	if err := d.readFull(b); err != nil {
		return 0, err
	}
	return math.Float64frombits(d.uint64(b)), nil
}
