package ubjson

import "github.com/vmihailenco/ubjson/codes"

func (d *Decoder) object(c byte, lazy bool) (interface{}, error) {
	n, err := d.length(c)
	if err != nil {
		return nil, err
	}

	if c == codes.ObjectShort && n == codes.StreamLen {
		s := &ObjectStream{d: d}
		if !lazy {
			return s.Drain()
		}
		d.open = s
		return s, nil
	}

	o := NewObject(min(n, sliceAllocLimit))
	for i := 0; i < n; i++ {
		c, err := d.readCode(false)
		if err != nil {
			return nil, err
		}
		if codes.IsForbidden(c) {
			return nil, markerError(c, "invalid marker inside a sized container")
		}
		k, err := d.key(c)
		if err != nil {
			return nil, err
		}

		v, err := d.elem()
		if err != nil {
			return nil, err
		}
		o.Set(k, v)
	}
	return o, nil
}

func (d *Decoder) key(c byte) (string, error) {
	if !codes.IsObjectKey(c) {
		return "", markerError(c, "object key must be a string")
	}
	return d.string(c)
}
