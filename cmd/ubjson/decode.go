package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/ubjson"
)

func (a *app) decode(args []string) error {
	fs, verbose := a.flagSet("decode")
	to := fs.StringP("to", "t", "json", "output format: json or yaml")
	compact := fs.BoolP("compact", "c", false, "write JSON on a single line")
	slurp := fs.BoolP("slurp", "s", false, "decode every value in the input into one array")
	hexInput := fs.BoolP("hex", "x", false, "read hex-encoded input")
	allowNoOp := fs.Bool("allow-noop", false, "surface noop markers in streams instead of skipping them")
	if err := a.parse(fs, verbose, args); err != nil {
		return err
	}

	switch *to {
	case "json", "yaml":
	default:
		return usagef("unknown output format %q (want json or yaml)", *to)
	}

	data, err := readInput(fs.Args(), a.stdin, *hexInput)
	if err != nil {
		return err
	}
	values, rest, err := decodeValues(data, *allowNoOp, *slurp)
	if err != nil {
		return err
	}
	if rest > 0 {
		a.logger.Warn("trailing data ignored", "bytes", rest)
	}
	a.logger.Debug("decoded", "values", len(values), "bytes", len(data)-rest)

	var out interface{}
	if *slurp {
		out = plain(values)
	} else {
		out = plain(values[0])
	}

	if *to == "yaml" {
		return writeYAML(a.stdout, out)
	}
	return writeJSON(a.stdout, out, *compact)
}

// decodeValues decodes the first value of data, or every value when all
// is set. Streams are drained. It also returns the number of bytes left
// unread.
func decodeValues(data []byte, allowNoOp, all bool) ([]interface{}, int, error) {
	r := bytes.NewReader(data)
	dec := ubjson.NewDecoder(r)
	dec.SetAllowNoOp(allowNoOp)

	values := make([]interface{}, 0)
	for {
		v, err := dec.Decode()
		if err != nil {
			if all && len(values) > 0 && errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("decode value %d: %w", len(values), err)
		}
		v, err = materialize(v)
		if err != nil {
			return nil, 0, fmt.Errorf("decode value %d: %w", len(values), err)
		}
		values = append(values, v)
		if !all {
			break
		}
	}
	return values, r.Len(), nil
}
