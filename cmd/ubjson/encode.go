package main

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/vmihailenco/ubjson"
)

func (a *app) encode(args []string) error {
	fs, verbose := a.flagSet("encode")
	from := fs.StringP("from", "f", "json", "input format: json or yaml")
	stream := fs.Bool("stream", false, "write top-level arrays and objects as streamed containers")
	if err := a.parse(fs, verbose, args); err != nil {
		return err
	}

	var read func([]byte) ([]interface{}, error)
	switch *from {
	case "json":
		read = readJSON
	case "yaml":
		read = readYAML
	default:
		return usagef("unknown input format %q (want json or yaml)", *from)
	}

	data, err := readInput(fs.Args(), a.stdin, false)
	if err != nil {
		return err
	}
	values, err := read(data)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	enc := ubjson.NewEncoder(&out)
	for i, v := range values {
		if err := encodeTop(enc, v, *stream); err != nil {
			return fmt.Errorf("encode value %d: %w", i, err)
		}
	}
	a.logger.Debug("encoded", "format", *from, "values", len(values), "bytes", out.Len())

	_, err = a.stdout.Write(out.Bytes())
	return err
}

func encodeTop(enc *ubjson.Encoder, v interface{}, stream bool) error {
	if stream {
		switch v := v.(type) {
		case []interface{}:
			return enc.EncodeArrayStream(slices.Values(v))
		case *ubjson.Object:
			return enc.EncodeObjectStream(v.All())
		}
	}
	return enc.Encode(v)
}
