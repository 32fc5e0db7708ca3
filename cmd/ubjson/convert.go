package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/vmihailenco/ubjson"
)

//------------------------------------------------------------------------------
// JSON and YAML input

// readJSON parses a sequence of JSON values. Comments and trailing commas
// are stripped first. Objects become *ubjson.Object so key order is kept.
func readJSON(data []byte) ([]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var values []interface{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse JSON value %d: %w", len(values), err)
		}
		v, err := jsonValue(dec, tok)
		if err != nil {
			return nil, fmt.Errorf("parse JSON value %d: %w", len(values), err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.New("no JSON values in input")
	}
	return values, nil
}

func jsonValue(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '[':
			arr := make([]interface{}, 0)
			for dec.More() {
				el, err := nextJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			obj := ubjson.NewObject(0)
			for dec.More() {
				tok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := tok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", tok)
				}
				val, err := nextJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", tok)
	case json.Number:
		return parseNumber(tok.String())
	default:
		// string, bool or nil
		return tok, nil
	}
}

func nextJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonValue(dec, tok)
}

// parseNumber picks the narrowest Go type that holds s exactly enough for
// the encoder: int64, then *big.Int for other integers, then float64, and
// decimal.Decimal for numbers outside the float64 range.
func parseNumber(s string) (interface{}, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if !strings.ContainsAny(s, ".eE") {
		if n, ok := new(big.Int).SetString(s, 10); ok {
			return n, nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// readYAML parses every document of a YAML stream.
func readYAML(data []byte) ([]interface{}, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var values []interface{}
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse YAML document %d: %w", len(values), err)
		}
		v, err := yamlValue(&doc)
		if err != nil {
			return nil, fmt.Errorf("parse YAML document %d: %w", len(values), err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.New("no YAML documents in input")
	}
	return values, nil
}

func yamlValue(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.SequenceNode:
		arr := make([]interface{}, 0, len(node.Content))
		for _, el := range node.Content {
			v, err := yamlValue(el)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := ubjson.NewObject(len(node.Content) / 2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: object key must be a scalar", key.Line)
			}
			v, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
}

func yamlScalar(node *yaml.Node) (interface{}, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err == nil {
			return n, nil
		}
		if n, ok := new(big.Int).SetString(node.Value, 0); ok {
			return n, nil
		}
		return nil, fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil {
			return f, nil
		}
		return parseNumber(node.Value)
	}
	return node.Value, nil
}

//------------------------------------------------------------------------------
// Decoded values

// materialize drains top-level streams so v can be rendered.
func materialize(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case *ubjson.ArrayStream:
		return v.Drain()
	case *ubjson.ObjectStream:
		return v.Drain()
	}
	return v, nil
}

// plain drops no-op markers, which have no JSON or YAML counterpart. A
// no-op on its own becomes nil.
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case ubjson.NoOpMarker:
		return nil
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, el := range v {
			if _, ok := el.(ubjson.NoOpMarker); ok {
				continue
			}
			out = append(out, plain(el))
		}
		return out
	case *ubjson.Object:
		out := ubjson.NewObject(v.Len())
		for key, val := range v.All() {
			out.Set(key, plain(val))
		}
		return out
	}
	return v
}

//------------------------------------------------------------------------------
// JSON output

func writeJSON(w io.Writer, v interface{}, compact bool) error {
	b, err := appendJSON(nil, v)
	if err != nil {
		return err
	}
	if !compact {
		var indented bytes.Buffer
		if err := json.Indent(&indented, b, "", "  "); err != nil {
			return err
		}
		b = indented.Bytes()
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func appendJSON(b []byte, v interface{}) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return append(b, "null"...), nil
	case bool:
		return strconv.AppendBool(b, v), nil
	case int64:
		return strconv.AppendInt(b, v, 10), nil
	case float32:
		return appendJSONFloat(b, float64(v), 32), nil
	case float64:
		return appendJSONFloat(b, v, 64), nil
	case decimal.Decimal:
		return append(b, v.String()...), nil
	case string:
		return appendJSONString(b, v), nil
	case []interface{}:
		b = append(b, '[')
		for i, el := range v {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = appendJSON(b, el)
			if err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	case *ubjson.Object:
		b = append(b, '{')
		i := 0
		for key, val := range v.All() {
			if i > 0 {
				b = append(b, ',')
			}
			i++
			b = appendJSONString(b, key)
			b = append(b, ':')
			var err error
			b, err = appendJSON(b, val)
			if err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	}
	return nil, fmt.Errorf("cannot convert %T to JSON", v)
}

// appendJSONFloat writes non-finite values as null.
func appendJSONFloat(b []byte, f float64, bitSize int) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(b, "null"...)
	}
	return strconv.AppendFloat(b, f, 'g', -1, bitSize)
}

func appendJSONString(b []byte, s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return append(b, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...)
}

//------------------------------------------------------------------------------
// YAML output

func writeYAML(w io.Writer, v interface{}) error {
	node, err := yamlNode(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

func yamlNode(v interface{}) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil
	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(v)), nil
	case int64:
		return yamlScalarNode("!!int", strconv.FormatInt(v, 10)), nil
	case float32:
		return yamlScalarNode("!!float", yamlFloat(float64(v), 32)), nil
	case float64:
		return yamlScalarNode("!!float", yamlFloat(v, 64)), nil
	case decimal.Decimal:
		if v.IsInteger() {
			return yamlScalarNode("!!int", v.String()), nil
		}
		return yamlScalarNode("!!float", v.String()), nil
	case string:
		return yamlScalarNode("!!str", v), nil
	case []interface{}:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v {
			child, err := yamlNode(el)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *ubjson.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, val := range v.All() {
			child, err := yamlNode(val)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, yamlScalarNode("!!str", key), child)
		}
		return node, nil
	}
	return nil, fmt.Errorf("cannot convert %T to YAML", v)
}

func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
