package ubjson

import (
	"reflect"
	"sort"
)

// encodeReflect handles values outside the core value domain: named
// scalars, pointers, arbitrary slices, arrays, maps and structs. Whatever
// it cannot map is handed to the default hook.
func (e *Encoder) encodeReflect(v interface{}, useDefault bool) error {
	return e.encodeValue(reflect.ValueOf(v), useDefault)
}

// EncodeValue encodes the value held by v.
func (e *Encoder) EncodeValue(v reflect.Value) error {
	if !v.IsValid() {
		return e.EncodeNil()
	}
	return e.Encode(v.Interface())
}

func (e *Encoder) encodeValue(v reflect.Value, useDefault bool) error {
	switch v.Kind() {
	case reflect.Invalid:
		return e.EncodeNil()
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return e.EncodeNil()
		}
		return e.encode(v.Elem().Interface(), useDefault)
	case reflect.Bool:
		return e.EncodeBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.EncodeInt64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.EncodeUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return e.EncodeFloat64(v.Float())
	case reflect.String:
		return e.EncodeString(v.String())
	case reflect.Slice:
		if v.IsNil() {
			return e.EncodeNil()
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.EncodeBytes(v.Bytes())
		}
		return e.encodeSliceValue(v)
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return e.EncodeBytes(b)
		}
		return e.encodeSliceValue(v)
	case reflect.Map:
		return e.encodeMapValue(v, useDefault)
	case reflect.Struct:
		return e.encodeStructValue(v, useDefault)
	}
	return e.encodeDefault(v.Interface(), useDefault)
}

func (e *Encoder) encodeSliceValue(v reflect.Value) error {
	return e.encodeSequence(v.Len(), func(i int) interface{} {
		return v.Index(i).Interface()
	})
}

func (e *Encoder) encodeMapValue(v reflect.Value, useDefault bool) error {
	if v.IsNil() {
		return e.EncodeNil()
	}

	keys := v.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			if e.defaultFunc != nil && useDefault {
				return e.encodeDefault(v.Interface(), useDefault)
			}
			return encodeError(v.Interface(), "object key must be a string")
		}
		names[i] = k.String()
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return names[order[a]] < names[order[b]]
	})

	if err := e.EncodeObjectLen(len(keys)); err != nil {
		return err
	}
	for _, i := range order {
		if err := e.EncodeString(names[i]); err != nil {
			return err
		}
		if err := e.encodeElem(v.MapIndex(keys[i]).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeStructValue(strct reflect.Value, useDefault bool) error {
	fs := structs.Fields(strct.Type())
	if fs.opaque {
		return e.encodeDefault(strct.Interface(), useDefault)
	}

	values := fs.Values(strct)
	if err := e.EncodeObjectLen(len(values)); err != nil {
		return err
	}
	for _, f := range values {
		if err := e.EncodeString(f.name); err != nil {
			return err
		}
		if err := e.encodeElem(f.value.Interface()); err != nil {
			return err
		}
	}
	return nil
}
