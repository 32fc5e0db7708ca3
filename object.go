package ubjson

import (
	"fmt"
	"iter"
	"strings"
)

// Object is a mapping with string keys that remembers insertion order.
// Setting an existing key replaces its value in place.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject returns an empty object with room for n keys.
func NewObject(n int) *Object {
	return &Object{
		keys:   make([]string, 0, n),
		values: make(map[string]interface{}, n),
	}
}

// ObjectOf builds an object from alternating keys and values.
// It panics if a key is not a string.
func ObjectOf(kv ...interface{}) *Object {
	if len(kv)%2 != 0 {
		panic("ubjson: ObjectOf: odd number of arguments")
	}
	o := NewObject(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

func (o *Object) Set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Get(key string) (interface{}, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// All iterates over the entries in insertion order.
func (o *Object) All() iter.Seq2[string, interface{}] {
	return func(yield func(string, interface{}) bool) {
		for _, k := range o.Keys() {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %v", k, o.values[k])
	}
	b.WriteByte('}')
	return b.String()
}
