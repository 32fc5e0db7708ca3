package ubjson

import (
	"reflect"
	"sync"

	"github.com/vmihailenco/tagparser"
)

var structs = newStructCache()

type structCache struct {
	mu sync.RWMutex
	m  map[reflect.Type]*fields
}

func newStructCache() *structCache {
	return &structCache{
		m: make(map[reflect.Type]*fields),
	}
}

func (m *structCache) Fields(typ reflect.Type) *fields {
	m.mu.RLock()
	fs, ok := m.m[typ]
	m.mu.RUnlock()
	if ok {
		return fs
	}

	m.mu.Lock()
	fs, ok = m.m[typ]
	if !ok {
		fs = getFields(typ, nil)
		m.m[typ] = fs
	}
	m.mu.Unlock()

	return fs
}

//------------------------------------------------------------------------------

type field struct {
	name      string
	index     []int
	omitEmpty bool
}

// value returns the field of strct, or false when an embedded pointer on
// the way to it is nil.
func (f *field) value(strct reflect.Value) (reflect.Value, bool) {
	return fieldByIndex(strct, f.index)
}

//------------------------------------------------------------------------------

type fields struct {
	List  []*field
	Table map[string]int

	// opaque is set for struct types that have fields but none that can
	// be encoded, such as time.Time.
	opaque bool
}

func newFields(numField int) *fields {
	return &fields{
		List:  make([]*field, 0, numField),
		Table: make(map[string]int, numField),
	}
}

func (fs *fields) Len() int {
	return len(fs.List)
}

// Add appends f unless a field with the same name exists. A shallower
// field replaces a deeper one in place.
func (fs *fields) Add(f *field) {
	if i, ok := fs.Table[f.name]; ok {
		if len(f.index) < len(fs.List[i].index) {
			fs.List[i] = f
		}
		return
	}
	fs.Table[f.name] = len(fs.List)
	fs.List = append(fs.List, f)
}

type fieldValue struct {
	name  string
	value reflect.Value
}

// Values returns the fields of strct that are to be encoded, in
// declaration order.
func (fs *fields) Values(strct reflect.Value) []fieldValue {
	values := make([]fieldValue, 0, fs.Len())
	for _, f := range fs.List {
		v, ok := f.value(strct)
		if !ok {
			continue
		}
		if f.omitEmpty && isEmptyValue(v) {
			continue
		}
		values = append(values, fieldValue{name: f.name, value: v})
	}
	return values
}

func getFields(typ reflect.Type, seen []reflect.Type) *fields {
	numField := typ.NumField()
	fs := newFields(numField)
	seen = append(seen, typ)

	var skipped bool
	for i := 0; i < numField; i++ {
		f := typ.Field(i)

		tag := tagparser.Parse(f.Tag.Get("ubjson"))
		if tag.Name == "-" {
			skipped = true
			continue
		}

		if f.Anonymous && tag.Name == "" && inlineFields(fs, f, seen) {
			continue
		}
		if f.PkgPath != "" {
			continue
		}

		name := tag.Name
		if name == "" {
			name = f.Name
		}
		fs.Add(&field{
			name:      name,
			index:     f.Index,
			omitEmpty: tag.HasOption("omitempty"),
		})
	}

	fs.opaque = numField > 0 && fs.Len() == 0 && !skipped
	return fs
}

func inlineFields(fs *fields, f reflect.StructField, seen []reflect.Type) bool {
	typ := f.Type
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return false
	}
	for _, t := range seen {
		if t == typ {
			return true
		}
	}

	for _, inlined := range getFields(typ, seen).List {
		index := make([]int, 0, len(f.Index)+len(inlined.index))
		index = append(index, f.Index...)
		index = append(index, inlined.index...)
		fs.Add(&field{
			name:      inlined.name,
			index:     index,
			omitEmpty: inlined.omitEmpty,
		})
	}
	return true
}

func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	if len(index) == 1 {
		return v.Field(index[0]), true
	}
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return v, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
