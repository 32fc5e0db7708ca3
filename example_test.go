package ubjson_test

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/vmihailenco/ubjson"
)

func ExampleMarshal() {
	type Item struct {
		Foo string `ubjson:"foo"`
		Bar string `ubjson:"bar,omitempty"`
	}

	b, err := ubjson.Marshal(&Item{Foo: "hello"})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%q\n", b)

	v, err := ubjson.Unmarshal(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: "o\x01s\x03foos\x05hello"
	// {"foo": hello}
}

func ExampleMarshal_homogeneousArray() {
	b, err := ubjson.Marshal([]interface{}{1, 2, 300})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%q\n", b)
	// Output: "ai\x03\x00\x01\x00\x02\x01,"
}

func ExampleUnmarshal() {
	v, err := ubjson.Unmarshal([]byte("o\x02s\x04names\x06ubjsons\x04sizeB\x03"))
	if err != nil {
		panic(err)
	}
	obj := v.(*ubjson.Object)
	fmt.Println(obj.Keys())
	fmt.Println(obj)
	// Output: [name size]
	// {"name": ubjson, "size": 3}
}

func ExampleDecoder_Decode_stream() {
	dec := ubjson.NewDecoder(bytes.NewReader([]byte("a\xffB\x01NB\x02E")))

	v, err := dec.Decode()
	if err != nil {
		panic(err)
	}
	for el, err := range v.(*ubjson.ArrayStream).All() {
		if err != nil {
			panic(err)
		}
		fmt.Println(el)
	}
	// Output: 1
	// 2
}

func ExampleDecoder_SetAllowNoOp() {
	dec := ubjson.NewDecoder(bytes.NewReader([]byte("o\xffNs\x01kTE")))
	dec.SetAllowNoOp(true)

	v, err := dec.Decode()
	if err != nil {
		panic(err)
	}
	for p, err := range v.(*ubjson.ObjectStream).All() {
		if err != nil {
			panic(err)
		}
		fmt.Println(p)
	}
	// Output: NoOp
	// "k": true
}

func ExampleEncoder_EncodeArrayStream() {
	var buf bytes.Buffer
	enc := ubjson.NewEncoder(&buf)

	err := enc.EncodeArrayStream(slices.Values([]interface{}{"a", ubjson.NoOp, 2}))
	if err != nil {
		panic(err)
	}
	fmt.Printf("%q\n", buf.Bytes())
	// Output: "a\xffs\x01aNB\x02E"
}

func ExampleEncoder_SetDefault() {
	type celsius complex64

	var buf bytes.Buffer
	enc := ubjson.NewEncoder(&buf)
	enc.SetDefault(func(v interface{}) (interface{}, error) {
		if c, ok := v.(celsius); ok {
			return real(c), nil
		}
		return nil, fmt.Errorf("no mapping for %T", v)
	})

	if err := enc.Encode([]interface{}{celsius(21.5)}); err != nil {
		panic(err)
	}
	fmt.Printf("%q\n", buf.Bytes())

	err := enc.Encode(struct{ c chan int }{})
	fmt.Println(err)
	// Output: "aM\x01dA\xac\x00\x00"
	// ubjson: unable to encode struct { c chan int }: no mapping for struct { c chan int }
}
