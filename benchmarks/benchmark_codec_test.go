package flagctx_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/flagctx/flagctx"
)

// ---- payload builders ----

func legacyUserJSON() []byte {
	return []byte(`{"key":"user-key","name":"Jane","secondary":"s","anonymous":true,` +
		`"firstName":"Jane","lastName":"Doe","email":"jane@example.com","country":"JP","ip":"10.0.0.1",` +
		`"custom":{"tier":"gold","score":42,"beta":true},` +
		`"privateAttributeNames":["email","ip"]}`)
}

func singleContextJSON(extraAttrs int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"kind":"user","key":"user-key","name":"Jane","anonymous":true`)
	buf.WriteString(`,"_meta":{"secondary":"s","privateAttributes":["email","/profile/score"]}`)
	buf.WriteString(`,"email":"jane@example.com","profile":{"score":42,"tags":["a","b"]}`)
	for k := 0; k < extraAttrs; k++ {
		buf.WriteString(`,"k`)
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`":"v`)
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`"`)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func multiContextJSON(kinds int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"kind":"multi"`)
	for i := 0; i < kinds; i++ {
		fmt.Fprintf(&buf, `,"kind-%d":{"key":"key-%d","anonymous":true,"rank":%d}`, i, i, i)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func decodeForBench(b *testing.B, data []byte) flagctx.Context {
	b.Helper()
	c, err := flagctx.DecodeJSON(data)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

// ---- decode ----

func Benchmark_DecodeJSON_Legacy(b *testing.B) {
	data := legacyUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flagctx.DecodeJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeJSON_Single_Small(b *testing.B) {
	data := singleContextJSON(0)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flagctx.DecodeJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeJSON_Single_ManyAttrs(b *testing.B) {
	data := singleContextJSON(32)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flagctx.DecodeJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeJSON_Multi_FourKinds(b *testing.B) {
	data := multiContextJSON(4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flagctx.DecodeJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- encode ----

func Benchmark_EncodeJSON_Single(b *testing.B) {
	c := decodeForBench(b, singleContextJSON(8))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flagctx.EncodeJSON(c); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_EncodeJSON_Multi(b *testing.B) {
	c := decodeForBench(b, multiContextJSON(4))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := flagctx.EncodeJSON(c); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- round trip ----

func Benchmark_RoundTrip_Single(b *testing.B) {
	data := singleContextJSON(8)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := flagctx.DecodeJSON(data)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := flagctx.EncodeJSON(c); err != nil {
			b.Fatal(err)
		}
	}
}
