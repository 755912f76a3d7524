package flagctx_test

import (
	"testing"

	"github.com/flagctx/flagctx"
	"github.com/flagctx/flagctx/attr"
)

func TestBuilder_Defaults(t *testing.T) {
	c, err := flagctx.NewBuilder("k").Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.Kind() != flagctx.DefaultKind {
		t.Fatalf("kind = %s", c.Kind())
	}
	if c.Key() != "k" || c.Anonymous() || c.IsMulti() {
		t.Fatalf("unexpected defaults: %v", c)
	}
	if _, ok := c.Name(); ok {
		t.Fatalf("name must default to absent")
	}
	if _, ok := c.Secondary(); ok {
		t.Fatalf("secondary must default to absent")
	}
	if c.AttributeNames() != nil || c.PrivateAttributes() != nil {
		t.Fatalf("attributes must default to empty")
	}
}

func TestBuilder_Setters(t *testing.T) {
	c, err := flagctx.NewBuilder("k").
		Kind("org").
		Key("k2").
		Name("N").
		Anonymous(true).
		Secondary("S").
		SetString("s", "v").
		SetBool("b", true).
		SetInt("i", 7).
		SetFloat64("f", 2.5).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.Kind() != "org" || c.Key() != "k2" {
		t.Fatalf("identity mismatch: %s/%s", c.Kind(), c.Key())
	}
	if v, _ := c.Attribute("s"); !v.Equal(attr.String("v")) {
		t.Fatalf("s = %v", v)
	}
	if v, _ := c.Attribute("b"); !v.Equal(attr.Bool(true)) {
		t.Fatalf("b = %v", v)
	}
	if v, _ := c.Attribute("i"); !v.Equal(attr.Int(7)) {
		t.Fatalf("i = %v", v)
	}
	if v, _ := c.Attribute("f"); !v.Equal(attr.Float64(2.5)) {
		t.Fatalf("f = %v", v)
	}
}

func TestBuilder_TrySetValueRedirects(t *testing.T) {
	b := flagctx.NewBuilder("k")
	cases := []struct {
		name  string
		value attr.Value
		want  bool
	}{
		{"kind", attr.String("org"), true},
		{"kind", attr.Int(1), false},
		{"key", attr.String("k2"), true},
		{"key", attr.Bool(true), false},
		{"name", attr.String("N"), true},
		{"name", attr.Int(1), false},
		{"anonymous", attr.Bool(true), true},
		{"anonymous", attr.String("true"), false},
		{"_meta", attr.Object(map[string]attr.Value{"secondary": attr.String("x")}), false},
		{"", attr.String("x"), false},
		{"plain", attr.String("v"), true},
	}
	for _, tc := range cases {
		if got := b.TrySetValue(tc.name, tc.value); got != tc.want {
			t.Fatalf("TrySetValue(%q, %v) = %v, want %v", tc.name, tc.value, got, tc.want)
		}
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.Kind() != "org" || c.Key() != "k2" || !c.Anonymous() {
		t.Fatalf("redirects did not land: %v", c)
	}
	if name, _ := c.Name(); name != "N" {
		t.Fatalf("name = %q", name)
	}
	for _, reserved := range []string{"kind", "key", "name", "anonymous", "_meta", ""} {
		if _, ok := c.Attribute(reserved); ok {
			t.Fatalf("%q leaked into attributes", reserved)
		}
	}
	if v, ok := c.Attribute("plain"); !ok || v.StringValue() != "v" {
		t.Fatalf("plain = %v, %v", v, ok)
	}
}

func TestBuilder_NullValueRemovesAttribute(t *testing.T) {
	b := flagctx.NewBuilder("k").SetString("a", "1")
	if !b.TrySetValue("a", attr.Null()) {
		t.Fatalf("null removal must report success")
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := c.Attribute("a"); ok {
		t.Fatalf("attribute survived null removal")
	}
}

func TestBuilder_EmptyKey(t *testing.T) {
	_, err := flagctx.NewBuilder("").Build()
	if !flagctx.HasCode(err, flagctx.CodeEmptyKey) {
		t.Fatalf("expected empty_key, got %v", err)
	}

	c, err := flagctx.NewBuilder("").AllowEmptyKey().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.Key() != "" {
		t.Fatalf("key = %q", c.Key())
	}
}

func TestBuilder_KindValidation(t *testing.T) {
	for _, kind := range []flagctx.Kind{"multi", "kind", "b@d", "has space"} {
		_, err := flagctx.NewBuilder("k").Kind(kind).Build()
		if !flagctx.HasCode(err, flagctx.CodeInvalidKind) {
			t.Fatalf("%q: expected invalid_kind, got %v", kind, err)
		}
	}
	for _, kind := range []flagctx.Kind{"user", "Org-2", "a.b_c"} {
		if _, err := flagctx.NewBuilder("k").Kind(kind).Build(); err != nil {
			t.Fatalf("%q: unexpected err: %v", kind, err)
		}
	}
}

func TestBuilder_AggregatesIssues(t *testing.T) {
	_, err := flagctx.NewBuilder("").Kind("multi").Build()
	iss, ok := flagctx.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected both kind and key issues, got %v", err)
	}
	if !flagctx.HasCode(err, flagctx.CodeInvalidKind) || !flagctx.HasCode(err, flagctx.CodeEmptyKey) {
		t.Fatalf("missing expected codes: %v", err)
	}
}

func TestBuilder_ReuseProducesIndependentContexts(t *testing.T) {
	b := flagctx.NewBuilder("k").SetString("a", "1")
	c1, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	b.SetString("b", "2").Private(attr.NewRef("a"))
	c2, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := c1.Attribute("b"); ok {
		t.Fatalf("later builder mutation leaked into an earlier context")
	}
	if len(c1.PrivateAttributes()) != 0 {
		t.Fatalf("later private refs leaked into an earlier context")
	}
	if _, ok := c2.Attribute("b"); !ok {
		t.Fatalf("second build missing new attribute")
	}
	if c1.Equal(c2) {
		t.Fatalf("contexts must differ")
	}
}

func TestBuilder_PrivateOrderPreserved(t *testing.T) {
	c, err := flagctx.NewBuilder("k").
		Private(attr.NewRef("b")).
		PrivateNames("a").
		Private(attr.NewRef("/c/d")).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	priv := c.PrivateAttributes()
	if len(priv) != 3 || priv[0].String() != "b" || priv[1].String() != "a" || priv[2].String() != "/c/d" {
		t.Fatalf("order not preserved: %v", priv)
	}
}

func TestBuilder_PrivateNamesAreLiteral(t *testing.T) {
	c, err := flagctx.NewBuilder("k").PrivateNames("/a/b").Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	priv := c.PrivateAttributes()
	if len(priv) != 1 {
		t.Fatalf("expected one ref, got %v", priv)
	}
	if priv[0].Depth() != 1 || priv[0].Component(0) != "/a/b" {
		t.Fatalf("name must stay one literal component: %v", priv[0])
	}
	if priv[0].String() != "/~1a~1b" {
		t.Fatalf("escaped form mismatch: %q", priv[0].String())
	}
}
