package node

import (
	"strings"
	"testing"
)

func mustDecode(t *testing.T, raw string) any {
	t.Helper()
	v, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return v
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	v := mustDecode(t, `{"zeta":1,"alpha":2,"mid":3}`)
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", v)
	}
	got := make([]string, 0, len(obj.Members))
	for _, m := range obj.Members {
		got = append(got, m.Key)
	}
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key order = %v, want %v", got, want)
		}
	}
}

func TestDecodeRejectsTrailingContent(t *testing.T) {
	if _, err := Decode([]byte(`{"a":1} extra`)); err == nil {
		t.Fatalf("expected error for trailing content")
	}
	if _, err := Decode([]byte(``)); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestNormalizeEncodedString(t *testing.T) {
	n := Normalize(`{"a":1}`)
	if n == nil || n.Kind != KindMap {
		t.Fatalf("expected KindMap, got %+v", n)
	}
	if len(n.Entries) != 1 || n.Entries[0].Key != "a" {
		t.Fatalf("unexpected entries: %+v", n.Entries)
	}
	child := n.Entries[0].Value
	if child == nil || child.Kind != KindPrimitive || child.Text != "1" {
		t.Fatalf("expected primitive \"1\", got %+v", child)
	}
}

func TestNormalizeInvalidJSONStaysString(t *testing.T) {
	raw := `{"a": broken`
	n := Normalize(raw)
	if n == nil || n.Kind != KindPrimitive || n.Text != raw {
		t.Fatalf("JSON-looking fragment must stay a primitive string, got %+v", n)
	}
}

func TestNormalizeNilIsAbsent(t *testing.T) {
	if n := Normalize(nil); n != nil {
		t.Fatalf("nil must normalize to absent, got %+v", n)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(mustDecode(t, `{"theme":"Launch week","tags":["a","b"],"count":2}`))
	second := Normalize(first)
	if second != first {
		t.Fatalf("normalizing a Node must return it unchanged")
	}
}

func TestNormalizeDropsAbsentSequenceElements(t *testing.T) {
	n := Normalize(mustDecode(t, `["a",null,"b",null]`))
	if n.Kind != KindSequence {
		t.Fatalf("expected sequence, got %+v", n)
	}
	if len(n.Items) != 2 {
		t.Fatalf("absent elements must be dropped, got %d items", len(n.Items))
	}
	if n.Items[0].Text != "a" || n.Items[1].Text != "b" {
		t.Fatalf("unexpected items: %+v", n.Items)
	}
}

func TestNormalizeKeepsAbsentMapEntries(t *testing.T) {
	n := Normalize(mustDecode(t, `{"present":"x","empty":null}`))
	if len(n.Entries) != 2 {
		t.Fatalf("absent-valued keys must remain entries, got %+v", n.Entries)
	}
	if n.Entries[1].Key != "empty" || n.Entries[1].Value != nil {
		t.Fatalf("expected nil value for empty key, got %+v", n.Entries[1])
	}
}

func TestNormalizeNestedEncodedStrings(t *testing.T) {
	n := Normalize(`{"inner":"{\"deep\":true}"}`)
	if n.Kind != KindMap {
		t.Fatalf("expected map, got %+v", n)
	}
	inner := n.Entries[0].Value
	if inner == nil || inner.Kind != KindMap {
		t.Fatalf("inner encoded string must decode, got %+v", inner)
	}
	if inner.Entries[0].Value.Text != "true" {
		t.Fatalf("expected boolean primitive, got %+v", inner.Entries[0].Value)
	}
}

func TestDetectBilingualExactness(t *testing.T) {
	pair, ok := DetectBilingual(&Object{Members: []Member{
		{Key: "en", Value: "hello"},
		{Key: "ar", Value: "مرحبا"},
	}})
	if !ok {
		t.Fatalf("expected bilingual pair")
	}
	if pair.Primary != "hello" || pair.Secondary != "مرحبا" {
		t.Fatalf("unexpected pair: %+v", pair)
	}

	if _, ok := DetectBilingual(&Object{Members: []Member{
		{Key: "en", Value: "a"},
		{Key: "ar", Value: "b"},
		{Key: "extra", Value: "c"},
	}}); ok {
		t.Fatalf("three-key map must not be bilingual")
	}
	if _, ok := DetectBilingual(&Object{Members: []Member{
		{Key: "en", Value: "a"},
		{Key: "fr", Value: "b"},
	}}); ok {
		t.Fatalf("wrong key set must not be bilingual")
	}
	if _, ok := DetectBilingual(&Object{Members: []Member{
		{Key: "en", Value: "a"},
	}}); ok {
		t.Fatalf("single-key map must not be bilingual")
	}
}

func TestNormalizeBilingualPairTextStaysRaw(t *testing.T) {
	n := Normalize(`{"en":"{\"k\":1}","ar":"x"}`)
	if n.Kind != KindBilingual {
		t.Fatalf("expected bilingual, got %+v", n)
	}
	if n.Primary != `{"k":1}` {
		t.Fatalf("pair text must not be re-decoded, got %q", n.Primary)
	}
}

func TestNormalizeDepthCap(t *testing.T) {
	deep := strings.Repeat(`[`, 1200) + `1` + strings.Repeat(`]`, 1200)
	n := Normalize(deep)
	if n == nil {
		t.Fatalf("deep input must still normalize")
	}
	// Walk down: at some point the tree flattens into an opaque primitive.
	depth := 0
	for n.Kind == KindSequence {
		if len(n.Items) != 1 {
			t.Fatalf("unexpected fan-out at depth %d", depth)
		}
		n = n.Items[0]
		depth++
		if depth > 1500 {
			t.Fatalf("tree deeper than the recursion cap")
		}
	}
	if n.Kind != KindPrimitive {
		t.Fatalf("deep tail must collapse to a primitive, got kind %d", n.Kind)
	}
}

func TestMarshalIndentKeepsObjectOrder(t *testing.T) {
	v := mustDecode(t, `{"b":1,"a":{"z":2,"y":3}}`)
	out := MarshalIndent(v)
	if strings.Index(out, `"b"`) > strings.Index(out, `"a"`) {
		t.Fatalf("marshal must keep insertion order:\n%s", out)
	}
	if strings.Index(out, `"z"`) > strings.Index(out, `"y"`) {
		t.Fatalf("nested marshal must keep insertion order:\n%s", out)
	}
}
