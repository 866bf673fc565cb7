// internal/node/node.go
//
// Node is the normalized form of any value coming back from an automation
// webhook. Payloads are loosely typed: a field may hold a primitive, a list,
// an object, or a string that is itself a JSON document. Normalize folds all
// of that into one tree the renderer and the document formatter both consume.

package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Kind discriminates the Node variants.
type Kind int

const (
	KindPrimitive Kind = iota // verbatim text
	KindSequence              // ordered list, order preserved
	KindMap                   // keyed entries, insertion order preserved
	KindBilingual             // two-language pair, collapses on export
)

// Language key conventions used by the automation payloads. These are exact
// literals: detection never fuzzy-matches beyond them.
const (
	PrimaryLanguageKey   = "en"
	SecondaryLanguageKey = "ar"
	PrimarySuffix        = "_en"
	SecondarySuffix      = "_ar"
	SecondaryLegacyKey   = "arabic_colloquial"
)

// maxDepth caps recursion on hostile nesting. Values past the cap collapse to
// an opaque string rather than recursing further.
const maxDepth = 1000

// Node is one normalized value. Exactly one variant's fields are meaningful,
// selected by Kind. A nil *Node means "absent": renders nothing, formats to
// an empty contribution.
type Node struct {
	Kind Kind

	// KindPrimitive
	Text string

	// KindSequence
	Items []*Node

	// KindMap. An Entry with a nil Value is a key whose value normalized to
	// absent; downstream consumers decide whether to skip it.
	Entries []Entry

	// KindBilingual
	Primary   string
	Secondary string
}

// Entry is one keyed-map member.
type Entry struct {
	Key   string
	Value *Node
}

// Object is an order-preserving decoded JSON object. encoding/json's map
// decoding would lose key order, which the renderer depends on.
type Object struct {
	Members []Member
}

// Member is one decoded object field.
type Member struct {
	Key   string
	Value any
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Len reports the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}

// MarshalJSON re-encodes the object with its original key order, so raw
// payload fallbacks display in the order the webhook sent.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a complete JSON document, preserving object key order and
// keeping numbers verbatim as json.Number. Trailing content after the
// document is an error: a string that is not entirely JSON stays a string.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("node: trailing content after JSON document")
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("node: unexpected delimiter %q", t.String())
	default:
		// string, json.Number, bool, or nil
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("node: object key is not a string")
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	var items []any
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

// Normalize maps an arbitrary value to a Node, or nil for absent input.
// It is idempotent: a *Node passes through unchanged. Strings are decoded
// opportunistically — a string that parses fully as JSON is recursed into,
// anything else stays a primitive. Decode failures are never surfaced.
func Normalize(v any) *Node {
	return normalize(v, 0)
}

func normalize(v any, depth int) *Node {
	if v == nil {
		return nil
	}
	if n, ok := v.(*Node); ok {
		return n
	}
	if depth > maxDepth {
		return &Node{Kind: KindPrimitive, Text: opaqueText(v)}
	}
	switch value := v.(type) {
	case string:
		if decoded, err := Decode([]byte(value)); err == nil {
			return normalize(decoded, depth+1)
		}
		return &Node{Kind: KindPrimitive, Text: value}
	case bool:
		if value {
			return &Node{Kind: KindPrimitive, Text: "true"}
		}
		return &Node{Kind: KindPrimitive, Text: "false"}
	case json.Number:
		return &Node{Kind: KindPrimitive, Text: value.String()}
	case float64:
		return &Node{Kind: KindPrimitive, Text: fmt.Sprintf("%g", value)}
	case int:
		return &Node{Kind: KindPrimitive, Text: fmt.Sprintf("%d", value)}
	case []any:
		var items []*Node
		for _, item := range value {
			if child := normalize(item, depth+1); child != nil {
				items = append(items, child)
			}
		}
		return &Node{Kind: KindSequence, Items: items}
	case *Object:
		if pair, ok := DetectBilingual(value); ok {
			return pair
		}
		entries := make([]Entry, 0, len(value.Members))
		for _, m := range value.Members {
			entries = append(entries, Entry{Key: m.Key, Value: normalize(m.Value, depth+1)})
		}
		return &Node{Kind: KindMap, Entries: entries}
	default:
		return &Node{Kind: KindPrimitive, Text: opaqueText(v)}
	}
}

// DetectBilingual recognizes an object holding the same content in the two
// known languages: exactly two members whose keys are the primary and
// secondary language literals, both with string values. The texts are kept
// raw — they are displayed as plain text even if they look like nested JSON.
func DetectBilingual(o *Object) (*Node, bool) {
	if o == nil || len(o.Members) != 2 {
		return nil, false
	}
	primary, hasPrimary := o.Get(PrimaryLanguageKey)
	secondary, hasSecondary := o.Get(SecondaryLanguageKey)
	if !hasPrimary || !hasSecondary {
		return nil, false
	}
	primaryText, ok := primary.(string)
	if !ok {
		return nil, false
	}
	secondaryText, ok := secondary.(string)
	if !ok {
		return nil, false
	}
	return &Node{Kind: KindBilingual, Primary: primaryText, Secondary: secondaryText}, true
}

// MarshalIndent pretty-prints a decoded value for the raw-payload fallback
// view. Failures degrade to fmt formatting rather than erroring.
func MarshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func opaqueText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
