package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind is the variant of a Node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Member is a key / value pair of an Object node. Order is preserved.
type Member struct {
	Key   string
	Value *Node
}

// Node is a JSON-like value. Numbers are held as their literal text so a document can be
// parsed and re-encoded without losing precision.
type Node struct {
	Kind Kind

	// Text holds the String value or the Number literal.
	Text    string
	Flag    bool
	Items   []*Node
	Members []Member
}

func NewNull() *Node { return &Node{Kind: Null} }
func NewBool(b bool) *Node { return &Node{Kind: Bool, Flag: b} }
func NewString(s string) *Node { return &Node{Kind: String, Text: s} }
func NewNumber(lit string) *Node { return &Node{Kind: Number, Text: lit} }
func NewUint(v uint64) *Node { return NewNumber(strconv.FormatUint(v, 10)) }
func NewFloat(f float64) *Node { return NewNumber(strconv.FormatFloat(f, 'f', -1, 64)) }
func NewArray(in ...*Node) *Node { return &Node{Kind: Array, Items: in} }
func NewObject(in ...Member) *Node { return &Node{Kind: Object, Members: in} }

// Get returns the value of an object member.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Clone deep copies the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Text: n.Text, Flag: n.Flag}
	if n.Items != nil {
		out.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			out.Items[i] = item.Clone()
		}
	}
	if n.Members != nil {
		out.Members = make([]Member, len(n.Members))
		for i, m := range n.Members {
			out.Members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	return out
}

// String is the textual form used when the node is spliced into a larger string.
func (n *Node) String() string {
	switch n.Kind {
	case String, Number:
		return n.Text
	case Bool:
		return strconv.FormatBool(n.Flag)
	case Null:
		return ""
	default:
		return string(Encode(n))
	}
}

// Parse decodes a single JSON document into a Node tree.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after document")
	}
	return root, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case string:
		return NewString(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := &Node{Kind: Object, Members: []Member{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Members = append(obj.Members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &Node{Kind: Array, Items: []*Node{}}
			for dec.More() {
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, val)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, err
			}
			return arr, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Encode writes the node as compact JSON. Output is deterministic for a given tree.
func Encode(n *Node) []byte {
	var b strings.Builder
	encode(&b, n)
	return []byte(b.String())
}

func encode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("null")
		return
	}
	switch n.Kind {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(n.Flag))
	case Number:
		b.WriteString(n.Text)
	case String:
		b.WriteByte('"')
		b.WriteString(Escape(n.Text))
		b.WriteByte('"')
	case Array:
		b.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			encode(b, item)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(Escape(m.Key))
			b.WriteString(`":`)
			encode(b, m.Value)
		}
		b.WriteByte('}')
	}
}

// Escape makes s safe to embed inside a JSON string literal.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
