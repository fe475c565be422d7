package structs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags which member of an InputValue is set.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueText
	ValueOption
	ValueNumber
	ValueBool
	ValueList
)

// Option is a selectable {key, value} pair. Key is the human label, Value the protocol literal.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// InputValue is a user supplied value that arrives either as a bare scalar, a {key, value}
// option or a list of either.
type InputValue struct {
	kind   ValueKind
	text   string
	option Option
	number float64
	raw    string // numeric literal as received, keeps precision beyond float64
	flag   bool
	list   []InputValue
}

func Text(s string) InputValue    { return InputValue{kind: ValueText, text: s} }
func Number(f float64) InputValue { return InputValue{kind: ValueNumber, number: f} }
func Bool(b bool) InputValue      { return InputValue{kind: ValueBool, flag: b} }
func Choice(key, value string) InputValue {
	return InputValue{kind: ValueOption, option: Option{Key: key, Value: value}}
}
func List(in ...InputValue) InputValue { return InputValue{kind: ValueList, list: in} }

// Uint is an exact integer value, eg. a resolved seed beyond float64 precision.
func Uint(u uint64) InputValue {
	return InputValue{kind: ValueNumber, number: float64(u), raw: strconv.FormatUint(u, 10)}
}

func (v InputValue) Kind() ValueKind { return v.kind }

// IsEmpty is true for missing / null values and blank text.
func (v InputValue) IsEmpty() bool {
	switch v.kind {
	case ValueEmpty:
		return true
	case ValueText:
		return strings.TrimSpace(v.text) == ""
	case ValueOption:
		return v.option.Value == "" && v.option.Key == ""
	case ValueList:
		return len(v.list) == 0
	default:
		return false
	}
}

// Literal extracts the protocol level value as a string.
//
// Options yield their value (falling back to the key), lists yield their first element.
func (v InputValue) Literal() string {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueOption:
		if v.option.Value != "" {
			return v.option.Value
		}
		return v.option.Key
	case ValueNumber:
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.flag)
	case ValueList:
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0].Literal()
	default:
		return ""
	}
}

// Label is the human readable side of an option; for other kinds it is the literal.
func (v InputValue) Label() string {
	if v.kind == ValueOption && v.option.Key != "" {
		return v.option.Key
	}
	return v.Literal()
}

// Items returns list members, or the value itself as a single item.
func (v InputValue) Items() []InputValue {
	switch v.kind {
	case ValueEmpty:
		return nil
	case ValueList:
		return v.list
	default:
		return []InputValue{v}
	}
}

// Float returns the numeric interpretation of the value.
func (v InputValue) Float() (float64, bool) {
	switch v.kind {
	case ValueNumber:
		return v.number, true
	case ValueBool:
		if v.flag {
			return 1, true
		}
		return 0, true
	case ValueEmpty:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Literal()), 64)
	return f, err == nil
}

// Truthy returns the boolean interpretation of the value.
func (v InputValue) Truthy() bool {
	switch v.kind {
	case ValueBool:
		return v.flag
	case ValueNumber:
		return v.number != 0
	case ValueEmpty:
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v.Literal())) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

func (v InputValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueText:
		return json.Marshal(v.text)
	case ValueOption:
		return json.Marshal(v.option)
	case ValueNumber:
		if v.raw != "" {
			return []byte(v.raw), nil
		}
		return json.Marshal(v.number)
	case ValueBool:
		return json.Marshal(v.flag)
	case ValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *InputValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = InputValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '{':
		// accept loosely typed option values, eg. {"key": "Large", "value": 1024}
		var raw map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		*v = Choice(scalarString(raw["key"]), scalarString(raw["value"]))
	case '[':
		var items []InputValue
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = List(items...)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported input value %s: %w", string(data), err)
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("unsupported input value %s: %w", string(data), err)
		}
		*v = InputValue{kind: ValueNumber, number: f, raw: n.String()}
	}
	return nil
}

func scalarString(in interface{}) string {
	switch t := in.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
