// Package vars implements the variable tree shared by patinas, overlays and
// templates. Objects keep their keys in insertion order.
package vars

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	Null Kind = iota
	Object
	Array
	String
	Integer
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a node of a variable tree.
type Value struct {
	kind   Kind
	keys   []string
	fields map[string]*Value
	items  []*Value
	str    string
	num    int64
	flt    float64
	flag   bool
}

func NewNull() *Value { return &Value{kind: Null} }

func NewObject() *Value {
	return &Value{kind: Object, fields: make(map[string]*Value)}
}

func NewArray(items ...*Value) *Value { return &Value{kind: Array, items: items} }

func NewString(s string) *Value { return &Value{kind: String, str: s} }

func NewInt(i int64) *Value { return &Value{kind: Integer, num: i} }

func NewFloat(f float64) *Value { return &Value{kind: Float, flt: f} }

func NewBool(b bool) *Value { return &Value{kind: Bool, flag: b} }

// Kind reports the node type. A nil Value is Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

func (v *Value) IsObject() bool { return v.Kind() == Object }

// Keys returns object keys in insertion order.
func (v *Value) Keys() []string {
	if !v.IsObject() {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Get returns the field stored under key.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsObject() {
		return nil, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// Set stores a field, appending the key if it is new. Set panics when v is
// not an object.
func (v *Value) Set(key string, val *Value) *Value {
	if !v.IsObject() {
		panic("vars: Set on " + v.Kind().String())
	}
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
	return v
}

// Delete removes a field. Missing keys are ignored.
func (v *Value) Delete(key string) {
	if !v.IsObject() {
		return
	}
	if _, ok := v.fields[key]; !ok {
		return
	}
	delete(v.fields, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Len is the number of fields of an object or items of an array.
func (v *Value) Len() int {
	switch v.Kind() {
	case Object:
		return len(v.keys)
	case Array:
		return len(v.items)
	}
	return 0
}

func (v *Value) Items() []*Value {
	if v.Kind() != Array {
		return nil
	}
	return v.items
}

func (v *Value) Str() string    { return v.str }
func (v *Value) Int() int64     { return v.num }
func (v *Value) Float() float64 { return v.flt }
func (v *Value) Bool() bool     { return v.flag }

// Lookup walks a dotted path such as "name.first". Numeric segments index
// into arrays.
func (v *Value) Lookup(path string) (*Value, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch cur.Kind() {
		case Object:
			next, ok := cur.fields[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case Array:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.items) {
				return nil, false
			}
			cur = cur.items[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Interface converts the tree into plain Go values: map[string]interface{},
// []interface{}, string, int64, float64, bool and nil.
func (v *Value) Interface() interface{} {
	switch v.Kind() {
	case Object:
		m := make(map[string]interface{}, len(v.keys))
		for _, k := range v.keys {
			m[k] = v.fields[k].Interface()
		}
		return m
	case Array:
		s := make([]interface{}, len(v.items))
		for i, item := range v.items {
			s[i] = item.Interface()
		}
		return s
	case String:
		return v.str
	case Integer:
		return v.num
	case Float:
		return v.flt
	case Bool:
		return v.flag
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
