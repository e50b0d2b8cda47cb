package vars

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotpatina/pkg/errors"
)

// Format is a document syntax understood by Parse.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks a format from the file extension. Unknown extensions are
// treated as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Parse decodes a document whose syntax is chosen from path's extension.
// JSON is handled by the YAML decoder.
func Parse(path string, data []byte) (*Value, error) {
	var (
		v   *Value
		err error
	)
	switch FormatFor(path) {
	case FormatYAML, FormatJSON:
		v, err = FromYAML(data)
	default:
		v, err = FromTOML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrParse, "cannot parse %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return v, nil
}

// FromTOML decodes a TOML document. TOML tables carry no key order once
// decoded, so object keys come out sorted.
func FromTOML(data []byte) (*Value, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return FromInterface(doc)
}

// FromYAML decodes a YAML (or JSON) document keeping mapping order.
// An empty document yields an empty object.
func FromYAML(data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 {
		return NewObject(), nil
	}
	return fromNode(&node)
}

func fromNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewObject(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, c := range n.Content {
			item, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, item)
		}
		return arr, nil
	case yaml.ScalarNode:
		var raw interface{}
		if err := n.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return FromInterface(raw)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

// FromInterface converts decoded Go values into a tree. Map keys are sorted
// since Go maps have no order.
func FromInterface(in interface{}) (*Value, error) {
	switch x := in.(type) {
	case nil:
		return NewNull(), nil
	case *Value:
		return x, nil
	case string:
		return NewString(x), nil
	case bool:
		return NewBool(x), nil
	case int:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case int32:
		return NewInt(int64(x)), nil
	case uint64:
		return NewInt(int64(x)), nil
	case float64:
		return NewFloat(x), nil
	case float32:
		return NewFloat(float64(x)), nil
	case time.Time:
		return NewString(x.Format(time.RFC3339)), nil
	case fmt.Stringer:
		return NewString(x.String()), nil
	case map[string]interface{}:
		obj := NewObject()
		for _, k := range sortedKeys(x) {
			val, err := FromInterface(x[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, val)
		}
		return obj, nil
	case []interface{}:
		arr := NewArray()
		for _, item := range x {
			val, err := FromInterface(item)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, val)
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", reflect.TypeOf(in))
}
