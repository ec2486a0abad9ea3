package game

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"
	"golang.org/x/text/cases"
)

const (
	// AttrType is the category tag checked against equipment allow-lists.
	AttrType = "type"
	// AttrArmorRating is summed across equipped items.
	AttrArmorRating = "armor_rating"
)

// Attributes is the open bag of per-template data carried by an item.
type Attributes map[string]any

type attrKind int

const (
	attrAny attrKind = iota
	attrNumber
)

// attributeSchema lists the attributes each category must carry.
var attributeSchema = map[string]map[string]attrKind{
	"weapon": {
		"condition": attrNumber,
		"ammo":      attrAny,
		"accuracy":  attrNumber,
	},
	"armor": {
		"protection": attrNumber,
		"durability": attrNumber,
	},
	"medical": {
		"healing": attrNumber,
	},
}

// foldCategory normalises a category tag for comparison. A Caser is not safe
// for concurrent use, so one is built per call.
func foldCategory(s string) string {
	return cases.Fold().String(s)
}

// String returns the attribute at key if it is a string.
func (a Attributes) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Number returns the attribute at key as a float64. Values decoded from JSON
// arrive as float64; other numeric types are accepted for values built in code.
func (a Attributes) Number(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Category returns the case-folded category tag, or "" if none is set.
func (a Attributes) Category() string {
	s, _ := a.String(AttrType)
	return foldCategory(s)
}

// Clone returns a deep copy of the attribute bag.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Attributes:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// Validate checks the attribute bag against the schema of its category.
// Categories without a schema accept any attributes.
func (a Attributes) Validate() error {
	el := errors.NewErrorList()

	if v, ok := a[AttrType]; ok {
		if _, isStr := v.(string); !isStr {
			el.Add(fmt.Errorf("attribute %q must be a string", AttrType))
		}
	}
	if _, ok := a[AttrArmorRating]; ok {
		if _, isNum := a.Number(AttrArmorRating); !isNum {
			el.Add(fmt.Errorf("attribute %q must be a number", AttrArmorRating))
		}
	}

	schema, ok := attributeSchema[a.Category()]
	if !ok {
		return el.Err()
	}

	for _, key := range slices.Sorted(maps.Keys(schema)) {
		if _, present := a[key]; !present {
			el.Add(fmt.Errorf("%s attribute %q is required", a.Category(), key))
			continue
		}
		if schema[key] == attrNumber {
			if _, isNum := a.Number(key); !isNum {
				el.Add(fmt.Errorf("%s attribute %q must be a number", a.Category(), key))
			}
		}
	}

	return el.Err()
}
