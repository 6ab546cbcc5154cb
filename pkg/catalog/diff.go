package catalog

import (
	"fmt"
	"sort"
)

// Absent is the sentinel reported in a FieldDiff when a key exists on only
// one side of the comparison.
var Absent = absentValue{}

type absentValue struct{}

func (absentValue) String() string { return "(absent)" }

// FieldDiff records one differing field between two definitions. Left is the
// reference side, Right the compared side. Path uses dotted notation for
// object keys and [i] indexing for array elements.
type FieldDiff struct {
	Path  string
	Left  any
	Right any
}

// SourceDiff is the set of field diffs of one source's definition relative to
// the reference definition.
type SourceDiff struct {
	Source SourceID
	Fields []FieldDiff
}

// Divergence is the result of comparing every definition of a server name.
// When Identical is false, Reference holds the first pair and Diffs holds one
// entry per remaining pair that differs from it.
type Divergence struct {
	Identical bool
	Reference Pair
	Diffs     []SourceDiff
}

// Analyze compares all definitions of a catalog entry against the first one.
// Object keys compare order-independently, arrays order-sensitively. Total and
// side effect free.
func Analyze(pairs []Pair) Divergence {
	if len(pairs) == 0 {
		return Divergence{Identical: true}
	}

	result := Divergence{Identical: true, Reference: pairs[0]}
	reference := map[string]any(pairs[0].Definition)

	for _, pair := range pairs[1:] {
		var fields []FieldDiff
		diffValues("", reference, map[string]any(pair.Definition), &fields)
		if len(fields) > 0 {
			result.Identical = false
			result.Diffs = append(result.Diffs, SourceDiff{Source: pair.Source, Fields: fields})
		}
	}

	return result
}

// DeepEqual reports structural equality of two JSON-typed values.
func DeepEqual(a, b any) bool {
	var fields []FieldDiff
	diffValues("", a, b, &fields)
	return len(fields) == 0
}

func diffValues(path string, left, right any, out *[]FieldDiff) {
	switch l := left.(type) {
	case map[string]any:
		r, ok := right.(map[string]any)
		if !ok {
			*out = append(*out, FieldDiff{Path: path, Left: left, Right: right})
			return
		}
		diffObjects(path, l, r, out)
	case []any:
		r, ok := right.([]any)
		if !ok {
			*out = append(*out, FieldDiff{Path: path, Left: left, Right: right})
			return
		}
		diffArrays(path, l, r, out)
	default:
		if left != right {
			*out = append(*out, FieldDiff{Path: path, Left: left, Right: right})
		}
	}
}

func diffObjects(path string, left, right map[string]any, out *[]FieldDiff) {
	keys := make(map[string]struct{}, len(left)+len(right))
	for k := range left {
		keys[k] = struct{}{}
	}
	for k := range right {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		childPath := k
		if path != "" {
			childPath = path + "." + k
		}
		lv, lok := left[k]
		rv, rok := right[k]
		switch {
		case lok && !rok:
			*out = append(*out, FieldDiff{Path: childPath, Left: lv, Right: Absent})
		case !lok && rok:
			*out = append(*out, FieldDiff{Path: childPath, Left: Absent, Right: rv})
		default:
			diffValues(childPath, lv, rv, out)
		}
	}
}

func diffArrays(path string, left, right []any, out *[]FieldDiff) {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case i >= len(right):
			*out = append(*out, FieldDiff{Path: childPath, Left: left[i], Right: Absent})
		case i >= len(left):
			*out = append(*out, FieldDiff{Path: childPath, Left: Absent, Right: right[i]})
		default:
			diffValues(childPath, left[i], right[i], out)
		}
	}
}
