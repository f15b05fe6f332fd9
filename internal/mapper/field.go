package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// field represents a cached struct field.
type field struct {
	name      string
	idx       []int
	tagged    bool
	omitEmpty bool
}

// structFields is the cached view of a struct type.
type structFields struct {
	// list holds the visible fields in declaration order, embedded fields
	// promoted.
	list []field
	// exact indexes list by column name.
	exact map[string]int
	// folded indexes list by the lower-cased column names.
	folded map[string]int
}

// fieldCache caches a structFields value per struct type.
var fieldCache sync.Map // map[reflect.Type]*structFields

// cachedFields uses reflection to parse a struct's tags and build a cache
// of its fields. It skips unexported fields and fields tagged with "csv:-".
//
// Names promoted from embedded structs follow the Go visibility rules: the
// shallowest field wins, a tagged field wins over untagged ones at the same
// depth, and a name that is still ambiguous is dropped.
func cachedFields(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*structFields)
	}

	var all []field
	onPath := map[reflect.Type]bool{}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		onPath[t] = true
		defer delete(onPath, t)

		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			index := append(idx[:len(idx):len(idx)], i)
			if f.Anonymous && f.Tag.Get("csv") == "" {
				ft := f.Type
				if ft.Kind() == reflect.Pointer && f.IsExported() {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					if !onPath[ft] {
						walk(ft, index)
					}
					continue
				}
			}
			if !f.IsExported() {
				continue
			}

			tag := f.Tag.Get("csv")
			if tag == "-" {
				continue
			}

			fd := field{name: f.Name, idx: index}
			name, opts, _ := strings.Cut(tag, ",")
			if name != "" {
				fd.name = name
				fd.tagged = true
			}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if strings.TrimSpace(opt) == "omitempty" {
					fd.omitEmpty = true
				}
			}
			all = append(all, fd)
		}
	}
	walk(t, nil)

	sf := &structFields{exact: make(map[string]int), folded: make(map[string]int)}
	for i, fd := range all {
		if !dominant(all, i) {
			continue
		}
		pos := len(sf.list)
		sf.list = append(sf.list, fd)
		sf.exact[fd.name] = pos

		// The case-insensitive fallback goes to the shallowest field, then
		// to the first declared.
		lower := strings.ToLower(fd.name)
		if prev, ok := sf.folded[lower]; !ok || len(sf.list[prev].idx) > len(fd.idx) {
			sf.folded[lower] = pos
		}
	}

	fieldCache.Store(t, sf)
	return sf
}

// dominant reports whether all[i] is the field that owns its name.
func dominant(all []field, i int) bool {
	fd := all[i]
	for j, other := range all {
		if j == i || other.name != fd.name {
			continue
		}
		switch {
		case len(other.idx) < len(fd.idx):
			return false
		case len(other.idx) > len(fd.idx):
			continue
		case other.tagged && !fd.tagged:
			return false
		case other.tagged == fd.tagged:
			// Same depth and same tagging: ambiguous.
			return false
		}
	}
	return true
}

// find returns the field for name. It first attempts a case-sensitive
// match, then falls back to a case-insensitive match.
func (sf *structFields) find(name string) (field, bool) {
	if i, ok := sf.exact[name]; ok {
		return sf.list[i], true
	}
	if i, ok := sf.folded[strings.ToLower(name)]; ok {
		return sf.list[i], true
	}
	return field{}, false
}

// fieldByIndex returns the nested field of v at idx. Nil embedded pointers
// are allocated when alloc is set; otherwise an invalid Value is returned
// for them.
func fieldByIndex(v reflect.Value, idx []int, alloc bool) reflect.Value {
	for i, x := range idx {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
