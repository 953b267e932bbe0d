package model

import "strings"

// Primary descriptor attributes. These are always consulted first when
// building search strings and cache keys.
const (
	AttrCategory = "Category"
	AttrFamily   = "Family"
	AttrType     = "Type"
)

// SecondaryAttrs lists the additional attribute names considered when
// building a search string, in order.
var SecondaryAttrs = []string{
	"Description", "Material", "Model", "Manufacturer", "Mark", "Type Mark",
}

// Descriptor maps attribute names to free-text values describing the
// entity to classify. Values are expected to be trimmed and non-empty;
// Normalize enforces that.
type Descriptor map[string]string

// Normalize returns a copy with blank keys and values removed and
// remaining values trimmed. A nil or all-blank descriptor yields an empty
// map.
func (d Descriptor) Normalize() Descriptor {
	out := make(Descriptor, len(d))
	for k, v := range d {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// CacheKey builds the result-cache key from the Category and Type
// attributes only. Returns "" when neither is present; such descriptors
// are never cached.
func (d Descriptor) CacheKey() string {
	var parts []string
	if v, ok := d[AttrCategory]; ok && v != "" {
		parts = append(parts, v)
	}
	if v, ok := d[AttrType]; ok && v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, "|")
}
