package vars

// Merge overlays src onto dst and returns the value now occupying dst's
// position. When both are objects dst is mutated in place: a Null field in
// src deletes the key from dst, an existing key is merged recursively, and a
// new key is appended. In every other case src replaces dst.
func Merge(dst, src *Value) *Value {
	if !dst.IsObject() || !src.IsObject() {
		return src
	}
	for _, key := range src.keys {
		val := src.fields[key]
		if val.Kind() == Null {
			dst.Delete(key)
			continue
		}
		if existing, ok := dst.fields[key]; ok {
			dst.fields[key] = Merge(existing, val)
			continue
		}
		dst.Set(key, val)
	}
	return dst
}
