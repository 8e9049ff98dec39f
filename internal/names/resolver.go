package names

// Resolver maps provider-specific name variants onto the canonical key space, per sport.
type Resolver struct {
	tables map[string]map[string]string
}

// NewResolver builds a resolver from per-sport alias tables of variant -> canonical name.
// Both sides are normalized up front, so tables may be written in display form.
func NewResolver(tables map[string]map[string]string) *Resolver {
	r := &Resolver{tables: make(map[string]map[string]string, len(tables))}
	for sport, aliases := range tables {
		t := make(map[string]string, len(aliases))
		for variant, target := range aliases {
			t[Normalize(variant)] = Normalize(target)
		}
		r.tables[sport] = t
	}
	return r
}

// Resolve returns the canonical key for name within sportKey. Unknown sports and
// unregistered names fall through to Normalize(name).
func (r *Resolver) Resolve(sportKey, name string) string {
	key := Normalize(name)
	if r == nil {
		return key
	}
	if target, ok := r.tables[sportKey][key]; ok {
		return target
	}
	return key
}

// Same reports whether a and b resolve to the same canonical key within sportKey.
func (r *Resolver) Same(sportKey, a, b string) bool {
	return r.Resolve(sportKey, a) == r.Resolve(sportKey, b)
}
