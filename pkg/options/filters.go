package options

// FilterFunc transforms a default value. The returned value is only used
// when it has the type the caller expects; anything else falls back to the
// default silently.
type FilterFunc func(def any) any

// Filters is a named override registry, the pluggable extension point for
// beacon thresholds and candidate selectors. A nil *Filters is valid and
// applies no overrides.
type Filters struct {
	fns map[string][]FilterFunc
}

// NewFilters returns an empty registry.
func NewFilters() *Filters {
	return &Filters{fns: make(map[string][]FilterFunc)}
}

// Register appends fn to the chain for name. Chains run in registration
// order, each seeing the previous result.
func (f *Filters) Register(name string, fn FilterFunc) {
	f.fns[name] = append(f.fns[name], fn)
}

func (f *Filters) apply(name string, def any) any {
	if f == nil {
		return def
	}
	v := def
	for _, fn := range f.fns[name] {
		v = fn(v)
	}
	return v
}

// Int runs the chain for name and returns the result when it is an int,
// the default otherwise.
func (f *Filters) Int(name string, def int) int {
	if v, ok := f.apply(name, def).(int); ok {
		return v
	}
	return def
}

// Strings runs the chain for name and returns the result when it is a
// non-nil string slice, the default otherwise.
func (f *Filters) Strings(name string, def []string) []string {
	if v, ok := f.apply(name, def).([]string); ok && v != nil {
		return v
	}
	return def
}
