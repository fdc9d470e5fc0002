package reconcile

// Set is a membership index keyed by entity identifier.
type Set map[string]struct{}

// NewSet builds a Set from the given keys. Empty keys are ignored.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key into the set.
func (s Set) Add(key string) {
	if key == "" {
		return
	}
	s[key] = struct{}{}
}

// Has reports whether key is in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Summary counts the outcome of a reconciliation pass.
type Summary struct {
	Total    int `json:"total"`
	Found    int `json:"found"`
	NotFound int `json:"notFound"`
}

// NewSummary derives a summary from the catalog size and the number of observed entries.
func NewSummary(total, found int) Summary {
	return Summary{Total: total, Found: found, NotFound: total - found}
}

// Consistent reports whether the counters add up and none is negative.
func (s Summary) Consistent() bool {
	return s.Found >= 0 && s.NotFound >= 0 && s.Found+s.NotFound == s.Total
}
