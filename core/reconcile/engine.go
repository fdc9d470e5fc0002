package reconcile

import "sort"

// Partition splits the catalog into entries whose key was observed and entries
// whose key was not. Catalog order is preserved within both halves, so callers
// control report ordering through the order they load the catalog in.
func Partition[T any](catalog []T, key func(T) string, observed Set) (present, missing []T) {
	present = make([]T, 0, len(catalog))
	missing = make([]T, 0, len(catalog))
	for _, item := range catalog {
		if observed.Has(key(item)) {
			present = append(present, item)
		} else {
			missing = append(missing, item)
		}
	}
	return present, missing
}

// Orphans returns observed keys that have no catalog entry, sorted.
func Orphans[T any](catalog []T, key func(T) string, observed Set) []string {
	known := make(Set, len(catalog))
	for _, item := range catalog {
		known.Add(key(item))
	}

	var orphans []string
	for k := range observed {
		if !known.Has(k) {
			orphans = append(orphans, k)
		}
	}
	sort.Strings(orphans)
	return orphans
}
