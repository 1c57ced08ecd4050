package style

import "sort"

// NameSet is an unordered set of property names.
type NameSet map[string]struct{}

// Add inserts a name.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports membership.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in sorted order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DirtySet is a set of property names pending recomputation. The all-dirty
// sentinel supersedes explicit enumeration: once set, further inserts are
// absorbed. Membership only grows until the owning element's next
// ComputeValues call consumes and clears the set.
type DirtySet struct {
	all   bool
	names NameSet
}

// AllDirty returns a DirtySet with the sentinel set. New elements start in
// this state.
func AllDirty() DirtySet {
	return DirtySet{all: true}
}

// Insert marks one property name dirty.
func (d *DirtySet) Insert(name string) {
	if d.all {
		return
	}
	if d.names == nil {
		d.names = make(NameSet)
	}
	d.names.Add(name)
}

// InsertSet marks every name in the set dirty.
func (d *DirtySet) InsertSet(names NameSet) {
	if d.all {
		return
	}
	for name := range names {
		d.Insert(name)
	}
}

// InsertList marks every listed name dirty.
func (d *DirtySet) InsertList(names []string) {
	if d.all {
		return
	}
	for _, name := range names {
		d.Insert(name)
	}
}

// InsertAll sets the all-dirty sentinel and drops explicit names.
func (d *DirtySet) InsertAll() {
	d.all = true
	d.names = nil
}

// All reports whether the all-dirty sentinel is set.
func (d *DirtySet) All() bool {
	return d.all
}

// Empty reports whether nothing is dirty.
func (d *DirtySet) Empty() bool {
	return !d.all && len(d.names) == 0
}

// Contains reports whether the name is dirty, either explicitly or through
// the all-dirty sentinel.
func (d *DirtySet) Contains(name string) bool {
	return d.all || d.names.Contains(name)
}

// List returns the explicit dirty names in sorted order. It is empty when
// the all-dirty sentinel is set; check All first.
func (d *DirtySet) List() []string {
	return d.names.Sorted()
}

// Clear resets the set to empty.
func (d *DirtySet) Clear() {
	d.all = false
	d.names = nil
}
