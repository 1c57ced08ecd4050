package style

import (
	"reflect"
	"testing"
)

func TestDirtySetInsert(t *testing.T) {
	var d DirtySet
	if !d.Empty() {
		t.Error("zero DirtySet should be empty")
	}

	d.Insert("color")
	d.Insert("width")
	d.Insert("color")

	if d.Empty() || d.All() {
		t.Error("explicit names should not be empty or all")
	}
	if !d.Contains("color") || d.Contains("opacity") {
		t.Error("membership wrong")
	}
	if got := d.List(); !reflect.DeepEqual(got, []string{"color", "width"}) {
		t.Errorf("List = %v", got)
	}
}

func TestDirtySetAll(t *testing.T) {
	d := AllDirty()
	if !d.All() || d.Empty() {
		t.Error("AllDirty should report all and non-empty")
	}
	if !d.Contains("anything") {
		t.Error("all-dirty should contain every name")
	}
	if len(d.List()) != 0 {
		t.Error("List should be empty under the sentinel")
	}

	// Inserts are absorbed by the sentinel.
	d.Insert("color")
	if len(d.List()) != 0 {
		t.Error("insert after all should be absorbed")
	}

	var e DirtySet
	e.Insert("color")
	e.InsertAll()
	if !e.All() || len(e.List()) != 0 {
		t.Error("InsertAll should drop explicit names")
	}
}

func TestDirtySetInsertSetAndClear(t *testing.T) {
	var d DirtySet
	names := make(NameSet)
	names.Add("a")
	names.Add("b")
	d.InsertSet(names)
	d.InsertList([]string{"c"})

	if got := d.List(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("List = %v", got)
	}

	d.Clear()
	if !d.Empty() {
		t.Error("Clear should empty the set")
	}
}

func TestNameSetSorted(t *testing.T) {
	s := make(NameSet)
	for _, n := range []string{"z", "a", "m"} {
		s.Add(n)
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []string{"a", "m", "z"}) {
		t.Errorf("Sorted = %v", got)
	}
}
