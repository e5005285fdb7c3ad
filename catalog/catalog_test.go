package catalog

import (
	"reflect"
	"testing"
)

func TestSet_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	s := New()
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("a", "3")

	if got, want := s.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if got, _ := s.Get("a"); got != "3" {
		t.Errorf("a = %q, want %q", got, "3")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSet_ValuesFollowKeyOrder(t *testing.T) {
	s := FromEntries(Entry{"z", "last"}, Entry{"a", "first"})
	if got, want := s.Values(), []string{"last", "first"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
}

func TestGet_Missing(t *testing.T) {
	s := New()
	if _, ok := s.Get("nope"); ok {
		t.Error("expected missing key")
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := FromEntries(Entry{"k", "v"})
	entries := s.Entries()
	entries[0].Value = "changed"
	if got, _ := s.Get("k"); got != "v" {
		t.Errorf("set mutated through Entries(): k = %q", got)
	}
}

func TestEqual(t *testing.T) {
	a := FromEntries(Entry{"a", "1"}, Entry{"b", "2"})
	b := FromEntries(Entry{"a", "1"}, Entry{"b", "2"})
	c := FromEntries(Entry{"b", "2"}, Entry{"a", "1"})

	if !a.Equal(b) {
		t.Error("identical sets should be equal")
	}
	if a.Equal(c) {
		t.Error("order must matter for Equal")
	}
}
