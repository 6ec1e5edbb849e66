package charset

import "testing"

func TestUnionMergesAdjacentRanges(t *testing.T) {
	a := New('a', 'm')
	b := New('n', 'z')
	u := Union(a, b)
	if len(u.Ranges()) != 1 || u.Ranges()[0] != (Range{'a', 'z'}) {
		t.Fatalf("expected one merged range a-z, got %v", u.Ranges())
	}
}

func TestIntersectOverlap(t *testing.T) {
	a := New('a', 'm')
	b := New('g', 'z')
	i := Intersect(a, b)
	if len(i.Ranges()) != 1 || i.Ranges()[0] != (Range{'g', 'm'}) {
		t.Fatalf("expected g-m, got %v", i.Ranges())
	}
}

func TestComplementOfFullIsEmpty(t *testing.T) {
	if !Complement(Full()).IsEmpty() {
		t.Fatalf("complement of full set should be empty")
	}
}

func TestComplementOfEmptyIsFull(t *testing.T) {
	c := Complement(Empty())
	if !Equal(c, Full()) {
		t.Fatalf("complement of empty set should be full, got %v", c.Ranges())
	}
}

func TestSubtract(t *testing.T) {
	vowels := FromRanges([]Range{{'a', 'a'}, {'e', 'e'}, {'i', 'i'}, {'o', 'o'}, {'u', 'u'}})
	az := New('a', 'z')
	consonants := Subtract(az, vowels)
	if consonants.Contains('a') || !consonants.Contains('b') {
		t.Fatalf("consonants should exclude vowels, got %v", consonants.Ranges())
	}
}

func TestContains(t *testing.T) {
	cs := FromRanges([]Range{{'0', '9'}, {'a', 'f'}})
	for _, b := range []byte{'0', '5', '9', 'a', 'f'} {
		if !cs.Contains(b) {
			t.Errorf("expected %q to be contained", b)
		}
	}
	for _, b := range []byte{'/', ':', 'g', 'Z'} {
		if cs.Contains(b) {
			t.Errorf("expected %q to be excluded", b)
		}
	}
}

func TestClassesBuilderSeparatesRanges(t *testing.T) {
	b := NewClassesBuilder()
	b.Add(New('a', 'z'))
	classes := b.Build()
	if classes.Get('a') == classes.Get('A') {
		t.Fatalf("expected 'a' and 'A' in different classes")
	}
	if classes.Get('a') != classes.Get('m') {
		t.Fatalf("expected every byte inside a-z to share a class")
	}
	if classes.Len() < 2 {
		t.Fatalf("expected at least 2 classes, got %d", classes.Len())
	}
}

func TestClassesBuilderEmptyIsSingleClass(t *testing.T) {
	b := NewClassesBuilder()
	classes := b.Build()
	if classes.Len() != 1 {
		t.Fatalf("expected a single class with no registered ranges, got %d", classes.Len())
	}
}
