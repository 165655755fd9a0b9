package catalog

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func testCatalog(n int) *Catalog {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{Title: QuestionID(i), Answer: "A"}
	}
	return New([]string{"test.json"}, [][]Question{qs})
}

func TestShuffle_IsPermutation(t *testing.T) {
	c := testCatalog(20)
	before := make([]string, c.Len())
	for i, q := range c.Questions {
		before[i] = q.ID
	}

	perm := c.Shuffle(rand.New(rand.NewPCG(1, 2)))

	after := make([]string, c.Len())
	for i, q := range c.Questions {
		after[i] = q.ID
	}
	for old, now := range perm {
		if after[now] != before[old] {
			t.Errorf("perm[%d] = %d, but question there is %s, want %s", old, now, after[now], before[old])
		}
	}

	sort.Strings(before)
	sort.Strings(after)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("shuffle changed the id multiset: %v vs %v", before, after)
		}
	}
}

func TestShuffle_Empty(t *testing.T) {
	c := &Catalog{}
	if perm := c.Shuffle(rand.New(rand.NewPCG(1, 1))); len(perm) != 0 {
		t.Errorf("Shuffle on empty catalog returned %v", perm)
	}
}

func TestIndexOf(t *testing.T) {
	c := testCatalog(3)
	if got := c.IndexOf("q_2"); got != 1 {
		t.Errorf("IndexOf(q_2) = %d, want 1", got)
	}
	if got := c.IndexOf("q_9"); got != -1 {
		t.Errorf("IndexOf(q_9) = %d, want -1", got)
	}
	var nilCat *Catalog
	if got := nilCat.IndexOf("q_1"); got != -1 {
		t.Errorf("nil IndexOf = %d, want -1", got)
	}
}

func TestSameSets(t *testing.T) {
	c := testCatalog(1)
	if !c.SameSets([]string{"test.json"}) {
		t.Error("SameSets should match its own set list")
	}
	if c.SameSets([]string{"other.json"}) {
		t.Error("SameSets should not match a different list")
	}
	var empty *Catalog
	if !empty.SameSets(nil) {
		t.Error("empty catalog should match an empty list")
	}
}
