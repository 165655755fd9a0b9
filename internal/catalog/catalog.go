// Package catalog loads question-set files into an ordered, id-stamped
// catalog of questions.
package catalog

import (
	"fmt"
	"math/rand/v2"
)

// Catalog is the ordered set of questions for one load generation.
type Catalog struct {
	// Questions in display order. Shuffle permutes it in place.
	Questions []Question

	// Sets lists the source names in the order they were merged.
	Sets []string

	// Generation is the loader generation that produced this catalog.
	Generation uint64
}

// New builds a catalog from per-source question slices, concatenated in
// order, assigning ids q_1..q_N by merged position.
func New(sets []string, perSet [][]Question) *Catalog {
	c := &Catalog{Sets: append([]string(nil), sets...)}
	for i, qs := range perSet {
		for _, q := range qs {
			if i < len(sets) {
				q.Set = sets[i]
			}
			c.Questions = append(c.Questions, q)
		}
	}
	for i := range c.Questions {
		c.Questions[i].ID = QuestionID(i)
	}
	return c
}

// QuestionID formats the id for merged position i (zero-based).
func QuestionID(i int) string {
	return fmt.Sprintf("q_%d", i+1)
}

// Len returns the number of questions. A nil catalog has none.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Questions)
}

// IndexOf returns the current position of the question with the given id,
// or -1.
func (c *Catalog) IndexOf(id string) int {
	if c == nil {
		return -1
	}
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// Shuffle permutes the questions in place with a Fisher-Yates pass. It
// returns perm where perm[old] = new position.
func (c *Catalog) Shuffle(r *rand.Rand) []int {
	n := c.Len()
	pos := make([]int, n) // pos[i] = original index now at i
	for i := range pos {
		pos[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		c.Questions[i], c.Questions[j] = c.Questions[j], c.Questions[i]
		pos[i], pos[j] = pos[j], pos[i]
	}
	perm := make([]int, n)
	for now, orig := range pos {
		perm[orig] = now
	}
	return perm
}

// SameSets reports whether the catalog was loaded from exactly the given
// source names, in order.
func (c *Catalog) SameSets(sets []string) bool {
	if c.Len() == 0 && len(sets) == 0 {
		return true
	}
	if c == nil || len(c.Sets) != len(sets) {
		return false
	}
	for i := range sets {
		if c.Sets[i] != sets[i] {
			return false
		}
	}
	return true
}
