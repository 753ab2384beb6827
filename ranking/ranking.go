// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

var (
	ErrUnknownLabel = errors.New("unknown item label")
	ErrIndexRange   = errors.New("index out of range")
	ErrRankRange    = errors.New("rank out of range")
)

// State is the single canonical ordering model behind all three input
// modalities: continuous drag reorder, tap-to-swap, and numeric rank
// buttons. Drag and swap act on Order directly; rank buttons build an
// explicit overlay in Ranks which, once every item holds a distinct rank,
// defines the submitted order instead.
//
// State is JSON-serializable so it can round-trip through the session
// store between requests.
type State struct {
	Order    []string          `json:"order"`              // displayed order, position 0 = best
	Shown    []string          `json:"shown"`              // order at initialization, never mutated
	Aliases  map[string]string `json:"aliases"`            // label -> display letter
	Ranks    map[string]int    `json:"ranks,omitempty"`    // label -> explicit rank, absent = unassigned
	Selected *int              `json:"selected,omitempty"` // pending tap-to-swap index
}

// New builds the state for one question. A prior ranking (previously
// submitted or session-restored) is adopted as-is with its rank overlay
// filled in. Without one the items are shuffled uniformly. Display aliases
// are sequential letters in the displayed order, so they encode neither
// rank nor model identity.
func New(items []string, prior []string) *State {
	s := &State{}

	if isPermutationOf(prior, items) {
		s.Order = append([]string(nil), prior...)
		s.Ranks = make(map[string]int, len(prior))
		for i, label := range prior {
			s.Ranks[label] = i + 1
		}
	} else {
		s.Order = append([]string(nil), items...)
		rand.Shuffle(len(s.Order), func(i, j int) {
			s.Order[i], s.Order[j] = s.Order[j], s.Order[i]
		})
	}

	s.Shown = append([]string(nil), s.Order...)

	s.Aliases = make(map[string]string, len(s.Order))
	for i, label := range s.Order {
		s.Aliases[label] = string(rune('A' + i))
	}

	return s
}

// MoveToPosition removes the item from its current index and reinserts it
// at target, shifting the items between by one. Moving an item onto its
// own index is a no-op. Positional gestures discard any partial rank
// overlay so the two views cannot diverge.
func (s *State) MoveToPosition(label string, target int) error {
	current := s.indexOf(label)
	if current < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	if target < 0 || target >= len(s.Order) {
		return fmt.Errorf("%w: %d", ErrIndexRange, target)
	}
	if target == current {
		return nil
	}

	s.Order = append(s.Order[:current], s.Order[current+1:]...)
	s.Order = append(s.Order[:target], append([]string{label}, s.Order[target:]...)...)
	s.Ranks = nil
	s.Selected = nil
	return nil
}

// Swap exchanges the items at the two indices. Swapping an index with
// itself cancels any pending selection without mutating the order.
func (s *State) Swap(a, b int) error {
	if a < 0 || a >= len(s.Order) || b < 0 || b >= len(s.Order) {
		return fmt.Errorf("%w: %d, %d", ErrIndexRange, a, b)
	}
	s.Selected = nil
	if a == b {
		return nil
	}

	s.Order[a], s.Order[b] = s.Order[b], s.Order[a]
	s.Ranks = nil
	return nil
}

// Tap implements tap-to-swap for constrained-input devices: the first tap
// selects an item, tapping it again deselects, tapping a different item
// swaps the two.
func (s *State) Tap(index int) error {
	if index < 0 || index >= len(s.Order) {
		return fmt.Errorf("%w: %d", ErrIndexRange, index)
	}

	if s.Selected == nil {
		i := index
		s.Selected = &i
		return nil
	}

	return s.Swap(*s.Selected, index)
}

// AssignRank gives the item an explicit rank in [1, len]. If another item
// already holds that rank it is unassigned first, so at most one item holds
// any rank value at all times. This is an invariant of the state, not a UI
// convenience.
func (s *State) AssignRank(label string, rank int) error {
	if s.indexOf(label) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	if rank < 1 || rank > len(s.Order) {
		return fmt.Errorf("%w: %d", ErrRankRange, rank)
	}

	if s.Ranks == nil {
		s.Ranks = make(map[string]int, len(s.Order))
	}
	for other, r := range s.Ranks {
		if r == rank && other != label {
			delete(s.Ranks, other)
		}
	}
	s.Ranks[label] = rank
	return nil
}

// Rank returns the item's explicit rank, or 0 when unassigned.
func (s *State) Rank(label string) int {
	return s.Ranks[label]
}

// IsComplete reports whether the state is submittable. The positional
// ordering is always a full permutation, so with no rank overlay in play
// the state is complete. Once any explicit rank is assigned, every item
// must hold a distinct rank in [1, len].
func (s *State) IsComplete() bool {
	if len(s.Ranks) == 0 {
		return len(s.Order) > 0
	}
	if len(s.Ranks) != len(s.Order) {
		return false
	}

	held := make(map[int]bool, len(s.Ranks))
	for _, r := range s.Ranks {
		if r < 1 || r > len(s.Order) || held[r] {
			return false
		}
		held[r] = true
	}
	return true
}

// OrderedLabels returns the canonical best-to-worst label sequence: sorted
// by explicit rank when the overlay is complete, positional order
// otherwise.
func (s *State) OrderedLabels() []string {
	if len(s.Ranks) == len(s.Order) && s.IsComplete() {
		out := append([]string(nil), s.Order...)
		sort.Slice(out, func(i, j int) bool {
			return s.Ranks[out[i]] < s.Ranks[out[j]]
		})
		return out
	}
	return append([]string(nil), s.Order...)
}

// ShownOrder returns the order the items were first displayed in.
func (s *State) ShownOrder() []string {
	return append([]string(nil), s.Shown...)
}

func (s *State) indexOf(label string) int {
	for i, l := range s.Order {
		if l == label {
			return i
		}
	}
	return -1
}

// isPermutationOf reports whether candidate contains exactly the same
// labels as items, each once.
func isPermutationOf(candidate, items []string) bool {
	if len(candidate) == 0 || len(candidate) != len(items) {
		return false
	}

	want := make(map[string]int, len(items))
	for _, l := range items {
		want[l]++
	}
	for _, l := range candidate {
		if want[l] == 0 {
			return false
		}
		want[l]--
	}
	return true
}
