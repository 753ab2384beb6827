// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sequence

import (
	"reflect"
	"testing"
)

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate()
	second := Generate()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical sequences across invocations, got %v and %v", first, second)
	}
}

func TestGeneratePinnedSequence(t *testing.T) {
	// Regression fixture recorded from a reference run with seed 42.
	expected := []int{92, 52, 27, 129, 32, 15, 44, 115, 167, 1}

	got := Generate()
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected sequence %v, got %v", expected, got)
	}
}

func TestGenerateProperties(t *testing.T) {
	seq := Generate()

	if len(seq) != SelectCount {
		t.Fatalf("Expected %d elements, got %d", SelectCount, len(seq))
	}

	seen := make(map[int]bool)
	for _, id := range seq {
		if id < 1 || id > GroupCount*ItemsPerGroup {
			t.Errorf("Image id %d out of range [1, %d]", id, GroupCount*ItemsPerGroup)
		}
		if seen[id] {
			t.Errorf("Duplicate image id %d", id)
		}
		seen[id] = true
	}
}

func TestGenerateOneImagePerGroup(t *testing.T) {
	seq := Generate()

	groups := make(map[int]bool)
	for _, id := range seq {
		group := (id - 1) / ItemsPerGroup
		if groups[group] {
			t.Errorf("Group %d contributed more than one image", group)
		}
		groups[group] = true
	}
}
