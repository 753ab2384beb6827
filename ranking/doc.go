// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking manages the live ordering of candidates for one question.

Three input modalities converge on a single canonical state rather than
holding state per modality:

  - MoveToPosition: continuous drag reorder
  - Tap / Swap: discrete tap-to-swap for constrained-input devices
  - AssignRank: explicit numeric rank buttons

Drag and swap act on the positional order. Rank buttons build an explicit
overlay; assigning a rank that another item holds always unassigns that
item first, so no two items ever share a rank. IsComplete gates
submission: the positional order is always a full permutation, while the
rank overlay must cover every item with distinct ranks before it counts.

The state serializes to JSON so it can be parked in the session store
between requests and restored exactly, pending tap selection included.
*/
package ranking
