// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sequence selects which input images appear in a session.

The selection is deterministic: a fixed-seed linear-congruential generator
drives a Fisher-Yates shuffle of the image groups, then picks one image per
selected group. Every rater, on every device, sees the same ten images in
the same order. This is a trust requirement of the study design, not a
performance concern.

	seq := sequence.Generate() // always the same ten image ids
*/
package sequence
