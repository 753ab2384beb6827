// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pipeline persists completed rankings and degrades gracefully when
the remote store is unavailable.

Per question, SubmitQuestion snapshots the completed ranking into the
session store, so it survives navigation and reload. At end of session,
Finalize writes the clinician identity (duplicate key = benign), then the
ranking rows one at a time in answer order. The sequential loop is
deliberate: a failure produces a deterministic cut point rather than an
unordered scatter. On failure the remaining writes are abandoned, the
remote-failure flag is set, and the local record is preserved in full —
the CSV export path always covers every answered question, whatever subset
the remote store ended up with. Ranking writes are upserts keyed on
(clinician_id, image_id), so retrying a failed submission never duplicates
rows.

The remote store is an injected store.Inserter, so tests drive the
pipeline with a fake that fails on a chosen call.
*/
package pipeline
