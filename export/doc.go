// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders a session record as downloadable CSV.

The transformation is pure: SessionRecord in, rows out, no side effects.
One row per answered question in answer order, with the clinician identity
repeated on each row so the file is self-contained. This is the recovery
path when the remote store is unreachable — it always exports the complete
local record, regardless of what was or wasn't remotely persisted.
*/
package export
