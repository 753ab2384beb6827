// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session provides session-scoped key/value persistence.

Store is a minimal interface modeled on browser session storage; the
in-memory implementation backs live sessions and doubles as the test
substitute. Manager keys one Store per opaque session token. No state is
shared between sessions.

On top of the raw store sit the record helpers: SaveIdentity and
SaveRanking snapshot the clinician and each answered question (both the
submitted order and the as-shown order, the latter write-once), LoadRecord
assembles the full SessionRecord, and SaveLiveState/LoadLiveState park the
in-progress ranking state between requests. Malformed stored JSON is
logged and treated as absence of prior data; it never crashes a request.
*/
package session
