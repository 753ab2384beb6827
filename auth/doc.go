// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates rater identifiers and checks the admin password.

There is deliberately no account system: raters are identified by an
opaque generated id that lives in their session, and the admin surface is
guarded by a single shared password compared in constant time.
*/
package auth
