// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

# Precedence

CLI flags take priority, then environment variables, then defaults:

	-p / PORT                     server port (default 3418)
	-d / DATABASE_URL             database connection string (required)
	-t / DATABASE_TYPE            sqlite or postgres (default sqlite)
	-admin-password / ADMIN_PASSWORD  admin surface password
	-dataset / DATASET            dataset name for export filenames

A missing database URL is a fatal configuration error surfaced at
startup; there is no runtime recovery for it.
*/
package cliparse
