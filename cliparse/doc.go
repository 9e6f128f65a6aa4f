// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line flags and environment configuration.

# Server Flags

	-b, --bind             Address to bind to (default: 0.0.0.0)
	-p, --port             Server port (default: 3318)
	-t, --database-type    file, sqlite or postgres (default: file)
	-d, --database-url     Store path or connection string
	    --allowed-origins  CORS origins, comma separated (default: *)
	    --profile          Mount pprof handlers under /debug
	-v, --verbose          Debug logging

# Environment Variables

Every flag falls back to an environment variable named after it,
upper-cased with dashes replaced by underscores:

	PORT            → --port
	DATABASE_TYPE   → --database-type
	DATABASE_URL    → --database-url
	ALLOWED_ORIGINS → --allowed-origins

CLI flags take precedence over environment variables. LoadDotEnv reads an
optional .env file first; it never overrides variables that are already set.

# Validation

Validate rejects ports outside 1-65535 and unknown store types. When no
database URL is given the file store uses click-db.json and the sqlite
store click-db.sqlite. Postgres requires DATABASE_URL.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
*/
package cliparse
