// Package db provides PostgreSQL plumbing on top of [github.com/jackc/pgx/v5/pgxpool].
//
// # Connecting
//
// [Connect] parses a [Config], opens a pool, pings it and retries with a
// linear backoff when the database is not reachable yet:
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// # Migrations
//
// [Migrate] runs goose ([github.com/pressly/goose/v3]) against an fs.FS whose
// root contains the SQL files:
//
//	//go:embed migrations/*.sql
//	var files embed.FS
//
//	sub, _ := fs.Sub(files, "migrations")
//	err := db.Migrate(ctx, pool, sub, "schema_migrations", log)
//
// # Errors
//
// [IsUniqueViolation] and [IsConnectionError] classify driver errors so that
// repositories can translate them into their own sentinel errors without
// importing pgconn.
//
// Sentinel errors are joined with the driver error using [errors.Join]:
//
//   - [ErrFailedToParseDBConfig] - invalid connection string
//   - [ErrFailedToOpenDBConnection] - no connection after all retries
//   - [ErrHealthcheckFailed] - ping failed
//   - [ErrSetDialect], [ErrApplyMigrations] - goose failures
package db
