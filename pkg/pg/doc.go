// Package pg bootstraps the Postgres layer on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool with retry and backoff, Migrate applies the
// embedded goose migrations, and Healthcheck exposes a readiness probe:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// The Is* helpers classify driver errors by SQLSTATE so stores can map them
// to domain errors without importing pgconn themselves.
package pg
