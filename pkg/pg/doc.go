// Package pg bootstraps PostgreSQL access on top of pgx/v5: a pool with
// startup retries, goose migrations read from an fs.FS, a readiness probe,
// a context-carried transaction helper and SQLSTATE classifiers.
//
//	var cfg pg.Config // populated by config.Load
//	pool, err := pg.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, pgstore.Migrations, log); err != nil {
//		return err
//	}
//
//	tx := pg.NewTransactor(pool)
//	err = tx.WithinTx(ctx, func(ctx context.Context) error {
//		_, err := tx.Conn(ctx).Exec(ctx, "UPDATE ...")
//		return err
//	})
//
// Repositories call Conn(ctx) for every query so they run inside the
// caller's transaction when there is one.
package pg
