// Command migrate applies, rolls back or reports the database schema.
//
//	migrate            # apply pending migrations
//	migrate -down      # revert the last migration
//	migrate -version   # print the current version
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/bootstrap"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/config"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pgstore"
)

func main() {
	down := flag.Bool("down", false, "revert the most recent migration")
	version := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	if err := run(*down, *version); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(down, version bool) error {
	var (
		appCfg bootstrap.AppConfig
		pgCfg  pg.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&pgCfg); err != nil {
		return err
	}
	log := bootstrap.NewLogger(appCfg, "migrate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.Connect(ctx, pgCfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch {
	case version:
		v, err := pg.Version(ctx, pool, pgCfg, pgstore.Migrations, log)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	case down:
		err = pg.Rollback(ctx, pool, pgCfg, pgstore.Migrations, log)
	default:
		err = pg.Migrate(ctx, pool, pgCfg, pgstore.Migrations, log)
	}
	if err != nil {
		return err
	}

	v, err := pg.Version(ctx, pool, pgCfg, pgstore.Migrations, log)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "schema is up to date", slog.Int64("version", v))
	return nil
}
