package main

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seoeunjin/api/migrations/postgres"
)

// migrate applies the embedded SQL migrations in ascending filename order.
// Statements are idempotent (CREATE ... IF NOT EXISTS) so re-running is safe.
func migrate(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("migrate: connect: %w", err)
	}
	defer pool.Close()

	var files []string
	if err := fs.WalkDir(postgres.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("migrate: list: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		b, err := postgres.FS.ReadFile(f)
		if err != nil {
			return fmt.Errorf("migrate: read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("migrate: exec %s: %w", f, err)
		}
		fmt.Printf("applied %s\n", f)
	}
	return nil
}
