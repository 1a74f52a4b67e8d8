package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/uptrace/bun"
)

//go:embed migrations/equipment/*.sql migrations/project/*.sql
var embeddedMigrations embed.FS

// ApplyMigrations ejecuta en orden léxico las migraciones embebidas del servicio (equipment | project).
// Las ya registradas en schema_migrations se omiten.
func ApplyMigrations(ctx context.Context, db *DB, service string) error {
	root := path.Join("migrations", service)
	entries, err := fs.ReadDir(embeddedMigrations, root)
	if err != nil {
		return fmt.Errorf("read migrations %s: %w", service, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".sql" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.W.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, name := range files {
		version := service + "/" + name
		sqlBytes, err := fs.ReadFile(embeddedMigrations, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", version, err)
		}
		err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
			var n int
			if err := tx.NewRaw(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(ctx, &n); err != nil {
				return err
			}
			if n > 0 {
				return nil
			}
			if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
	}
	return nil
}
