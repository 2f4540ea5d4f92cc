package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Execer is satisfied by *pgxpool.Pool and *pgx.Conn.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrate applies every embedded *.up.sql file not yet recorded in
// schema_migrations, in lexical order. It returns the applied versions.
func Migrate(ctx context.Context, db Execer) ([]string, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	upMigrations, err := upFiles(migrations)
	if err != nil {
		return nil, err
	}

	query := "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"

	var applied []string
	for _, migration := range upMigrations {
		var exists bool

		err := db.QueryRow(ctx, query, migration).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %w", migration, err)
		}

		if exists {
			continue
		}

		sqlBytes, err := migrations.ReadFile("migrations/" + migration)
		if err != nil {
			return applied, fmt.Errorf("failed to read sql file %s: %w", migration, err)
		}

		if _, err = db.Exec(ctx, string(sqlBytes)); err != nil {
			return applied, fmt.Errorf("failed to apply %s: %w", migration, err)
		}

		insertQuery := "INSERT INTO schema_migrations (version) VALUES ($1)"
		if _, err = db.Exec(ctx, insertQuery, migration); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", migration, err)
		}

		log.Printf("database: applied migration %s", migration)
		applied = append(applied, migration)
	}

	return applied, nil
}

func upFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
