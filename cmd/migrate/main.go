// Command migrate applies the SQL files under migrations/ to the bridge's
// Postgres database and tracks them in schema_migrations.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"paybyrd-bridge/internal/config"
	"paybyrd-bridge/internal/db"
	"paybyrd-bridge/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const schemaMigrationsDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`

type migration struct {
	Version string
	Up      string
	Down    string
}

// loadMigrations reads every *.sql file in dir, ordered by file name.
func loadMigrations(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	migs := make([]migration, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		m := migration{
			Version: filepath.Base(file),
			Up:      extractMigrationPart(string(content), "Up"),
			Down:    extractMigrationPart(string(content), "Down"),
		}
		if strings.TrimSpace(m.Up) == "" {
			return nil, fmt.Errorf("migration %s has no Up section", m.Version)
		}
		migs = append(migs, m)
	}
	return migs, nil
}

func extractMigrationPart(content, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-- +migrate") {
			if inPart {
				break
			}
			inPart = trimmed == "-- +migrate "+section
			continue
		}
		if inPart {
			part.WriteString(line)
			part.WriteByte('\n')
		}
	}
	return part.String()
}

type migrator struct {
	db  *sql.DB
	out io.Writer
}

func (m *migrator) ensureTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, schemaMigrationsDDL); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}
	return nil
}

// applied returns the recorded versions, newest first.
func (m *migrator) applied(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (m *migrator) Up(ctx context.Context, migs []migration) error {
	log := logger.L()

	done, err := m.applied(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(done))
	for _, v := range done {
		seen[v] = true
	}

	count := 0
	for _, mig := range migs {
		if seen[mig.Version] {
			continue
		}
		log.Info("applying migration", zap.String("version", mig.Version))
		if err := m.inTx(ctx, mig.Up, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			return fmt.Errorf("migration failed (%s): %w", mig.Version, err)
		}
		count++
	}

	log.Info("migrations complete", zap.Int("applied", count))
	return nil
}

// Down rolls back the most recent steps migrations.
func (m *migrator) Down(ctx context.Context, migs []migration, steps int) error {
	log := logger.L()

	done, err := m.applied(ctx)
	if err != nil {
		return err
	}
	if len(done) == 0 {
		log.Warn("no migrations to roll back")
		return nil
	}
	if steps < len(done) {
		done = done[:steps]
	}

	byVersion := make(map[string]migration, len(migs))
	for _, mig := range migs {
		byVersion[mig.Version] = mig
	}

	for _, version := range done {
		mig, ok := byVersion[version]
		if !ok {
			return fmt.Errorf("migration file not found for version: %s", version)
		}
		log.Info("rolling back migration", zap.String("version", version))
		if err := m.inTx(ctx, mig.Down, `DELETE FROM schema_migrations WHERE version = $1`, version); err != nil {
			return fmt.Errorf("rollback failed (%s): %w", version, err)
		}
	}
	return nil
}

func (m *migrator) Status(ctx context.Context, migs []migration) error {
	done, err := m.applied(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(done))
	for _, v := range done {
		seen[v] = true
	}

	for _, mig := range migs {
		state := "pending"
		if seen[mig.Version] {
			state = "applied"
		}
		fmt.Fprintf(m.out, "%-8s %s\n", state, mig.Version)
	}
	return nil
}

// inTx runs a migration body and its bookkeeping statement atomically.
func (m *migrator) inTx(ctx context.Context, body, record, version string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if strings.TrimSpace(body) != "" {
		if _, err := tx.ExecContext(ctx, body); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, record, version); err != nil {
		return fmt.Errorf("failed to record migration version: %w", err)
	}
	return tx.Commit()
}

type openDBFunc func() (*sql.DB, error)

func newRootCmd(open openDBFunc, out io.Writer) *cobra.Command {
	var dir string

	// withMigrator loads the files and the connection shared by every
	// subcommand, then hands both to fn.
	withMigrator := func(fn func(ctx context.Context, m *migrator, migs []migration) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			migs, err := loadMigrations(dir)
			if err != nil {
				return err
			}
			database, err := open()
			if err != nil {
				return fmt.Errorf("failed to connect db: %w", err)
			}
			defer database.Close()

			m := &migrator{db: database, out: out}
			if err := m.ensureTable(cmd.Context()); err != nil {
				return err
			}
			return fn(cmd.Context(), m, migs)
		}
	}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the bridge's database migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "./migrations", "directory holding the *.sql migrations")

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(ctx context.Context, m *migrator, migs []migration) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return m.Down(ctx, migs, steps)
		}),
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *migrator, migs []migration) error {
				return m.Up(ctx, migs)
			}),
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *migrator, migs []migration) error {
				return m.Status(ctx, migs)
			}),
		},
	)
	return root
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	open := func() (*sql.DB, error) { return db.NewDatabase(cfg) }
	if err := newRootCmd(open, os.Stdout).ExecuteContext(context.Background()); err != nil {
		logger.L().Error("migrate failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
