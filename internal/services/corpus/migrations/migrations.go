// Package migrations embeds the corpus schema and applies it with
// golang-migrate over the pgx v5 driver
package migrations

import (
	"embed"
	"errors"
	"strings"

	"rapih/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// FS holds the numbered up and down files
//
//go:embed *.sql
var FS embed.FS

// Up applies every pending migration against the Postgres url. Nothing to
// apply is not an error.
func Up(url string) error {
	m, err := open(url)
	if err != nil {
		return err
	}
	defer closeQuiet(m)

	log := logger.Named("migrate")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("schema up to date")
			return nil
		}
		return err
	}
	v, dirty, _ := m.Version()
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema migrated")
	return nil
}

// Down rolls every migration back. It exists for tests and local resets.
func Down(url string) error {
	m, err := open(url)
	if err != nil {
		return err
	}
	defer closeQuiet(m)
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func open(url string) (*migrate.Migrate, error) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, DriverURL(url))
}

// DriverURL rewrites a postgres:// or postgresql:// url to the pgx5 scheme
func DriverURL(url string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(url, p); ok {
			return "pgx5://" + rest
		}
	}
	return url
}

func closeQuiet(m *migrate.Migrate) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.Named("migrate").Warn().AnErr("source", srcErr).AnErr("db", dbErr).Msg("close migrator")
	}
}
