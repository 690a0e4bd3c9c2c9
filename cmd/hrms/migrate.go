package main

import (
	"errors"
	"fmt"
	"strings"

	"axiapac.com/hrms/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Apply the embedded schema migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) > 0 {
				action = args[0]
			}
			if a.cfg.Database.DSN == "" {
				return errors.New("database.dsn is required")
			}
			return a.runMigration(action, a.cfg.Database.DSN)
		},
	}
}

func (a *app) runMigration(action, dsn string) error {
	src, err := migrations.Source()
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+migrationDSN(dsn))
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			a.log.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		a.log.WithField("version", version).WithField("dirty", dirty).Info("schema version")
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}

	a.log.WithField("action", action).Info("migration completed")
	return nil
}

// migrationDSN enables multi statement execution, which the schema files need.
func migrationDSN(dsn string) string {
	if strings.Contains(dsn, "multiStatements=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "multiStatements=true"
}
