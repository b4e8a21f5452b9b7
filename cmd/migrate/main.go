// Command migrate aplica o revierte el esquema de la base de datos.
//
//	migrate up
//	migrate down --steps 1
//	migrate version
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "migraciones del esquema de backoffice-api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "connection string; por defecto se arma desde la configuración",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "aplica todas las migraciones pendientes",
				Action: func(c *cli.Context) error {
					url, err := databaseURL(c)
					if err != nil {
						return err
					}
					return postgres.MigrateUp(url)
				},
			},
			{
				Name:  "down",
				Usage: "revierte migraciones",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "cantidad de migraciones a revertir"},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					if steps <= 0 {
						return fmt.Errorf("--steps debe ser positivo: %d", steps)
					}
					return withMigrator(c, func(m *migrate.Migrate) error {
						if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
							return fmt.Errorf("migrate down: %w", err)
						}
						return nil
					})
				},
			},
			{
				Name:  "version",
				Usage: "muestra la versión aplicada",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrate.Migrate) error {
						version, dirty, err := m.Version()
						if errors.Is(err, migrate.ErrNilVersion) {
							fmt.Println("sin migraciones aplicadas")
							return nil
						}
						if err != nil {
							return fmt.Errorf("migrate version: %w", err)
						}
						fmt.Printf("versión %d (dirty=%t)\n", version, dirty)
						return nil
					})
				},
			},
		},
	}

	log := logger.New(logger.Config{Env: os.Getenv("APP_ENV"), Level: os.Getenv("LOG_LEVEL"), Service: "migrate"})
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
}

func databaseURL(c *cli.Context) (string, error) {
	if url := c.String("database-url"); url != "" {
		return url, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("cargar configuración: %w", err)
	}
	return cfg.DB.ConnectionString(), nil
}

func withMigrator(c *cli.Context, fn func(m *migrate.Migrate) error) error {
	url, err := databaseURL(c)
	if err != nil {
		return err
	}
	m, err := postgres.NewMigrator(url)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()
	return fn(m)
}
