package main

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/okayo/invoicing/internal/infrastructure/config"
	"github.com/okayo/invoicing/internal/infrastructure/logger"
	"github.com/okayo/invoicing/internal/infrastructure/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cliOptions struct {
	migrationsPath string
	logLevel       string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the invoicing database schema",
		Long: `migrate applies the versioned SQL migrations of the invoicing service.

The database comes from the service configuration (config.toml, OKAYO_*
variables or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_DRIVER).
Migrations are read from migrations/<driver> unless --path is given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.migrationsPath, "path", "", "migrations directory (default: database.migrations_path)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: opts.withMigrator(func(m *migration.Migrator, _ []string) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: opts.withMigrator(func(m *migration.Migrator, _ []string) error {
				return m.Down()
			}),
		},
		&cobra.Command{
			Use:     "steps N",
			Short:   "Apply N migrations, rolling back when N is negative",
			Example: "  migrate steps 1\n  migrate steps -- -1",
			Args:    cobra.ExactArgs(1),
			RunE: opts.withMigrator(func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		},
		&cobra.Command{
			Use:   "goto V",
			Short: "Migrate up or down to version V",
			Args:  cobra.ExactArgs(1),
			RunE: opts.withMigrator(func(m *migration.Migrator, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(v))
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: opts.withMigrator(func(m *migration.Migrator, _ []string) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					opts.log.Info("No migrations applied")
					return nil
				}
				opts.log.Info("Current migration version",
					zap.Uint("version", version),
					zap.Bool("dirty", dirty))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Set the version without running migrations (clears the dirty flag)",
			Args:  cobra.ExactArgs(1),
			RunE: opts.withMigrator(func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		},
		newCreateCmd(opts),
		&cobra.Command{
			Use:   "list",
			Short: "List the migrations on disk",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				migrations, err := migration.ListMigrations(opts.migrationsPath)
				if err != nil {
					return err
				}
				if len(migrations) == 0 {
					opts.log.Info("No migrations found", zap.String("path", opts.migrationsPath))
					return nil
				}
				for _, m := range migrations {
					fmt.Fprintf(cmd.OutOrStdout(), "%06d  %s\n", m.Version, m.Name)
				}
				return nil
			},
		},
	)
	return root
}

func newCreateCmd(opts *cliOptions) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create the next numbered up/down migration pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := migration.CreateMigration(opts.migrationsPath, args[0], description)
			if err != nil {
				return err
			}
			opts.log.Info("Migration created",
				zap.Uint("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "comment written at the top of the up file")
	return cmd
}

func (o *cliOptions) init() error {
	log, err := logger.New(logger.Config{
		Level:      o.logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.log = log

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	o.cfg = cfg

	if o.migrationsPath == "" {
		o.migrationsPath = cfg.Database.MigrationsPath
	}
	abs, err := filepath.Abs(o.migrationsPath)
	if err != nil {
		return fmt.Errorf("invalid migrations path: %w", err)
	}
	o.migrationsPath = abs
	return nil
}

// withMigrator opens the configured database for the duration of fn
func (o *cliOptions) withMigrator(fn func(*migration.Migrator, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db := o.cfg.Database
		driverName := db.Driver
		if driverName == "" {
			driverName = config.DriverPostgres
		}

		o.log.Info("Connecting to database",
			zap.String("driver", driverName),
			zap.String("host", db.Host),
			zap.String("database", db.DBName),
			zap.String("migrations_path", o.migrationsPath))

		conn, err := sql.Open(driverName, db.MigrationDSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer conn.Close()

		if err := conn.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		m, err := migration.New(conn, driverName, o.migrationsPath, o.log)
		if err != nil {
			return err
		}
		defer m.Close()

		return fn(m, args)
	}
}
