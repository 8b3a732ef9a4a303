package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cubemart/backend/internal/infrastructure/config"
	"github.com/cubemart/backend/internal/infrastructure/logger"
	"github.com/cubemart/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	dir      = flag.String("dir", "migrations", "migrations directory")
	logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	yes      = flag.Bool("yes", false, "confirm destructive commands")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  *logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, args[0], args[1:]); err != nil {
		log.Fatal("command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(log *zap.Logger, command string, args []string) error {
	migrationsDir, err := filepath.Abs(*dir)
	if err != nil {
		return err
	}

	// create and list work on the files alone
	switch command {
	case "create":
		if len(args) < 1 {
			return fmt.Errorf("usage: migrate create <name>")
		}
		p, err := migration.Create(migrationsDir, args[0])
		if err != nil {
			return err
		}
		log.Info("migration created",
			zap.String("version", p.Version),
			zap.String("up", p.UpPath),
			zap.String("down", p.DownPath))
		return nil

	case "list":
		names, err := migration.List(migrationsDir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			log.Info("no migrations found", zap.String("dir", migrationsDir))
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	mg, err := migration.New(db, migrationsDir, log)
	if err != nil {
		return err
	}
	defer mg.Close()

	switch command {
	case "up":
		return mg.Up()

	case "down":
		return mg.Down()

	case "step":
		n, err := intArg(args, "step <n>")
		if err != nil {
			return err
		}
		return mg.Steps(n)

	case "goto":
		n, err := intArg(args, "goto <version>")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return mg.To(uint(n))

	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("no migrations applied")
		} else {
			log.Info("current schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty))
		}
		return nil

	case "force":
		n, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		return mg.Force(n)

	case "drop":
		if !*yes {
			return fmt.Errorf("drop destroys all data; rerun with -yes to confirm")
		}
		return mg.Drop()

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, hint string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: migrate %s", hint)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Manage the cubemart database schema.

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up              apply all pending migrations
  down            roll back all migrations
  step <n>        apply n migrations, negative n rolls back
  goto <version>  migrate to a specific schema version
  version         print the current schema version
  force <version> overwrite the recorded version after manual repair
  drop            remove every database object (requires -yes)
  create <name>   write an empty up/down migration pair
  list            print the migration pairs in the directory

Flags:
  -dir string        migrations directory (default "migrations")
  -log-level string  debug, info, warn or error (default "info")
  -yes               confirm destructive commands

Database settings come from config.toml or CUBEMART_DATABASE_* variables,
the same as the server.`)
}
