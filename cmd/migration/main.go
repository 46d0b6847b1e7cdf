// Command migration applies the SQL files under db/migrations.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/football-stats/internal/app"
	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	args string
	run  func(m migrator, args []string, out io.Writer, logger *logging.Logger) error
}

var commands = map[string]command{
	"up": {run: func(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
		return applied(m.Up(), logger, "migrations applied")
	}},
	"down": {args: "[n]", run: func(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
		n := 1
		if len(args) > 0 {
			v, err := parseUint("steps", args[0])
			if err != nil {
				return err
			}
			if v == 0 {
				return fmt.Errorf("steps must be > 0")
			}
			n = int(v)
		}
		return applied(m.Steps(-n), logger, "migrations rolled back", "steps", n)
	}},
	"goto": {args: "<version>", run: func(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
		v, err := requiredUint("goto", args)
		if err != nil {
			return err
		}
		return applied(m.Migrate(v), logger, "migrated", "version", v)
	}},
	"force": {args: "<version>", run: func(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
		v, err := requiredUint("force", args)
		if err != nil {
			return err
		}
		if err := m.Force(int(v)); err != nil {
			return fmt.Errorf("force version %d: %w", v, err)
		}
		logger.Info("migration version forced", "version", v)
		return nil
	}},
	"version": {run: func(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
		v, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", v, dirty)
		return err
	}},
}

func main() {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("LOG_LEVEL"))).With("component", "migration")
	logging.SetDefault(logger)

	err := run(os.Args[1:], logger)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		printUsage(os.Stderr, filepath.Base(os.Args[0]))
		os.Exit(2)
	default:
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[strings.ToLower(args[0])]
	if !ok {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBURL == "" {
		return errors.New("DB_URL is required")
	}
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), app.NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	logger.Info("running migration command", "command", args[0], "dir", dir)
	return cmd.run(m, args[1:], os.Stdout, logger)
}

// applied treats ErrNoChange as success.
func applied(err error, logger *logging.Logger, msg string, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func requiredUint(cmd string, args []string) (uint, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s requires a version argument", cmd)
	}
	return parseUint("version", args[0])
}

func parseUint(what, raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, raw, err)
	}
	return uint(v), nil
}

// migrationsDir prefers MIGRATIONS_DIR, then the repo layout, then the
// container layout.
func migrationsDir() (string, error) {
	for _, dir := range []string{os.Getenv("MIGRATIONS_DIR"), "db/migrations", "/app/db/migrations"} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migrations directory not found: set MIGRATIONS_DIR")
}

func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "usage: %s <command> [args]\n\ncommands:\n", name)
	for _, c := range []string{"up", "down", "goto", "force", "version"} {
		fmt.Fprintf(w, "  %s %s\n", c, commands[c].args)
	}
}
