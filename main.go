package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"socialgraph/app/auth"
	"socialgraph/app/config"
	"socialgraph/app/database"
	"socialgraph/app/logging"
)

const cliVersion = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printHelp(stderr)
		return 1
	}

	var err error
	cmd := strings.ToLower(args[0])
	switch cmd {
	case "help", "-h", "--help":
		printHelp(stdout)
		return 0
	case "version":
		fmt.Fprintf(stdout, "socialgraph version %s\n", cliVersion)
		return 0
	case "serve":
		err = serveCommand(args[1:], stderr)
	case "migrate":
		err = migrateCommand(args[1:], stderr)
	case "adduser":
		err = addUserCommand(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printHelp(stderr)
		return 1
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(w io.Writer) {
	helpText := `Usage: socialgraph <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve     [--config <file>]    Run the HTTP API server.
  migrate   [--config <file>]    Create or update the database schema.
  adduser   --username <name> --email <email> --password <password> [--config <file>]
                                 Register a user who can then authenticate.
`
	fmt.Fprintln(w, helpText)
}

// newFlagSet returns a flag set for cmd with the shared --config flag.
func newFlagSet(cmd string, stderr io.Writer) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.StringP("config", "c", "", "path to YAML config file (default $"+config.EnvConfigPath+")")
	return fs, path
}

func serveCommand(args []string, stderr io.Writer) error {
	fs, configPath := newFlagSet("serve", stderr)
	addr := fs.String("addr", "", "listen address, overrides server.addr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log := logging.New(cfg.Log)
	app, err := newApplication(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Serve(ctx)
}

func migrateCommand(args []string, stderr io.Writer) error {
	fs, configPath := newFlagSet("migrate", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log)

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database schema is up to date")
	return nil
}

func addUserCommand(args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("adduser", stderr)
	username := fs.String("username", "", "username (3-150 characters)")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (at least 8 characters)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logging.New(cfg.Log))
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.auth.Register(context.Background(), auth.Registration{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}
