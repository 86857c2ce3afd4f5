package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/urfave/cli/v2"

	"github.com/simplecom/storefront-e2e/internal/api"
	internalcli "github.com/simplecom/storefront-e2e/internal/cli"
	"github.com/simplecom/storefront-e2e/internal/config"
	"github.com/simplecom/storefront-e2e/internal/database"
	"github.com/simplecom/storefront-e2e/internal/fixtures"
	"github.com/simplecom/storefront-e2e/internal/repository"
)

var version = "0.1.0"

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the in-memory storefront twin (REST API, UI and /metrics)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (overrides TWIN_PORT)"},
		},
		Action: func(c *cli.Context) error {
			serverCfg := config.LoadServerConfig(os.Getenv)
			if port := c.String("port"); port != "" {
				serverCfg.Port = port
			}

			deps, err := internalcli.BuildServerDependencies(serverCfg, config.Load())
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Run a quick API check against the configured storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "API base URL (overrides BASE_URL)"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "per request timeout"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			baseURL := cfg.APIBaseURL
			if u := c.String("base-url"); u != "" {
				baseURL = u
			}
			log.Printf("Running smoke checks against %s", baseURL)

			client := api.NewClient(api.NewHTTPTransport(baseURL, &http.Client{Timeout: c.Duration("timeout")}))
			_, err := internalcli.RunSmoke(c.Context, internalcli.SmokeChecks(client, cfg), c.App.Writer)
			return err
		},
	}
}

// PurgeCommand returns the purge command
func PurgeCommand() *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete generated test users and products from the storefront database",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "only count what would be deleted"},
		},
		Action: func(c *cli.Context) error {
			pgConfig, err := config.LoadPostgresConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("failed to load postgres config: %w", err)
			}

			db, err := database.Connect(c.Context, pgConfig)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()
			log.Println("Connected to database successfully")

			repo := repository.NewPurgeRepository(db)
			_, err = internalcli.RunPurge(c.Context, repo, fixtures.TestDataMarkers(), c.Bool("dry-run"), c.App.Writer)
			return err
		},
	}
}

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the resolved configuration with passwords masked",
		Action: func(c *cli.Context) error {
			out, err := config.Load().Masked().YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(c.App.Writer, out)
			return nil
		},
	}
}

// InstallBrowsersCommand returns the install-browsers command
func InstallBrowsersCommand() *cli.Command {
	return &cli.Command{
		Name:  "install-browsers",
		Usage: "Download the playwright driver and chromium",
		Action: func(c *cli.Context) error {
			browser := "chromium"
			if err := playwright.Install(&playwright.RunOptions{Browsers: []string{browser}}); err != nil {
				return fmt.Errorf("failed to install %s: %w", browser, err)
			}
			log.Printf("Installed playwright driver and %s", browser)
			return nil
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront-e2e",
		Usage:   "End-to-end verification harness for the storefront",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			SmokeCommand(),
			PurgeCommand(),
			ConfigCommand(),
			InstallBrowsersCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
