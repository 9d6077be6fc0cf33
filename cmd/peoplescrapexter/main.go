// cmd/peoplescrapexter/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/valpere/PeopleScrapexter/internal/config"
	"github.com/valpere/PeopleScrapexter/internal/service"
	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

const usage = `PeopleScrapexter - person-record extraction from rendered search pages

Usage:
  peoplescrapexter scrape <config.yaml>    run the configured scrape
  peoplescrapexter pages <config.yaml>     report total result pages
  peoplescrapexter validate <config.yaml>  validate a configuration file
  peoplescrapexter template                print a starter configuration
  peoplescrapexter version                 print version information

Flags:
  -v, --verbose   enable debug logging
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := utils.NewLogger()
	if hasFlag("-v") || hasFlag("--verbose") {
		logger = utils.NewLoggerWithLevel(utils.DebugLevel)
	}

	switch args[0] {
	case "scrape":
		requireArg(args, "scrape")
		runScrape(args[1], logger)
	case "pages":
		requireArg(args, "pages")
		runPages(args[1], logger)
	case "validate":
		requireArg(args, "validate")
		runValidate(args[1])
	case "template":
		runTemplate()
	case "version":
		fmt.Printf("peoplescrapexter %s (built %s, commit %s)\n", version, buildTime, gitCommit)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", args[0], usage)
		os.Exit(2)
	}
}

func runScrape(configFile string, logger utils.Logger) {
	cfg := loadConfigOrExit(configFile)

	svc, err := service.New(cfg, logger)
	if err != nil {
		fatal(err)
	}
	defer svc.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	written, err := svc.Run(ctx)
	if err != nil {
		logger.WithField("records", written).Error("scrape failed: " + err.Error())
		os.Exit(1)
	}
	logger.WithField("records", written).Info("scrape complete")
}

func runPages(configFile string, logger utils.Logger) {
	cfg := loadConfigOrExit(configFile)

	svc, err := service.New(cfg, logger)
	if err != nil {
		fatal(err)
	}
	defer svc.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Navigate(ctx, cfg.URL); err != nil {
		fatal(err)
	}
	variant, err := types.ParseVariant(cfg.Variant)
	if err != nil {
		fatal(err)
	}
	pages, err := svc.TotalPages(ctx, variant)
	if err != nil {
		fatal(err)
	}
	fmt.Println(pages)
}

func runValidate(configFile string) {
	if _, err := config.LoadFromFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
}

func runTemplate() {
	tpl := config.GenerateTemplate()
	data, err := yaml.Marshal(tpl)
	if err != nil {
		fatal(fmt.Errorf("failed to marshal template to YAML: %w", err))
	}
	fmt.Print(string(data))
}

func loadConfigOrExit(configFile string) *config.Config {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fatal(fmt.Errorf("failed to load configuration: %w", err))
	}
	return cfg
}

func hasFlag(name string) bool {
	for _, arg := range os.Args[1:] {
		if arg == name {
			return true
		}
	}
	return false
}

func requireArg(args []string, cmd string) {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "%s requires a configuration file\n\n%s", cmd, usage)
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
