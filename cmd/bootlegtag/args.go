package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexbodian/bootlegtag/internal/config"
)

// options carries the per-invocation arguments that never live in the
// config file.
type options struct {
	ConfigPath string
	Folder     string
	Dates      []time.Time
	AssumeYes  bool
}

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, options, error) {
	args := os.Args[1:]

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, options{}, initConfigFile()
		}
	}

	var opts options

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, options{}, fmt.Errorf("--config requires a path argument")
			}
			opts.ConfigPath = args[i+1]
			break
		}
	}

	cfg, err := config.LoadConfigFile(opts.ConfigPath)
	if err != nil {
		return config.Config{}, options{}, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.FindConfigFile()
	}

	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--dry-run", "-n":
			cfg.DryRun = true

		case "--yes", "-y":
			opts.AssumeYes = true

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, options{}, fmt.Errorf("unknown flag: %s", arg)
			}
			positionals = append(positionals, arg)
		}
	}

	if len(positionals) < 2 {
		printUsage()
		os.Exit(1)
	}

	opts.Folder = positionals[0]
	for _, raw := range positionals[1:] {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return config.Config{}, options{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
		}
		opts.Dates = append(opts.Dates, date)
	}

	return cfg, opts, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  api_key: setlist.fm API key (or set SETLISTFM_API_KEY)")
	fmt.Println("  artist_name: artist to query on setlist.fm")
	fmt.Println("  genre: genre written to every tagged file")
	fmt.Println("  verbose: true/false (enable detailed logging)")
	fmt.Println("  dry_run: true/false (preview mode)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("bootlegtag - Tag and rename live concert recordings using setlist.fm")
	fmt.Println()
	fmt.Println("Usage: bootlegtag [options] <folder> <date> [<date> ...]")
	fmt.Println()
	fmt.Println("Arguments:")
	fmt.Println("  folder                     Folder containing the recording")
	fmt.Println("  date                       Show date(s) as YYYY-MM-DD, one per disc")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -n, --dry-run              Preview the setlists without touching any file")
	fmt.Println("  -y, --yes                  Skip the confirmation prompt")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./bootlegtag.yaml")
	fmt.Println("  ~/.config/bootlegtag/config.yaml")
	fmt.Println("  ~/.bootlegtag.yaml")
	fmt.Println()
	fmt.Println("Logging:")
	fmt.Println("  Normal mode: Progress bar shown, detailed logs saved to:")
	fmt.Println("    ~/.local/share/bootlegtag/logs/")
	fmt.Println("  Verbose mode: All output to stdout, no progress bar, no file logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Preview the setlist for a single show")
	fmt.Println("  bootlegtag --dry-run ~/Music/rr22 2022-10-08")
	fmt.Println()
	fmt.Println("  # Tag a three-night run recorded into one folder")
	fmt.Println("  bootlegtag ~/Music/rr22 2022-10-08 2022-10-09 2022-10-10")
	fmt.Println()
	fmt.Println("  # Tag without the confirmation prompt")
	fmt.Println("  bootlegtag -y ~/Music/rr22 2022-10-08")
	fmt.Println()
	fmt.Println("  # Create a config file to persist settings")
	fmt.Println("  bootlegtag --init-config")
}
