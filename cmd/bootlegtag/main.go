package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexbodian/bootlegtag/internal/config"
	"github.com/alexbodian/bootlegtag/internal/logger"
	"github.com/alexbodian/bootlegtag/internal/pipeline"
	"github.com/alexbodian/bootlegtag/internal/progress"
	"github.com/alexbodian/bootlegtag/internal/setlist"
	"github.com/alexbodian/bootlegtag/internal/shutdown"
)

func main() {
	cfg, opts, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	sh := shutdown.New()
	sh.Listen()
	defer sh.Wait()

	log := logger.New(cfg.Verbose)
	defer log.Close()

	if !cfg.Verbose {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("bootlegtag_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			} else {
				log.Debug("Logging to file: %s", logFile)
			}
		}
	}

	if cfg.Verbose && opts.ConfigPath != "" {
		log.Debug("Loaded configuration from: %s", opts.ConfigPath)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	if err := run(sh, cfg, log, opts); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(sh *shutdown.Handler, cfg config.Config, log *logger.Logger, opts options) error {
	var bar *progress.Bar

	// Complete the bar's line before interrupt messages print
	sh.AddCleanup(func() {
		if bar != nil {
			bar.Finish()
		}
	})

	declined := false
	hooks := pipeline.Hooks{
		Confirm: func(*setlist.Session) bool {
			if opts.AssumeYes {
				return true
			}
			if promptConfirm() {
				return true
			}
			declined = true
			return false
		},
		OnFilesListed: func(total int) {
			if !cfg.Verbose && !cfg.DryRun {
				bar = progress.New(total)
				log.SetProgressBar(true)
			}
		},
		OnFileDone: func() {
			if bar != nil {
				bar.Increment()
			}
		},
	}

	err := pipeline.Run(sh.Context(), cfg, log, opts.Folder, opts.Dates, hooks)

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if err != nil {
		return err
	}
	if declined || cfg.DryRun {
		return nil
	}

	log.Info("=== Tagging completed ===")
	return nil
}

// promptConfirm asks whether to go ahead with tagging. Only "y" or "yes"
// proceeds, anything else (including EOF) aborts.
func promptConfirm() bool {
	fmt.Print("Proceed with tagging & renaming? (y/n): ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
