// Package main is the Keiyaku CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/keiyaku/internal/analyzer"
	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/export"
	"github.com/hyperjump/keiyaku/internal/extract"
	"github.com/hyperjump/keiyaku/internal/llm"
	"github.com/hyperjump/keiyaku/internal/qa"
	"github.com/hyperjump/keiyaku/internal/server"
	"github.com/hyperjump/keiyaku/internal/session"
	"github.com/hyperjump/keiyaku/internal/watcher"
	"github.com/hyperjump/keiyaku/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/keiyaku/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// resolveCredential picks the API credential: explicit flag first, then the
// KEIYAKU_API_KEY and OPENAI_API_KEY environment variables. The credential is
// passed through per call and never persisted or logged.
func resolveCredential(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("KEIYAKU_API_KEY"); v != "" {
		return v
	}
	return os.Getenv("OPENAI_API_KEY")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "ask":
		runAsk()
	case "version", "--version", "-v":
		fmt.Printf("keiyaku version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	client := llm.NewClient(cfg.Analysis.BaseURL, llm.WithLogger(logger))
	an := analyzer.New(client, cfg.Analysis, logger)
	qaSvc := qa.New(client, cfg.Analysis, logger)
	exporter := export.New(cfg.Export.Directory)
	store := session.NewStore()
	extractor := extract.NewExtractor()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var intake *watcher.Watcher
	if len(cfg.Intake.Directories) > 0 {
		intake = newIntakeWatcher(cfg, extractor, an, exporter, logger, debugMode)
		if err := intake.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start intake watcher", zap.Error(err))
		}
		intake.SyncExistingFiles()
	}

	srv := server.NewServer(store, extractor, an, qaSvc, exporter, cfg.Export.Directory, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	if intake != nil {
		intake.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// newIntakeWatcher builds the watcher that analyzes contracts dropped into
// intake directories and exports both artifact formats. Intake analysis uses
// the environment credential; files fail quietly into the log when it is
// absent.
func newIntakeWatcher(
	cfg *config.Config,
	extractor *extract.Extractor,
	an *analyzer.Analyzer,
	exporter *export.Exporter,
	logger *zap.Logger,
	debugMode bool,
) *watcher.Watcher {
	opts := []watcher.WatcherOption{}
	if debugMode {
		opts = append(opts, watcher.WithLogger(logger))
	}
	onIntake := func(path string) {
		credential := resolveCredential("")
		text, err := extractor.Extract(path)
		if err != nil {
			logger.Warn("intake extraction failed", zap.String("path", path), zap.Error(err))
			return
		}
		rec, _, err := an.Analyze(context.Background(), text, credential)
		if err != nil {
			logger.Warn("intake analysis failed", zap.String("path", path), zap.Error(err))
			return
		}
		jsonPath, err := exporter.JSON(rec)
		if err != nil {
			logger.Warn("intake export failed", zap.String("path", path), zap.Error(err))
			return
		}
		textPath, err := exporter.Text(rec)
		if err != nil {
			logger.Warn("intake export failed", zap.String("path", path), zap.Error(err))
			return
		}
		logger.Info("intake contract analyzed",
			zap.String("source", path),
			zap.String("json_artifact", jsonPath),
			zap.String("text_artifact", textPath))
	}
	return watcher.NewWatcher(
		cfg.Intake.Directories,
		cfg.Intake.Extensions,
		cfg.Intake.RecursiveOrDefault(),
		onIntake,
		opts...,
	)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	key := fs.String("key", "", "API credential (default: KEIYAKU_API_KEY or OPENAI_API_KEY env)")
	exportFormat := fs.String("export", "none", "export artifacts: none, json, text, or both")
	plain := fs.Bool("plain", false, "print the plain report instead of markdown")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: keiyaku analyze [flags] <file>")
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	text, err := extract.NewExtractor().Extract(filePath)
	if err != nil {
		fmt.Printf("Extraction failed: %v\n", err)
		os.Exit(1)
	}

	client := llm.NewClient(cfg.Analysis.BaseURL, llm.WithLogger(logger))
	an := analyzer.New(client, cfg.Analysis, logger)
	rec, rendered, err := an.Analyze(context.Background(), text, resolveCredential(*key))
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *plain {
		fmt.Println(rendered.Plain)
	} else {
		fmt.Println(rendered.Markdown)
	}

	if *exportFormat == "none" {
		return
	}
	exporter := export.New(cfg.Export.Directory)
	if *exportFormat == "json" || *exportFormat == "both" {
		path, err := exporter.JSON(rec)
		if err != nil {
			fmt.Printf("JSON export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved: %s\n", path)
	}
	if *exportFormat == "text" || *exportFormat == "both" {
		path, err := exporter.Text(rec)
		if err != nil {
			fmt.Printf("Text export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved: %s\n", path)
	}
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	key := fs.String("key", "", "API credential (default: KEIYAKU_API_KEY or OPENAI_API_KEY env)")
	filePath := fs.String("file", "", "contract file to ground the answer in")
	_ = fs.Parse(os.Args[2:])

	question := buildQuestion(fs.Args())
	if question == "" {
		fmt.Println("Usage: keiyaku ask [flags] --file <contract> <question>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var text string
	if *filePath != "" {
		text, err = extract.NewExtractor().Extract(*filePath)
		if err != nil {
			fmt.Printf("Extraction failed: %v\n", err)
			os.Exit(1)
		}
	}

	client := llm.NewClient(cfg.Analysis.BaseURL, llm.WithLogger(logger))
	qaSvc := qa.New(client, cfg.Analysis, logger)
	answer, err := qaSvc.Ask(context.Background(), question, text, resolveCredential(*key))
	if err != nil {
		fmt.Printf("Ask failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(answer)
}

func printUsage() {
	fmt.Println(`keiyaku - AI-assisted contract analysis

Usage:
  keiyaku server [flags]              Start the HTTP server
  keiyaku analyze [flags] <file>      Analyze a contract file
  keiyaku ask [flags] <question>      Ask a question about a contract
  keiyaku version                     Show version
  keiyaku help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/keiyaku/config.yaml)
  --debug            Enable debug logging

Analyze Flags:
  --config string    Config file path
  --key string       API credential (default: KEIYAKU_API_KEY or OPENAI_API_KEY env)
  --export string    Export artifacts: none, json, text, or both (default: none)
  --plain            Print the plain report instead of markdown

Ask Flags:
  --config string    Config file path
  --key string       API credential (default: KEIYAKU_API_KEY or OPENAI_API_KEY env)
  --file string      Contract file to ground the answer in

Examples:
  keiyaku server
  keiyaku analyze lease.pdf
  keiyaku analyze --export both employment_contract.docx
  keiyaku ask --file lease.pdf "What is the notice period for termination?"`)
}
