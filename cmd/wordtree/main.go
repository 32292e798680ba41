// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordtree dictionary: an interactive autocomplete
prompt over a plain word file, plus a line CLI [DBG] and a MessagePack IPC
server sharing the same completer.

Words live in a newline-delimited file and are loaded into an unbalanced
binary search tree at startup. Every edit goes to the file first and to the
tree second, so a failed write never leaves the tree ahead of the file.

# Usage

Start the full-screen prompt on the default store:

	wordtree

Use a different store and enable debug logging:

	wordtree -store /path/to/words.dat -d

Run the line CLI or the IPC server:

	wordtree -c -limit 10
	wordtree -s

Replay raw key bytes through the session and print the final screen:

	printf 'ca\t\t fish\n#\n' | wordtree -script -

# Keys

	printable   insert at the cursor
	tab         present the next completion of the buffer
	space       select the presented completion
	enter       add the buffer (or delete it, after ":d")
	esc         cancel the current search
	backspace   erase before the cursor
	#           quit

# Configuration

Runtime configuration is managed through a TOML file, created with defaults
on first run:

	[store]
	path = "dicionario.dat"
	temp_suffix = ".tmp"

	[dict]
	max_results = 100
	max_word_len = 99

	[cli]
	default_limit = 24

	[server]
	max_limit = 100

# Command Line Flags

	-store string
	    Word file (default from config)
	-config string
	    Config file path
	-init
	    Create an empty store if it is missing
	-d  Enable debug mode with detailed logging
	-c  Run the line CLI
	-s  Run the MessagePack IPC server on stdin/stdout
	-script string
	    Feed raw key bytes from a file ("-" for stdin) and print the screen
	-compact
	    Rewrite the store sorted and deduplicated, then exit
	-limit int
	    Number of suggestions for the line CLI
	-prmin int
	    Minimum prefix length for the line CLI
	-prmax int
	    Maximum prefix length for the line CLI
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtree/internal/cli"
	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/internal/tui"
	"github.com/bastiangx/wordtree/pkg/config"
	"github.com/bastiangx/wordtree/pkg/server"
	"github.com/bastiangx/wordtree/pkg/session"
	"github.com/bastiangx/wordtree/pkg/store"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordtree"
	gh      = "https://github.com/bastiangx/wordtree"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, store and completer together and hands over to one
// front end. It does not implement logic for them and only manages the flow.
func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	storePath := flag.String("store", "", "Word file (default from config)")
	configPath := flag.String("config", "", "Config file path")
	initStore := flag.Bool("init", false, "Create an empty store if it is missing")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	serverMode := flag.Bool("s", false, "Run the MessagePack IPC server on stdin/stdout")
	script := flag.String("script", "", "Feed raw key bytes from a file ('-' for stdin) and print the final screen")
	compact := flag.Bool("compact", false, "Rewrite the store sorted and deduplicated, then exit")
	limit := flag.Int("limit", 0, "Number of suggestions to return in CLI mode (default from config)")
	minPrefix := flag.Int("prmin", 0, "Minimum prefix length in CLI mode (default from config)")
	maxPrefix := flag.Int("prmax", 0, "Maximum prefix length in CLI mode (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Warnf("Config error: %v. Using built-in defaults...", err)
		cfg = defaultConfig
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	if *storePath == "" {
		*storePath = cfg.Store.Path
	}
	words := store.Open(*storePath, store.WithTempSuffix(cfg.Store.TempSuffix))

	if *initStore {
		if err := words.Create(); err != nil {
			log.Fatalf("Failed to create store: %v", err)
		}
	}
	if err := words.Validate(); err != nil {
		log.Fatalf("Failed to open store %s: %v", words.Path(), err)
	}

	completer := suggest.NewCompleter(words, cfg.Dict.MaxWordLen)
	if err := completer.Initialize(); err != nil {
		log.Fatalf("Failed to init completer: %v", err)
	}
	defer completer.Close()
	log.Debug("Completer init done", "store", words.Path(), "stats", completer.Stats())

	if *debugMode {
		checkConsistency(completer)
	}

	switch {
	case *compact:
		n, err := completer.Compact()
		if err != nil {
			log.Fatalf("Compaction failed: %v", err)
		}
		log.Printf("Store rewritten with %d words", n)

	case *cliMode:
		log.SetReportTimestamp(false)
		sigHandler()
		n := firstPositive(*limit, cfg.CLI.DefaultLimit)
		lo := firstPositive(*minPrefix, cfg.CLI.DefaultMinLen)
		hi := firstPositive(*maxPrefix, cfg.CLI.DefaultMaxLen)
		log.Debug("Input info:", "minPrefix", lo, "maxPrefix", hi, "limit", n)

		inputHandler := cli.NewInputHandler(completer, logger.New(""), lo, hi, n)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *serverMode:
		sigHandler()
		log.Debug("spawning IPC")
		srv := server.NewServer(completer, cfg.Server.MaxLimit, os.Stdin, os.Stdout)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	case *script != "":
		if err := runScript(*script, completer, sessionOptions(cfg, log.Default())); err != nil {
			log.Fatalf("Script error: %v", err)
		}

	default:
		restore := logger.Silence()
		err := tui.Run(completer, sessionOptions(cfg, logger.NewWithWriter(io.Discard, "")))
		restore()
		if err != nil {
			log.Fatalf("UI error: %v", err)
		}
	}
}

func sessionOptions(cfg *config.Config, l *log.Logger) session.Options {
	return session.Options{
		MaxWordLen: cfg.Dict.MaxWordLen,
		MaxResults: cfg.Dict.MaxResults,
		Logger:     l,
	}
}

// runScript replays raw key bytes through a session drawn on an in-memory
// screen, then prints what the screen shows.
func runScript(name string, completer suggest.ICompleter, opts session.Options) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	screen := tui.NewScreen()
	s := session.New(completer, screen, opts)
	if err := s.Run(session.NewByteSource(r)); err != nil {
		return err
	}
	fmt.Println(screen.String())
	return nil
}

// checkConsistency compares the store against the loaded tree.
func checkConsistency(completer *suggest.Completer) {
	report, err := completer.Verify()
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			log.Warnf("Store vanished during verification: %v", err)
			return
		}
		log.Warnf("Verification failed: %v", err)
		return
	}
	if !report.Consistent() {
		log.Warn("Store and tree disagree",
			"missingFromTree", report.MissingFromTree,
			"missingFromStore", report.MissingFromStore)
		return
	}
	log.Debug("Store and tree agree", "lines", report.StoreLines, "unique", report.StoreUnique)
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// printVersion shows a small styled banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Printf("[ %s ] Binary tree word dictionary with autocomplete", AppName)
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
