// Copyright 2025 The wordfix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the spell checking server and CLI [DBG] application.

wordfix checks words against plain-text word lists and proposes ranked
corrections for misspelt ones. Words are bucketed by a short phonetic key;
proposals come from the bucket of the misspelt word and from the buckets of
its one-edit key neighbours, ranked by a weighted edit distance. It can
operate as a MessagePack IPC server for integration with text editors, or as
a CLI application for testing and debugging.

Word lists are loaded lazily on the first query. Words added at runtime are
appended to the writable user list and survive restarts.

# Usage

Start the server with the configured word lists:

	wordfix

Check against a specific list, appending added words to another, with debug logs:

	wordfix -dict /usr/share/dict/words -user ~/.wordfix-user.txt -d

Run in CLI mode for interactive testing:

	wordfix -c -limit 5

# Configuration

Runtime configuration is managed through a TOML file:

	[engine]
	hash = "folding"
	distance = "weighted"
	threshold = 160
	max_bucket_scan = 300
	strip_non_letters = true
	encoding = "utf-8"

	[[dictionaries]]
	path = "words.txt"

	[[dictionaries]]
	path = "user.txt"
	writable = true

	[server]
	max_word_len = 64
	max_proposals = 20
	watch = true

The config file is automatically created with defaults if it doesn't exist.
Relative word list paths are looked up in the working directory, the config
directory and next to the executable.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout; logs go to stderr.

	{"id": "r1", "a": "check", "w": "recieve"}
	{"id": "r1", "ok": false, "p": [{"w": "receive", "r": -60}], "c": 1, "t": 212}

See package server for every action.

# Command Line Flags

	-config string
	    Path to config.toml (default: user config dir)
	-dict string
	    Word list to check against, replaces the configured lists
	-user string
	    Writable word list for added words, used with -dict
	-enc string
	    Encoding of the word lists (utf-8, windows-1252, utf-16le-bom, auto, ...)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of proposals to show in CLI mode
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/cli"
	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/server"
)

const (
	Version = "0.1.0-beta"
	AppName = utils.AppName
	gh      = "https://github.com/bastiangx/wordfix"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cleanup func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cleanup()
		os.Exit(0)
	}()
}

// main wires config, dictionaries and the chosen front end together.
// It does not implement logic for them and only manages the flow.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	dictPath := flag.String("dict", "", "Word list to check against (replaces the configured lists)")
	userPath := flag.String("user", "", "Writable word list for added words (used with -dict)")
	encoding := flag.String("enc", "", "Encoding of the word lists (utf-8, windows-1252, utf-16le-bom, auto, ...)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of proposals to show in CLI mode (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		logger.Setup(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		logger.Setup(log.WarnLevel)
	}

	appConfig, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	if *dictPath != "" {
		appConfig.Dictionaries = []config.DictionaryConfig{{Path: *dictPath}}
		if *userPath != "" {
			appConfig.Dictionaries = append(appConfig.Dictionaries, config.DictionaryConfig{Path: *userPath, Writable: true})
		}
	}
	if *encoding != "" {
		appConfig.Engine.Encoding = *encoding
	}
	if *limit > 0 {
		appConfig.CLI.DefaultLimit = *limit
	}
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	dicts, err := appConfig.BuildCollection(pathResolver.FindWordList)
	if err != nil {
		log.Fatalf("Failed to set up dictionaries: %v", err)
	}

	var watcher *dictionary.Watcher
	if appConfig.Server.Watch && !*cliMode {
		watcher = startWatcher(dicts)
	}
	sigHandler(func() {
		if watcher != nil {
			watcher.Close()
		}
	})

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", appConfig.CLI.DefaultLimit, "maxWordLen", appConfig.Server.MaxWordLen)

		inputHandler := cli.NewInputHandler(dicts, appConfig.CLI.DefaultLimit, appConfig.Server.MaxWordLen)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	// load eagerly so a missing list shows up at startup rather than on the first request
	if err := dicts.Load(); err != nil {
		log.Warnf("Some word lists could not be loaded: %v", err)
	}

	showStartupInfo(dicts)

	log.Debug("spawning IPC")
	srv := server.NewServer(dicts, appConfig.Server, os.Stdin, os.Stdout)
	err = srv.Start()
	if watcher != nil {
		watcher.Close()
	}
	if err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// startWatcher watches every file-backed word list. Failures only disable reloading.
func startWatcher(dicts *dictionary.Collection) *dictionary.Watcher {
	watcher, err := dictionary.NewWatcher()
	if err != nil {
		log.Warnf("Word list watching disabled: %v", err)
		return nil
	}
	for _, d := range dicts.Members() {
		if err := watcher.Watch(d); err != nil {
			log.Warnf("Not watching %s: %v", d.Name(), err)
		}
	}
	watcher.Start()
	return watcher
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
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
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordfix ] Phonetic spell checking with ranked corrections")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dicts *dictionary.Collection) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	for _, st := range dicts.Stats() {
		log.Info("dictionary", "name", st.Name, "state", st.State, "words", st.Words, "writable", st.Writable)
	}
	log.Info("status: ready")
}
