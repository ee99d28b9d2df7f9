/*
Package main implements the gazetteer model builder and lookup server.

The binary builds an in-memory gazetteer model from one or more source
locations (files, directories, zip archives or http(s) URLs with one
`<name><TAB><identifier-list>` entry per line), then serves lookups over a
msgpack IPC on stdin/stdout, or interactively in CLI mode.

# Usage

Build a model from a taxa file and start the IPC server:

	gazetteer -sources taxa.txt

Run in CLI mode for interactive testing, with all skip-grams and
abbreviated entries enabled:

	gazetteer -c -sources taxa.txt -all-skips -abbrev

# Configuration

Runtime configuration is managed through a TOML file. Build options set on
the command line override the file:

	[build]
	use_lowercase = false
	language = "de"
	min_variant_length = 5
	min_word_count_for_variants = 3
	token_boundary_pattern = '\s+'

	[server]
	max_limit = 64

# IPC Protocol

The server communicates via msgpack over stdin/stdout. A lookup request
resolves a variant through the bijective variant -> entry lookup:

	{"id": "req1", "cmd": "lookup", "q": "Quercus robur"}

and receives the entry with its identifiers plus timing info. The
"variants", "suggest" and "health" commands follow the same shape.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lexigraph/gazetteer/internal/logger"
	"github.com/lexigraph/gazetteer/pkg/config"
	"github.com/lexigraph/gazetteer/pkg/gazetteer"
	"github.com/lexigraph/gazetteer/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "gazetteer"
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

// main wires flags, config and the model build together; the logic lives in
// the library packages.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	sources := flag.String("sources", "", "Comma-separated source locations (files, directories, zip archives, URLs)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI instead of the IPC server")

	lowercase := flag.Bool("lowercase", defaults.Build.UseLowercase, "Lowercase entries and variants")
	langTag := flag.String("lang", defaults.Build.Language, "Locale used for lowercasing")
	minLength := flag.Int("minlen", defaults.Build.MinVariantLength, "Minimum variant length; shorter variants are dropped")
	allSkips := flag.Bool("all-skips", defaults.Build.AllSkips, "Enumerate all m-skip-n-grams instead of dropping one word")
	splitHyphen := flag.Bool("split-hyphen", defaults.Build.SplitHyphen, "Split entry words at hyphens")
	abbreviated := flag.Bool("abbrev", defaults.Build.AddAbbreviatedEntries, "Additionally add entries with the first word abbreviated")
	minWords := flag.Int("minwords", defaults.Build.MinWordCountForVariants, "Lower bound word count for variant generation")
	boundary := flag.String("boundary", defaults.Build.TokenBoundaryPattern, "Token boundary pattern for the tree index (empty disables the tree)")
	maxComb := flag.Int("maxcomb", defaults.Build.MaxCombinations, "Cap on enumerated combinations per entry (0 = unbounded)")
	stoplistFile := flag.String("stoplist", defaults.Build.StoplistFile, "Stoplist file, one term per line")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	log.SetDefault(logger.New("", *debugMode))

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if activePath != "" {
		log.Debugf("Using config file: (%s)", activePath)
	}

	// Flags set explicitly on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lowercase":
			cfg.Build.UseLowercase = *lowercase
		case "lang":
			cfg.Build.Language = *langTag
		case "minlen":
			cfg.Build.MinVariantLength = *minLength
		case "all-skips":
			cfg.Build.AllSkips = *allSkips
		case "split-hyphen":
			cfg.Build.SplitHyphen = *splitHyphen
		case "abbrev":
			cfg.Build.AddAbbreviatedEntries = *abbreviated
		case "minwords":
			cfg.Build.MinWordCountForVariants = *minWords
		case "boundary":
			cfg.Build.TokenBoundaryPattern = *boundary
		case "maxcomb":
			cfg.Build.MaxCombinations = *maxComb
		case "stoplist":
			cfg.Build.StoplistFile = *stoplistFile
		}
	})

	locations := flag.Args()
	if *sources != "" {
		for _, s := range strings.Split(*sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				locations = append(locations, s)
			}
		}
	}
	if len(locations) == 0 {
		log.Fatal("No source locations given; pass -sources or positional paths")
	}

	log.Debugf("Building model from %d locations..", len(locations))
	model, err := gazetteer.Build(locations, cfg.Build)
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	stats := model.Stats()
	log.Infof("Model ready: %d entries, %d variants, %d tree nodes in %s",
		stats.Entries, stats.Variants, stats.TreeNodes, stats.BuildTime.Round(time.Millisecond))

	if *cliMode {
		log.SetReportTimestamp(false)
		if err := runCLI(model, cfg); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(model, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runCLI reads variant queries from stdin and prints the resolved entry and
// identifiers, one query per line.
func runCLI(model *gazetteer.Model, cfg *config.Config) error {
	fmt.Println("Enter a variant to resolve (Ctrl+D to exit):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		e, ok := model.EntryForVariant(query)
		if !ok {
			hits := model.SuggestPrefix(query, cfg.CLI.DefaultLimit)
			if len(hits) == 0 {
				fmt.Println("  no match")
				continue
			}
			for _, hit := range hits {
				fmt.Printf("  %s -> %s\n", hit.Variant, hit.Entry)
			}
			continue
		}
		fmt.Printf("  entry: %s\n", e)
		for _, uri := range model.IdentifiersForVariant(query).Sorted() {
			fmt.Printf("    %s\n", uri)
		}
	}
	return scanner.Err()
}

// printVersion displays some basic info about the binary.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Printf("[ %s ] Gazetteer model builder and lookup server", AppName)
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
}
