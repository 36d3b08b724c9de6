// Package main is the docstore CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/docstore/internal/cli"
	"github.com/hyperjump/docstore/internal/config"
	"github.com/hyperjump/docstore/internal/loader"
	"github.com/hyperjump/docstore/internal/metrics"
	"github.com/hyperjump/docstore/internal/models"
	"github.com/hyperjump/docstore/internal/server"
	"github.com/hyperjump/docstore/internal/store"
	"github.com/hyperjump/docstore/internal/watcher"
	"github.com/hyperjump/docstore/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/docstore/config.yaml"
	defaultServerURL  = "http://localhost:8080"
)

// loadConfig loads config from path. When path is the default and does not exist,
// config.yaml in the current directory is tried, and failing that the built-in
// defaults are used, so "docstore server" works without any config file.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); err != nil {
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
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
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
	case "save":
		runSave()
	case "get":
		runGet()
	case "search":
		runSearch()
	case "status":
		runStatus()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("docstore version %s\n", version)
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
	debug := fs.Bool("debug", false, "enable debug logging (dedup hits, seed file loads, watch events)")
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

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	repo := store.NewSynchronized(store.New(store.WithLogger(logger)))
	seeds := loader.New(repo, cfg.Watch.Extensions, logger)

	watchOpts := []watcher.Option{watcher.WithDebounce(cfg.Watch.Debounce())}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.New(
		cfg.Watch.Directories,
		cfg.Watch.RecursiveOrDefault(),
		seeds.Accepts,
		func(path string) {
			if _, err := seeds.LoadFile(path); err != nil {
				logger.Warn("seed file load failed", zap.String("path", path), zap.Error(err))
			}
			metrics.Documents.Set(float64(repo.Len()))
		},
		watchOpts...,
	)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watchSvc.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()
	logger.Info("seed documents loaded", zap.Int("documents", repo.Len()))

	srv := server.NewServer(repo, &cfg.Server, logger, watchSvc, resolvedConfigPath, cfg)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		watchSvc.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("Server failed", zap.Error(err))
		os.Exit(1)
	}
}

func runSave() {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: docstore save [flags] <file.json|->...\n\n")
		fmt.Fprintf(fs.Output(), "Each file holds one document or an array of documents; \"-\" reads stdin.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(reorderArgs(os.Args[2:]))
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	format := mustOutputFormat(*outputFormat)

	client := cli.NewClient(*serverURL)
	for _, path := range fs.Args() {
		docs, err := readDocuments(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, doc := range docs {
			saved, err := client.Save(doc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Save failed: %v\n", err)
				os.Exit(1)
			}
			if err := cli.WriteDocument(os.Stdout, saved, format); err != nil {
				fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

// readDocuments decodes the documents in path, or stdin when path is "-".
func readDocuments(path string) ([]*models.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	docs, _, err := loader.Decode(data)
	return docs, err
}

func runGet() {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(reorderArgs(os.Args[2:]))
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: docstore get [flags] <id>")
		os.Exit(1)
	}
	format := mustOutputFormat(*outputFormat)

	doc, err := cli.NewClient(*serverURL).Get(fs.Arg(0))
	if err != nil {
		if errors.Is(err, cli.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No document with id %s\n", fs.Arg(0))
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Get failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteDocument(os.Stdout, doc, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: docstore search [flags]\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Every given criterion must hold. Repeat -title, -contains or -author to accept any of
several values. Passing one of them with an empty value (e.g. -author=) makes the
criterion present but empty, which matches no document.

Examples:
  docstore search                                   # every document
  docstore search -title Report -title Memo
  docstore search -author u1 -author u2 -from 2024-01-01T00:00:00Z
`)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	var titles, contents, authors stringList
	fs.Var(&titles, "title", "title prefix (repeatable)")
	fs.Var(&contents, "contains", "content substring (repeatable)")
	fs.Var(&authors, "author", "author id (repeatable)")
	from := fs.String("from", "", "created at or after (RFC 3339)")
	to := fs.String("to", "", "created at or before (RFC 3339)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one document per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(os.Args[2:])
	format := mustOutputFormat(*outputFormat)

	req, err := buildSearchRequest(titles, contents, authors, *from, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	docs, err := cli.NewClient(*serverURL).Search(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteDocuments(os.Stdout, docs, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// buildSearchRequest turns search flags into a request. It returns nil when no
// criterion was given, which the server treats as "match everything".
func buildSearchRequest(titles, contents, authors stringList, from, to string) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		TitlePrefixes:    titles.values,
		ContainsContents: contents.values,
		AuthorIDs:        authors.values,
	}
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, fmt.Errorf("invalid -from: %w", err)
		}
		req.CreatedFrom = &t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, fmt.Errorf("invalid -to: %w", err)
		}
		req.CreatedTo = &t
	}
	if req.TitlePrefixes == nil && req.ContainsContents == nil && req.AuthorIDs == nil &&
		req.CreatedFrom == nil && req.CreatedTo == nil {
		return nil, nil
	}
	return req, nil
}

// stringList is a repeatable flag. values stays nil until the flag is given at least
// once; an empty value marks the list present without adding to it.
type stringList struct {
	values []string
}

func (s *stringList) String() string {
	return strings.Join(s.values, ",")
}

func (s *stringList) Set(v string) error {
	if s.values == nil {
		s.values = []string{}
	}
	if v != "" {
		s.values = append(s.values, v)
	}
	return nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status server.StatusResponse
	if err := cli.NewClient(*serverURL).Status(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	switch *outputFormat {
	case "json":
		if err := cli.WriteJSON(os.Stdout, status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("documents:          %d   # count of stored documents\n", status.Documents)
		fmt.Printf("watch_enabled:      %t\n", status.WatchEnabled)
		for _, d := range status.WatchDirectories {
			fmt.Printf("watch_directory:    %s\n", d)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func runWatch() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: docstore watch <add|remove|list> [path]")
		fmt.Println("  docstore watch add <path>     Watch a seed directory and load its files")
		fmt.Println("  docstore watch remove <path>  Stop watching a directory (loaded documents stay)")
		fmt.Println("  docstore watch list           List watched directories")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(reorderArgs(os.Args[3:]))
	client := cli.NewClient(*serverURL)

	switch sub {
	case "add", "remove":
		if fs.NArg() < 1 {
			fmt.Printf("Usage: docstore watch %s <path>\n", sub)
			os.Exit(1)
		}
		path, err := filepath.Abs(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid path: %v\n", err)
			os.Exit(1)
		}
		if sub == "add" {
			err = client.AddWatchDirectory(path)
		} else {
			err = client.RemoveWatchDirectory(path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Watch %s failed: %v\n", sub, err)
			os.Exit(1)
		}
		if sub == "add" {
			fmt.Printf("Added: %s\n", path)
		} else {
			fmt.Printf("Removed: %s\n", path)
		}
	case "list":
		dirs, err := client.WatchDirectories()
		if err != nil {
			fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
			os.Exit(1)
		}
		for _, d := range dirs {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown watch subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func mustOutputFormat(s string) cli.OutputFormat {
	format, err := cli.ParseOutputFormat(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return format
}

// reorderArgs moves flags that appear after positional arguments to the front so
// flag.Parse sees them; Go's flag package stops at the first non-flag argument.
func reorderArgs(args []string) []string {
	var (
		positional []string
		seenPos    bool
	)
	for i, a := range args {
		if len(a) > 1 && a[0] == '-' {
			if !seenPos {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, positional...)
			return reordered
		}
		positional = append(positional, a)
		seenPos = true
	}
	return args
}

func printUsage() {
	fmt.Print(`docstore - in-memory document store

Usage:
  docstore <command> [flags]

Commands:
  server    Start the HTTP API and load seed directories
  save      Save documents from JSON files through the API
  get       Fetch a document by id
  search    Search documents by title prefix, content, author and created range
  status    Show document count and watched directories
  watch     Add, remove or list watched seed directories
  version   Print version
  help      Show this help

Run "docstore <command> -h" for command flags.
`)
}
