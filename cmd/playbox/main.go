package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/playbox/internal/api"
	"github.com/mmcdole/playbox/internal/browse"
	"github.com/mmcdole/playbox/internal/catalog"
	"github.com/mmcdole/playbox/internal/config"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/mmcdole/playbox/internal/log"
	"github.com/mmcdole/playbox/internal/refresh"
	"github.com/mmcdole/playbox/internal/store"
	"github.com/mmcdole/playbox/internal/tui"
	"github.com/mmcdole/playbox/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// flags holds the command line options
type flags struct {
	showVersion bool
	list        bool
	clearCache  bool
	search      string
	genre       string
	year        string
	sort        string
}

func main() {
	var f flags
	flag.BoolVar(&f.showVersion, "v", false, "print version")
	flag.BoolVar(&f.showVersion, "version", false, "print version")
	flag.BoolVar(&f.list, "list", false, "print the filtered movie list instead of starting the UI")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "delete the local catalog cache and exit")
	flag.StringVar(&f.search, "search", "", "filter by title (list mode)")
	flag.StringVar(&f.genre, "genre", "", "filter by genre name or ID (list mode)")
	flag.StringVar(&f.year, "year", "", "filter by release year (list mode)")
	flag.StringVar(&f.sort, "sort", "", "browse a collection: new, top or random (list mode)")
	flag.Parse()

	if f.showVersion {
		fmt.Printf("playbox %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting playbox", "version", Version)

	if f.clearCache {
		return clearCache(cfg)
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))

	// Check if configured
	if !cfg.IsConfigured() {
		if !interactive {
			return fmt.Errorf("%w: set server.url in config.yaml or PLAYBOX_SERVER_URL", domain.ErrNotConfigured)
		}
		return runSetupFlow(cfg, logger)
	}

	cache, err := store.NewCatalogStore(cfg.Catalog.CacheDir, cfg.Server.URL)
	if err != nil {
		// Cache failures degrade to memory-only; browsing still works
		logger.Warn("disk cache unavailable", "error", err)
		cache, err = store.NewCatalogStore("", cfg.Server.URL)
		if err != nil {
			return fmt.Errorf("failed to open catalog store: %w", err)
		}
	}
	defer cache.Close()

	client := api.NewClient(cfg.Server.URL, cfg.Server.Token, logger)
	catalogSvc := catalog.NewService(client, cache, logger)
	session := browse.NewSession(browse.NewStore(), cfg.BrowseOptions(), logger)

	if f.list || !interactive {
		return runList(os.Stdout, os.Stderr, catalogSvc, session, f, cfg.Catalog.FetchTimeout)
	}
	return runTUI(cfg, catalogSvc, session, logger)
}

// runTUI starts the background refresher and the Bubble Tea program
func runTUI(cfg *config.Config, catalogSvc *catalog.Service, session *browse.Session, logger *slog.Logger) error {
	observer := tui.NewSnapshotObserver()
	catalogSvc.Subscribe(observer.OnSnapshot)
	catalogSvc.LoadCached()

	// A zero interval still gives manual refreshes the no-overlap guard
	refresher, err := refresh.New(cfg.Catalog.RefreshInterval, cfg.Catalog.FetchTimeout, func(ctx context.Context) error {
		_, err := catalogSvc.Load(ctx)
		return err
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create refresher: %w", err)
	}
	refresher.Start()
	defer func() {
		if err := refresher.Stop(); err != nil {
			logger.Error("failed to stop refresher", "error", err)
		}
	}()

	model := tui.NewModel(session, refresher, observer, tui.Options{
		Columns:    cfg.UI.GridColumns,
		ShowBanner: cfg.UI.ShowBanner,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// clearCache wipes the cache of the configured server, or the whole cache
// directory when no server is configured yet
func clearCache(cfg *config.Config) error {
	if !cfg.IsConfigured() {
		if err := config.ClearCache(cfg.Catalog.CacheDir); err != nil {
			return err
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	cache, err := store.NewCatalogStore(cfg.Catalog.CacheDir, cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer cache.Close()

	cache.InvalidateAll()
	fmt.Printf("✓ Cache cleared for %s\n", cfg.Server.URL)
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to PlayBox!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// Loop until we reach a catalog server
	for {
		fmt.Print("Enter your PlayBox server URL (e.g., http://localhost:3000): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL := strings.TrimSpace(input)

		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		fmt.Print("Session token (optional, press enter to skip): ")
		token, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		fmt.Println()
		genres, err := checkServerWithSpinner(api.NewClient(serverURL, strings.TrimSpace(token), logger))
		if err != nil {
			fmt.Printf("\n✗ Could not reach server: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}
		fmt.Printf("✓ Connected: %d genres available\n", genres)

		cfg.Server.URL = serverURL
		cfg.Server.Token = strings.TrimSpace(token)
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run playbox again to start browsing.")

	return nil
}

// checkServerWithSpinner fetches the genre list with a visual spinner to
// prove the server is reachable
func checkServerWithSpinner(client *api.Client) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	type result struct {
		count int
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		genres, err := client.GetGenres(ctx)
		resultCh <- result{len(genres), err}
	}()

	frame := 0
	fmt.Printf("\r%s Contacting server...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			return res.count, res.err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting server...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return 0, errors.New("connection timed out")
		}
	}
}
