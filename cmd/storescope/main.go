package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/fs"
	"github.com/fwojciec/storescope/gemini"
	"github.com/fwojciec/storescope/goquery"
	"github.com/fwojciec/storescope/htmltomarkdown"
	storehttp "github.com/fwojciec/storescope/http"
	"github.com/fwojciec/storescope/insight"
	"github.com/fwojciec/storescope/readability"
	"github.com/fwojciec/storescope/shopify"
	storeslog "github.com/fwojciec/storescope/slog"
	"github.com/fwojciec/storescope/sqlite"
	"github.com/fwojciec/storescope/trafilatura"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the report service.
	DB *sqlite.DB

	// Fetcher replaces the HTTP fetcher when set. Used in tests.
	Fetcher storescope.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("storescope"),
		kong.Description("Extract brand insights from online storefronts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars(Vars()),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'storescope --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set STORESCOPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Reports = sqlite.NewReportService(m.DB)
	}

	if cmd == "fetch" || cmd == "serve" {
		fetcher := m.fetcher(cli, deps.Logger)
		defer fetcher.Close()

		catalog := storeslog.NewLoggingCatalogService(shopify.NewCatalogService(fetcher, deps.Logger), deps.Logger)
		sitemaps := storeslog.NewLoggingSitemapService(
			storehttp.NewSitemapService(fetcher, storehttp.WithChildFilter(goquery.PolicyChildSitemaps())),
			deps.Logger,
		)

		svc := insight.NewService(fetcher, catalog, sitemaps, deps.Logger)
		svc.Sequential = cli.Sequential

		if cli.Fetch.Summarize || cli.Serve.Summarize {
			enricher, err := newSummarizer(ctx, cli.Model, stderr)
			if err != nil {
				return err
			}
			svc.Enricher = enricher
		}

		// fetch persists explicitly so it can report the saved ID.
		if cmd == "serve" && cli.Serve.Save {
			svc.Reports = deps.Reports
		}

		deps.Insights = storeslog.NewLoggingInsightsService(svc, deps.Logger)
	}

	if cmd == "fetch" && cli.Fetch.Out != "" {
		writer := fs.NewReportWriter(cli.Fetch.Out)
		writer.Markdown = cli.Fetch.Markdown
		deps.Writer = writer
	}

	return kongCtx.Run(deps)
}

// fetcher builds the fetch chain: HTTP, optional per-host throttle, logging.
func (m *Main) fetcher(cli *CLI, logger *slog.Logger) storescope.Fetcher {
	var f storescope.Fetcher = m.Fetcher
	if f == nil {
		f = storehttp.NewFetcher(storehttp.WithTimeout(cli.Timeout))
	}
	if cli.RPS > 0 {
		f = storehttp.NewLimitedFetcher(f, storehttp.NewDomainLimiter(cli.RPS, cli.Burst))
	}
	return storeslog.NewLoggingFetcher(f, logger)
}

func newSummarizer(ctx context.Context, model string, stderr io.Writer) (*gemini.Summarizer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	counter, err := gemini.NewTokenCounter(tokenizerModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	extractor := trafilatura.NewExtractor(trafilatura.WithFallback(readability.NewExtractor()))
	s := gemini.NewSummarizer(client, extractor, htmltomarkdown.NewConverter(), counter)
	s.Model = model
	return s, nil
}

// tokenizerModel is used for token counting; the local tokenizer does not
// know every generation model.
const tokenizerModel = "gemini-2.5-flash"

func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "history", "show", "delete", "serve":
		return true
	case "fetch":
		return cli.Fetch.Save
	}
	return false
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("STORESCOPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "storescope.db"
	}
	dir := filepath.Join(home, ".storescope")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "storescope.db")
}
