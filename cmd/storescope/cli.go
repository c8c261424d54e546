package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/gemini"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Insights storescope.InsightsService
	Reports  storescope.ReportService
	Writer   storescope.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout    time.Duration `default:"10s" help:"Per-request fetch timeout"`
	RPS        float64       `name:"rps" default:"5" help:"Requests per second per host (0 disables throttling)"`
	Burst      int           `default:"3" help:"Request burst per host"`
	Sequential bool          `help:"Extract facets one at a time"`
	Model      string        `default:"${model}" help:"Gemini model used by --summarize"`
	Verbose    bool          `short:"v" help:"Log debug output"`

	Fetch   FetchCmd   `cmd:"" help:"Extract insights from a storefront"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
	History HistoryCmd `cmd:"" help:"List saved reports"`
	Show    ShowCmd    `cmd:"" help:"Print a saved report"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved report"`
}

// Vars returns the interpolation variables for CLI tags.
func Vars() map[string]string {
	return map[string]string{"model": gemini.DefaultModel}
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL       string `arg:"" help:"Storefront URL"`
	Out       string `short:"o" help:"Write the report to this directory instead of stdout"`
	Markdown  bool   `short:"m" help:"Render Markdown instead of JSON"`
	Summarize bool   `short:"s" help:"Add a Gemini-written brand profile"`
	Save      bool   `help:"Save the report to the database"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `default:":8000" help:"Listen address"`
	Summarize bool   `help:"Add a Gemini-written brand profile to every response"`
	Save      bool   `help:"Save every extraction to the database"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show reports for this storefront"`
	Limit int    `short:"n" default:"20" help:"Maximum reports to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID       string `arg:"" help:"Report ID"`
	Markdown bool   `short:"m" help:"Render Markdown instead of JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}
