package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/helpers"
	"github.com/spektr-org/socialdash/internal/config"
	"github.com/spektr-org/socialdash/internal/logging"
	"github.com/spektr-org/socialdash/render"
	"github.com/spektr-org/socialdash/server"
)

// ============================================================================
// SOCIALDASH CLI: Students Social Media Addiction dashboard
// ============================================================================

const version = "1.0.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to the survey CSV (default: $SOCIALDASH_DATA or config)")
	configPath := flag.String("config", "", "Path to a YAML config file")
	genders := flag.String("gender", "", "Comma-separated genders to include (omit for all)")
	levels := flag.String("level", "", "Comma-separated academic levels to include (omit for all)")
	statuses := flag.String("status", "", "Comma-separated relationship statuses to include (omit for all)")
	theme := flag.String("theme", "", "Heatmap color theme: "+strings.Join(engine.Themes(), ", "))
	bins := flag.Int("bins", 0, "Daily usage histogram bins")
	format := flag.String("format", "text", "Output format: json, pretty, text, csv, xlsx")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	chartsDir := flag.String("charts", "", "Also write PNG charts into this directory")
	describe := flag.Bool("describe", false, "Print a column overview of the CSV and exit")
	serve := flag.Bool("serve", false, "Serve the interactive dashboard over HTTP")
	addr := flag.String("addr", "", "Listen address for -serve (default :8080)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Socialdash: Students Social Media Addiction dashboard

Usage:
  socialdash --file data.csv
  socialdash --file data.csv --gender Female --level Undergraduate,Graduate --format pretty
  socialdash --file data.csv --format xlsx --out dashboard.xlsx --charts charts/
  socialdash --file data.csv --serve --addr :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Filters:
  An omitted filter selects every value in the file. An empty filter
  (--gender=) selects nothing and produces the "No data" dashboard.

Environment:
  SOCIALDASH_DATA   Survey CSV path
  SOCIALDASH_ADDR   Listen address for --serve
  SOCIALDASH_THEME  Default heatmap theme
  SOCIALDASH_BINS   Histogram bins
  LOG_LEVEL         ERROR, WARN, INFO or DEBUG

Formats:
  text      KPI cards and tables (default)
  json      Full JSON result
  pretty    Pretty-printed JSON
  csv       Dashboard tables as CSV (ready for Sheets/Excel)
  xlsx      Dashboard workbook
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("socialdash %s\n", version)
		os.Exit(0)
	}

	if err := checkFormat(*format); err != nil {
		fatalf("%v", err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// ── Config ────────────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Config: %v", err)
	}
	if *filePath != "" {
		cfg.DataFile = *filePath
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *bins != 0 {
		cfg.HistogramBins = *bins
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Config: %v", err)
	}
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	logger.Debug("config: data=%s addr=%s theme=%s bins=%d", cfg.DataFile, cfg.Addr, cfg.Theme, cfg.HistogramBins)

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if *outFile != "" && !*serve {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Describe mode ─────────────────────────────────────────────────────
	if *describe {
		cols, err := helpers.Profile(cfg.DataFile)
		if err != nil {
			fatalf("%v", err)
		}
		if *format == "json" || *format == "pretty" {
			writeJSON(writer, cols, *format)
		} else {
			render.Profile(writer, cols)
		}
		return
	}

	// ── Load ──────────────────────────────────────────────────────────────
	ds, err := helpers.LoadCSV(cfg.DataFile)
	if err != nil {
		switch {
		case errors.Is(err, helpers.ErrNotFound):
			fatalf("Dataset not found: %v", err)
		default:
			fatalf("Dataset could not be loaded: %v", err)
		}
	}

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		app, err := server.NewApp(ds, server.Config{Theme: cfg.Theme, HistogramBins: cfg.HistogramBins}, logger)
		if err != nil {
			fatalf("Server: %v", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := app.Run(ctx, cfg.Addr); err != nil {
			fatalf("Server: %v", err)
		}
		return
	}

	// ── Report mode ───────────────────────────────────────────────────────
	sel := engine.FullSelection(ds)
	if set["gender"] {
		sel.Genders = splitList(*genders)
	}
	if set["level"] {
		sel.Levels = splitList(*levels)
	}
	if set["status"] {
		sel.Statuses = splitList(*statuses)
	}

	result, err := engine.Apply(ds, sel,
		engine.WithTheme(cfg.Theme),
		engine.WithHistogramBins(cfg.HistogramBins),
	)
	if err != nil {
		fatalf("%v", err)
	}

	if *chartsDir != "" {
		paths, err := render.Charts(*chartsDir, result)
		if err != nil {
			fatalf("Charts: %v", err)
		}
		logger.Info("🖼️ %d charts written to %s", len(paths), *chartsDir)
	}

	switch *format {
	case "text":
		err = render.Text(writer, result)
	case "csv":
		err = render.CSV(writer, result)
	case "xlsx":
		err = render.WriteWorkbook(writer, result)
	case "json", "pretty":
		writeJSON(writer, result, *format)
	}
	if err != nil {
		fatalf("Render: %v", err)
	}
	if *outFile != "" {
		log.Printf("📄 %s written to %s", strings.ToUpper(*format), *outFile)
	}
}

// outputFormats are the -format values the report mode can render.
var outputFormats = []string{"text", "json", "pretty", "csv", "xlsx"}

// checkFormat rejects an unknown -format before any file is created.
func checkFormat(format string) error {
	for _, f := range outputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(outputFormats, ", "))
}

// splitList parses a comma-separated flag value. Blank items are dropped,
// so an empty value yields an empty (select-nothing) list.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// ============================================================================
// HELPERS
// ============================================================================

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
