// Command invoicectl parses one auction invoice (PDF or pre-extracted text)
// into a structured record and exports it as JSON, CSV, XLSX, or a console
// summary. Parsing is always best-effort: discrepancies are logged, and the
// raw extracted text is dumped for manual inspection when extraction comes
// up empty.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/lotledger/invoice-parser/internal/domain/export"
	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/parser"
	"github.com/lotledger/invoice-parser/pkg/config"
	"github.com/lotledger/invoice-parser/pkg/pdftext"
)

func main() {
	var (
		input   = flag.String("input", "", "Invoice file (.pdf or .txt)")
		payment = flag.String("payment", "", "Payment method (cash or credit); overrides PAYMENT_METHOD")
		strict  = flag.Bool("strict", false, "Fail on inconsistent totals")
		format  = flag.String("format", "", "Output format (json, csv, xlsx, console); overrides EXPORT_FORMAT")
		out     = flag.String("out", "", "Output file (default: stdout, or <input>.xlsx for xlsx)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	jobID := uuid.New()
	logger = logger.With(slog.String("job_id", jobID.String()))

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: invoicectl -input <invoice.pdf|invoice.txt> [-payment cash|credit] [-format json|csv|xlsx|console]")
		os.Exit(2)
	}

	text, err := loadText(*input)
	if err != nil {
		logger.Error("failed to load input", slog.String("file", *input), slog.String("error", err.Error()))
		os.Exit(1)
	}

	method := cfg.Parser.PaymentMethod
	if *payment != "" {
		method = strings.ToLower(*payment)
	}
	strictTotals := cfg.Parser.StrictTotals || *strict

	p := parser.New(logger)
	rec, err := p.Parse(text, parser.Options{
		PaymentMethod: invoice.PaymentMethod(method),
		StrictTotals:  strictTotals,
		LabelWindow:   cfg.Parser.LabelWindow,
	})
	if err != nil {
		logger.Error("parse failed", slog.String("error", err.Error()))
		dumpRawText(logger, cfg.Export.Dir, jobID.String(), text)
		os.Exit(1)
	}

	logger.Info("parsed invoice",
		slog.String("vendor", rec.Vendor),
		slog.Int("items", len(rec.Items)))

	if len(rec.Items) == 0 {
		logger.Warn("no line items extracted; dumping raw text for inspection")
		dumpRawText(logger, cfg.Export.Dir, jobID.String(), text)
	}

	outFormat := cfg.Export.Format
	if *format != "" {
		outFormat = strings.ToLower(*format)
	}

	if err := write(rec, outFormat, *out, *input); err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func loadText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdftext.Extract(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// dumpRawText preserves the extracted text next to the exports so a failed
// or empty parse can be diagnosed by eye.
func dumpRawText(logger *slog.Logger, dir, jobID, text string) {
	path := filepath.Join(dir, jobID+"-raw.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		logger.Error("failed to dump raw text", slog.String("error", err.Error()))
		return
	}
	logger.Info("raw text dumped", slog.String("path", path))
}

func write(rec *invoice.InvoiceRecord, format, out, input string) error {
	var w *os.File
	switch {
	case out != "":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	case format == "xlsx":
		// XLSX is binary; never write it to a terminal.
		f, err := os.Create(strings.TrimSuffix(input, filepath.Ext(input)) + ".xlsx")
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	default:
		w = os.Stdout
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, rec)
	case "xlsx":
		return export.WriteXLSX(w, rec)
	case "console":
		return export.WriteConsole(w, rec)
	default:
		return export.WriteJSON(w, rec)
	}
}
