// Command render-invoice renders an invoice form (JSON) to a PDF file
// without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-renderer/internal/config"
	"github.com/garyjia/invoice-renderer/internal/container"
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/pkg/utils"
)

func main() {
	input := flag.String("in", "", "Invoice form JSON (default: the sample invoice)")
	output := flag.String("out", "", "Output PDF path (default: invoice_<no>.pdf)")
	configPath := flag.String("config", "", "Optional config file for layout and asset settings")
	timeout := flag.Duration("timeout", 30*time.Second, "Render timeout")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(utils.LoggerConfig{Level: level, OutputPath: "stderr", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	form := entity.DefaultInvoiceForm(utils.FormatToday())
	if *input != "" {
		raw, err := os.ReadFile(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *input, err)
			os.Exit(1)
		}
		form = entity.InvoiceForm{}
		if err := json.Unmarshal(raw, &form); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid invoice form: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resolver := container.ProvideAssetResolver(&cfg.Assets, logger)
	engine := container.ProvideEngine(&cfg.Layout, resolver, logger)

	record := form.ToRecord()
	pdf, err := engine.Render(ctx, record)
	if err != nil {
		logger.Error("Render failed", zap.Error(err))
		os.Exit(1)
	}

	path := *output
	if path == "" {
		path = record.DownloadFileName()
	}
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
		os.Exit(1)
	}

	totals := record.Totals()
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(pdf))
	fmt.Printf("  Subtotal: %s\n", utils.FormatCurrencySymbol(cfg.Layout.CurrencySymbol, totals.LineTotal))
	fmt.Printf("  Tax:      %s\n", utils.FormatCurrencySymbol(cfg.Layout.CurrencySymbol, totals.TaxAmount))
	fmt.Printf("  Total:    %s\n", utils.FormatCurrencySymbol(cfg.Layout.CurrencySymbol, totals.GrandTotal))
}
