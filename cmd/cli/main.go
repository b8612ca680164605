package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/georgemunganga/printa-orders/internal/config"
	"github.com/georgemunganga/printa-orders/internal/modules/auth"
	"github.com/georgemunganga/printa-orders/internal/modules/backend"
	"github.com/georgemunganga/printa-orders/internal/tui"
)

func main() {
	runCmd := flag.String("run", "", "print a report and exit: orders|products")
	envFile := flag.String("env", ".env", "dotenv file to load")
	verbose := flag.Bool("v", false, "write request logs to stderr")
	flag.Parse()

	cfg, _ := config.Load(*envFile)

	// Request logs would draw over the terminal UI.
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	var tokens auth.TokenSource
	if signer := auth.NewSigner(cfg.BackendJWTSecret, cfg.BackendJWTSubject, cfg.ServiceName, auth.DefaultTTL); signer != nil {
		tokens = signer
	}
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
		Tokens:  tokens,
		Service: cfg.ServiceName,
	})
	deps := tui.Deps{Orders: client, Products: client, LineFetchConcurrency: cfg.LineFetchConcurrency}
	ctx := context.Background()

	if *runCmd != "" {
		if err := tui.PrintReport(ctx, os.Stdout, deps, *runCmd); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(tui.New(ctx, deps))
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
