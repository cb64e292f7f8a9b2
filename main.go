package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/config"
	"github.com/claudiojas/rockbandpay-table-client/kiosk"
	"github.com/claudiojas/rockbandpay-table-client/session"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	store, err := session.OpenFileStore(cfg.StateDBPath)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open state store at %s: %v", cfg.StateDBPath, err)
	}

	api := client.New(cfg.APIBaseURL)
	app := kiosk.New(cfg, api, store, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		// The two page-level fatal cases: no table id, no session obtainable.
		switch {
		case errors.Is(err, config.ErrMissingTable):
			utils.ErrorLogger.Fatalf("Erro: %v", err)
		case errors.Is(err, session.ErrSessionInit):
			utils.ErrorLogger.Fatalf("Erro: %v (recarregue para tentar novamente)", err)
		default:
			utils.ErrorLogger.Fatalf("Erro: %v", err)
		}
	}
}
