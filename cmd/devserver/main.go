package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/claudiojas/rockbandpay-table-client/devserver"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPath := os.Getenv("DEVSERVER_DB_PATH")
	if dbPath == "" {
		dbPath = "rockbandpay-dev.db"
	}

	db, err := devserver.OpenDB(dbPath)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open database: %v", err)
	}
	if err := devserver.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed catalog: %v", err)
	}

	hub := devserver.NewHub()
	r := devserver.SetupRouter(db, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	utils.InfoLogger.Printf("Dev server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
