// Command seed inserts a small demo catalog into the configured store.
package main

import (
	"context"
	"errors"
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/app"
	"github.com/Astemirdum/library-catalog/catalog/config"
	"github.com/Astemirdum/library-catalog/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig()
	log := logger.NewLogger(cfg.Log, "seed")

	if err := app.Seed(context.Background(), cfg, log); err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	log.Info("seed finished")
}
