package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/avosk/drainline"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	items := flag.Uint("items", envUint(logger, "DRAINLINE_ITEMS", 500000), "total items to process")
	workers := flag.Uint("workers", envUint(logger, "DRAINLINE_WORKERS", 4), "number of symmetric worker threads")
	flag.Parse()

	r, err := drainline.New(
		drainline.WithItemCount(*items),
		drainline.WithWorkerCount(*workers),
	)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("draining", "items", *items, "workers", *workers)

	sum, err := r.Run(context.Background())
	if err != nil {
		logger.Error("run failed", "error", err, "finalized", sum.Finalized)
		os.Exit(1)
	}

	fmt.Printf("The workers have processed %d items and finalized %d of them\n",
		sum.Items, sum.Finalized)
}

func envUint(logger *slog.Logger, key string, fallback uint) uint {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		logger.Error("invalid environment value", "key", key, "value", v, "error", err)
		os.Exit(1)
	}
	return uint(n)
}
