package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avosk/drainline/sensors"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	sensorCount := flag.Uint("sensors", envUint(logger, "TEMPWATCH_SENSORS", 8), "number of sensor threads")
	speedup := flag.Uint("speedup", envUint(logger, "TEMPWATCH_SPEEDUP", 250), "time compression factor")
	flag.Parse()

	if *speedup == 0 {
		logger.Error("speedup must be at least 1")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One simulated minute between readings, one simulated hour between
	// reports, swings compared within ten simulated minutes.
	factor := time.Duration(*speedup)
	sim, err := sensors.New(
		sensors.WithSensorCount(*sensorCount),
		sensors.WithInterval(time.Minute/factor),
		sensors.WithReportEvery(time.Hour/factor),
		sensors.WithSwingWindow(10*time.Minute/factor),
	)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	go func() {
		for rep := range sim.Reports() {
			attrs := []any{
				"readings", rep.Count,
				"lowest", values(rep.Lowest),
				"highest", values(rep.Highest),
			}
			if rep.Swing != nil {
				attrs = append(attrs, "largest_swing", rep.Swing.Delta)
			}
			logger.Info("report", attrs...)
		}
	}()

	logger.Info("sensors running", "sensors", *sensorCount, "speedup", *speedup)

	if err := sim.Run(ctx); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func values(readings []sensors.Reading) []int64 {
	vs := make([]int64, len(readings))
	for i, r := range readings {
		vs[i] = r.Value
	}
	return vs
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
