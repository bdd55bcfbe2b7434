package main

import (
	"context"
	"flag"
	"log"

	"github.com/6540011013-oss/Room-Status-System/internal/config"
	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/service"
	"github.com/6540011013-oss/Room-Status-System/internal/store"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	seed := flag.Bool("seed", false, "seed default item categories when the table is empty")
	prune := flag.Bool("prune", false, "delete history past its retention window")
	flag.Parse()

	cfg := config.Load(*configFile)
	defer logger.Init(cfg.Log).Close()

	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal(err)
	}
	st := store.New(db)
	defer st.Close()
	ctx := context.Background()

	// Step 1: tables and legacy upgrades
	if err := st.Migrate(ctx); err != nil {
		log.Fatal("schema init failed:", err)
	}

	// Step 2: default item categories
	if *seed {
		cats, err := st.ListItemCategories(ctx)
		if err != nil {
			log.Fatal("seed failed:", err)
		}
		logger.Info("item categories ready", "count", len(cats))
	}

	// Step 3: retention sweep
	if *prune {
		clock := service.SystemClock(cfg.Location())
		res := service.NewJanitor(st, clock, cfg.Retention.SnapshotDays, cfg.Retention.TaskDays, cfg.SweepInterval()).Sweep(ctx)
		logger.Info("prune done", "status_snapshots", res.StatusSnapshots, "item_snapshots", res.ItemSnapshots, "tasks", res.Tasks)
	}

	logger.Info("=== all done ===")
}
