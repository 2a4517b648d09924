package main

import (
	"fmt"
	"log"

	"github.com/coursegrid/scheduler/internal/model"
	"github.com/coursegrid/scheduler/internal/server"
	"github.com/coursegrid/scheduler/internal/solve"
	"github.com/coursegrid/scheduler/pkg/config"
	"github.com/coursegrid/scheduler/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	modelCfg, err := modelConfig(cfg.Solver)
	if err != nil {
		log.Fatalf("invalid solver config: %v", err)
	}

	scheduler := model.NewScheduler(backend(cfg.Solver), modelCfg)
	metrics := server.NewMetrics()
	handler := server.NewHandler(scheduler, cfg, metrics, logr)
	router := server.NewRouter(cfg, logr, metrics, handler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"backend", cfg.Solver.Backend,
		"encoding", modelCfg.Encoding.String())
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func modelConfig(cfg config.SolverConfig) (model.Config, error) {
	encoding, err := model.ParseEncoding(cfg.Encoding)
	if err != nil {
		return model.Config{}, err
	}
	spread, err := model.ParseSpreadMode(cfg.Spread)
	if err != nil {
		return model.Config{}, err
	}
	return model.Config{Encoding: encoding, Spread: spread, RequireAll: cfg.RequireAll}, nil
}

func backend(cfg config.SolverConfig) solve.Solver {
	if cfg.Backend == "openwbo" || cfg.Backend == "open-wbo" {
		if cfg.OpenWBOPath != "" {
			return solve.NewOpenWBOSolverAt(cfg.OpenWBOPath)
		}
		return solve.NewOpenWBOSolver()
	}
	return solve.NewGophersatSolver()
}
