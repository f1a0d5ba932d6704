package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberdeep/server/internal/config"
	"github.com/emberdeep/server/internal/data"
	"github.com/emberdeep/server/internal/persist"
	"github.com/emberdeep/server/internal/scripting"
	"github.com/emberdeep/server/internal/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("EMBERDEEP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("server", cfg.Server.Name),
		zap.Duration("tick_rate", cfg.Simulation.TickRate))

	lua, err := scripting.NewEngine(cfg.Server.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()

	// Optional Postgres snapshotting. When disabled the world is rebuilt
	// from the scene file every boot.
	var snapRepo *persist.SnapshotRepo
	if cfg.Database.Enabled {
		dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(dbCtx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		snapRepo = persist.NewSnapshotRepo(db)
		log.Info("snapshots enabled")
	}

	simCtx, err := buildWorld(cfg, lua, snapRepo, log)
	if err != nil {
		return err
	}

	var snaps sim.Snapshotter
	if snapRepo != nil {
		snaps = snapRepo
	}
	runner := sim.NewRunner(simCtx, cfg.Simulation.TickRate, log, snaps, cfg.Simulation.AutosaveTicks)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runner.Run(ctx)
}

// buildWorld resumes from a snapshot when one exists, otherwise spawns the
// scene file.
func buildWorld(cfg *config.Config, lua *scripting.Engine, snapRepo *persist.SnapshotRepo, log *zap.Logger) (*sim.Context, error) {
	if snapRepo != nil {
		loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		simCtx, ok, err := snapRepo.Load(loadCtx, lua)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if ok {
			log.Info("resumed from snapshot",
				zap.Int("entities", simCtx.World.EntityCount()))
			return simCtx, nil
		}
	}

	scene, err := data.LoadScene(cfg.Server.ScenePath)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	simCtx := sim.NewContext()
	seed := cfg.Simulation.Seed
	nextSeed := func() uint64 {
		seed++
		return seed
	}
	for _, t := range scene.Torches {
		sim.SpawnTorch(simCtx, t.X, t.Y, t.Intensity, nextSeed())
	}
	for _, b := range scene.Braziers {
		sim.SpawnBrazier(simCtx, b.X, b.Y, b.Intensity, b.Fuel, b.BurnInterval(), nextSeed(), lua)
	}
	for _, e := range scene.Emitters {
		sim.SpawnEmitter(simCtx, e.X, e.Y, e.Heat, e.BaseInterval(), nextSeed(), lua)
	}
	for _, p := range scene.Projectiles {
		sim.SpawnProjectile(simCtx, p.X, p.Y, p.DX, p.DY, p.Steps, p.StepDuration())
	}

	log.Info("scene spawned",
		zap.Int("torches", len(scene.Torches)),
		zap.Int("braziers", len(scene.Braziers)),
		zap.Int("emitters", len(scene.Emitters)),
		zap.Int("projectiles", len(scene.Projectiles)))
	return simCtx, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
