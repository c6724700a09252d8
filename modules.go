package main

import (
	"context"
	"omnihub/config"
	"omnihub/library"
	"omnihub/logger"
	"omnihub/slot"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module wires the application from its config file outwards.
var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideLogger),
	fx.Provide(provideSlot),
	fx.Provide(func(s *slot.Store) library.SlotStore { return s }),
	fx.Provide(NewApp),
)

// provideConfig never fails: a broken config file is reported and the
// defaults are used for this run.
func provideConfig() *config.ConfigManager {
	cm := config.NewConfigManager()
	if err := cm.Load(); err != nil {
		println("Error loading config:", err.Error())
		*cm.Config = config.DefaultConfig()
	}
	return cm
}

func provideLogger(cm *config.ConfigManager) zerolog.Logger {
	return logger.New(cm.GetConfig().LogLevel)
}

func provideSlot(lc fx.Lifecycle, cm *config.ConfigManager, log zerolog.Logger) (*slot.Store, error) {
	store, err := slot.Open(cm.GetDatabasePath(), log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("closing slot database")
			return store.Close()
		},
	})
	return store, nil
}
