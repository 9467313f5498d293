package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/avatar"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bridge"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/config"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/logger"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/pid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, logger.IsService())
	logger.Debug().Msg("Config loaded")

	if err := run(cfg); err != nil {
		var domainErr errors.Error
		if errors.As(err, &domainErr) {
			logger.FatalWithCode(domainErr).Msg("")
		}
		logger.Fatal().Err(err).Msg("")
	}
}

func run(cfg *config.Config) error {
	if err := pid.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove PID file")
		}
	}()

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	sink, err := avatar.NewOSC(cfg.VRChatIP, cfg.VRChatPort)
	if err != nil {
		return err
	}
	defer sink.Close()

	logger.Info().
		Str("bulb_service", cfg.BulbService).
		Str("vrchat", fmt.Sprintf("%s:%d", cfg.VRChatIP, cfg.VRChatPort)).
		Int("max_updates_per_second", cfg.MaxUpdatesPerSecond).
		Msg("Bridging bulb state to VRChat")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := bridge.New(provider, sink, cfg.MaxUpdatesPerSecond).Run(ctx); err != nil {
		return err
	}

	logger.Info().Msg("Exiting...")

	return nil
}

// newProvider builds the bulb backend named by the config. Each backend
// validates its own section, so a misconfigured service fails here before
// the loop starts.
func newProvider(cfg *config.Config) (bulb.Provider, error) {
	switch bulb.Service(cfg.BulbService) {
	case bulb.ServiceHomeAssistant:
		return bulb.NewHomeAssistant(bulb.HomeAssistantConfig{
			EntityID:    cfg.HomeAssistant.EntityID,
			ServerIP:    cfg.HomeAssistant.ServerIP,
			ServerPort:  cfg.HomeAssistant.ServerPort,
			BearerToken: cfg.HomeAssistant.BearerToken,
			Timeout:     cfg.HTTPTimeout,
		})
	case bulb.ServiceHue:
		return bulb.NewHue(bulb.HueConfig{
			BridgeHost: cfg.Hue.Bridge,
			Username:   cfg.Hue.Username,
			LightID:    cfg.Hue.LightID,
		})
	case bulb.ServiceMQTT:
		return bulb.NewMQTT(bulb.MQTTConfig{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
		})
	default:
		return nil, errors.New().WithData(errors.ErrUnknownService, cfg.BulbService)
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
