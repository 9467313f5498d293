package bulb

import (
	"context"

	"github.com/amimof/huego"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

// Philips Hue reports hue as a 16-bit angle and brightness as a byte
// capped at 254.
const (
	hueHueRangeMax        = 65535
	hueBrightnessRangeMax = 254
)

// HueConfig holds connection settings for one light on a Hue bridge.
type HueConfig struct {
	BridgeHost string
	Username   string
	LightID    int
}

// Validate checks that every field required to reach the bridge is set
func (c HueConfig) Validate() error {
	errFactory := errors.New()

	if c.BridgeHost == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "hue.bridge is required")
	}
	if c.Username == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "hue.username is required")
	}
	if c.LightID <= 0 {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "hue.light_id is required")
	}

	return nil
}

// hueBridge polls a single light on a Philips Hue bridge.
type hueBridge struct {
	bridge  *huego.Bridge
	lightID int
}

// NewHue creates a Provider backed by a Philips Hue bridge light
func NewHue(cfg HueConfig) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &hueBridge{
		bridge:  huego.New(cfg.BridgeHost, cfg.Username),
		lightID: cfg.LightID,
	}, nil
}

// Fetch reads the light's current state from the bridge and normalizes it
func (h *hueBridge) Fetch(ctx context.Context) (State, error) {
	errFactory := errors.New()

	light, err := h.bridge.GetLightContext(ctx, h.lightID)
	if err != nil {
		return State{}, errFactory.Wrap(ErrFetchFailed, err)
	}

	var on bool
	var hue, brightness float64
	if light.State != nil {
		on = light.State.On
		hue = float64(light.State.Hue)
		brightness = float64(light.State.Bri)
	}

	return State{
		On:         on,
		Hue:        Translate(hue, 0, hueHueRangeMax, 0, 1),
		Brightness: Translate(brightness, 0, hueBrightnessRangeMax, 0, 1),
	}, nil
}

// Close is a no-op; the bridge client holds no persistent connection
func (h *hueBridge) Close() error {
	return nil
}
