package bridge

import (
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/logger"
)

// VRChat avatar parameter addresses. The casing is uneven because it has
// to match the parameter names on the avatar itself.
const (
	paramOn         = "/avatar/parameters/on"
	paramColor      = "/avatar/parameters/Color"
	paramBrightness = "/avatar/parameters/brightness"
)

// dispatch pushes all three avatar parameters to the sink. Sends are
// best-effort: a failed parameter is noted at debug level and the
// remaining ones still go out.
func (b *Bridge) dispatch(state bulb.State) {
	b.send(paramOn, state.On)
	b.send(paramColor, float32(state.Hue))
	b.send(paramBrightness, float32(state.Brightness))

	logger.Info().
		Bool("on", state.On).
		Float64("hue", state.Hue).
		Float64("brightness", state.Brightness).
		Msg("Sent updated state to VRChat")
}

func (b *Bridge) send(address string, value any) {
	if err := b.sink.Send(address, value); err != nil {
		logger.Debug().Err(err).Str("address", address).Msg("Dropped parameter update")
	}
}
