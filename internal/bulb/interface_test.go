package bulb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
)

func TestServiceIsValid(t *testing.T) {
	assert.True(t, bulb.ServiceHomeAssistant.IsValid())
	assert.True(t, bulb.ServiceHue.IsValid())
	assert.True(t, bulb.ServiceMQTT.IsValid())
	assert.False(t, bulb.Service("philips_wiz").IsValid())
	assert.False(t, bulb.Service("").IsValid())
}

func TestStateEquality(t *testing.T) {
	// The dispatch path relies on whole-struct comparison: two states are
	// the same only when every field matches.
	a := bulb.State{On: true, Hue: 0.5, Brightness: 0.8}

	assert.Equal(t, a, bulb.State{On: true, Hue: 0.5, Brightness: 0.8})
	assert.NotEqual(t, a, bulb.State{On: false, Hue: 0.5, Brightness: 0.8})
	assert.NotEqual(t, a, bulb.State{On: true, Hue: 0.51, Brightness: 0.8})
	assert.NotEqual(t, a, bulb.State{On: true, Hue: 0.5, Brightness: 0.81})
}
