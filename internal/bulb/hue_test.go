package bulb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

func newHueProvider(t *testing.T, handler http.HandlerFunc) (bulb.Provider, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := bulb.NewHue(bulb.HueConfig{
		BridgeHost: srv.URL,
		Username:   "tester",
		LightID:    7,
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	return provider, srv
}

func TestHueFetchNormalizes(t *testing.T) {
	var gotPath string
	provider, _ := newHueProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"state":{"on":true,"bri":127,"hue":32767,"reachable":true},"name":"desk"}`))
	})

	state, err := provider.Fetch(context.Background())
	require.NoError(t, err)

	assert.Contains(t, gotPath, "/lights/7")
	assert.True(t, state.On)
	assert.InDelta(t, 32767.0/65535.0, state.Hue, 1e-9)
	assert.InDelta(t, 0.5, state.Brightness, 1e-9)
}

func TestHueFetchMissingState(t *testing.T) {
	provider, _ := newHueProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"desk"}`))
	})

	state, err := provider.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, bulb.State{}, state)
}

func TestHueFetchBridgeDown(t *testing.T) {
	provider, srv := newHueProvider(t, func(_ http.ResponseWriter, _ *http.Request) {})
	srv.Close()

	_, err := provider.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, bulb.ErrFetchFailed))
}

func TestHueConfigValidate(t *testing.T) {
	valid := bulb.HueConfig{BridgeHost: "192.168.1.2", Username: "user", LightID: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*bulb.HueConfig)
	}{
		{"missing bridge", func(c *bulb.HueConfig) { c.BridgeHost = "" }},
		{"missing username", func(c *bulb.HueConfig) { c.Username = "" }},
		{"missing light_id", func(c *bulb.HueConfig) { c.LightID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, bulb.ErrInvalidBackendConfig))
		})
	}
}
