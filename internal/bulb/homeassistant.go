package bulb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

// Home Assistant reports hue in degrees and brightness as a byte.
const (
	haHueRangeMax        = 360
	haBrightnessRangeMax = 255
)

const defaultHTTPTimeout = 30 * time.Second

// HomeAssistantConfig holds connection settings for one Home Assistant
// light entity.
type HomeAssistantConfig struct {
	EntityID    string
	ServerIP    string
	ServerPort  int
	BearerToken string
	Timeout     time.Duration
}

// Validate checks that every field required to reach the server is set
func (c HomeAssistantConfig) Validate() error {
	errFactory := errors.New()

	if c.EntityID == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "home_assistant.entity_id is required")
	}
	if c.ServerIP == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "home_assistant.server_ip is required")
	}
	if c.ServerPort <= 0 {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "home_assistant.server_port is required")
	}
	if c.BearerToken == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "home_assistant.bearer_token is required")
	}

	return nil
}

// homeAssistant polls the Home Assistant REST API for entity state.
type homeAssistant struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewHomeAssistant creates a Provider backed by a Home Assistant server.
// The HTTP client is built once and reused across every poll.
func NewHomeAssistant(cfg HomeAssistantConfig) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultHTTPTimeout
	}

	return &homeAssistant{
		url:        fmt.Sprintf("http://%s:%d/api/states/%s", cfg.ServerIP, cfg.ServerPort, cfg.EntityID),
		token:      cfg.BearerToken,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch issues one GET against /api/states/{entity_id} and normalizes the
// response. The status code is not inspected: an error document that still
// parses as JSON reads as an off bulb, while a body that fails to decode
// surfaces as an error.
func (h *homeAssistant) Fetch(ctx context.Context) (State, error) {
	errFactory := errors.New()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return State{}, errFactory.Wrap(ErrFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return State{}, errFactory.Wrap(ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return State{}, errFactory.Wrap(ErrDecodeFailed, err)
	}

	return haState(doc), nil
}

// Close releases pooled connections held by the HTTP client
func (h *homeAssistant) Close() error {
	h.httpClient.CloseIdleConnections()
	return nil
}

// haState extracts on/hue/brightness from a decoded state document.
// Absent or non-numeric attributes default to zero, which is what the API
// reports for lights that are off or lack color support.
func haState(doc map[string]any) State {
	var hue, brightness float64

	if attrs, ok := doc["attributes"].(map[string]any); ok {
		if hs, ok := attrs["hs_color"].([]any); ok && len(hs) > 0 {
			if v, ok := hs[0].(float64); ok {
				hue = v
			}
		}
		if v, ok := attrs["brightness"].(float64); ok {
			brightness = v
		}
	}

	return State{
		On:         doc["state"] == "on",
		Hue:        Translate(hue, 0, haHueRangeMax, 0, 1),
		Brightness: Translate(brightness, 0, haBrightnessRangeMax, 0, 1),
	}
}
