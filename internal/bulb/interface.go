package bulb

import "context"

// Service selects which backend a Provider is built against.
type Service string

const (
	ServiceHomeAssistant Service = "home_assistant"
	ServiceHue           Service = "hue"
	ServiceMQTT          Service = "mqtt"
)

// IsValid returns whether the service tag names a known backend
func (s Service) IsValid() bool {
	switch s {
	case ServiceHomeAssistant, ServiceHue, ServiceMQTT:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (s Service) String() string {
	return string(s)
}

// State is one observation of a bulb. Hue and Brightness are normalized
// from the backend's native ranges to [0, 1]; values outside the native
// range pass through un-clamped. States compare by full equality, so any
// differing field makes the whole observation count as changed.
type State struct {
	On         bool
	Hue        float64
	Brightness float64
}

// Provider fetches the current state of a single bulb from a backend.
// Implementations are called from one goroutine at a time. The scheduler
// depends only on this interface; additional backends implement it without
// touching any call site.
type Provider interface {
	Fetch(ctx context.Context) (State, error)
	Close() error
}
