package bulb

import "context"

// FakeProvider returns a scripted sequence of states for test assertions.
type FakeProvider struct {
	// States are returned by successive Fetch calls. Once the script runs
	// out the last state repeats.
	States []State

	// Errs, when a non-nil entry matches the call index, is returned from
	// Fetch instead of a state.
	Errs []error

	// Calls counts Fetch invocations.
	Calls int

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeProvider creates a FakeProvider for testing.
func NewFakeProvider(states ...State) *FakeProvider {
	return &FakeProvider{States: states}
}

// Fetch returns the next scripted state or error.
func (f *FakeProvider) Fetch(_ context.Context) (State, error) {
	i := f.Calls
	f.Calls++

	if i < len(f.Errs) && f.Errs[i] != nil {
		return State{}, f.Errs[i]
	}

	if len(f.States) == 0 {
		return State{}, nil
	}
	if i >= len(f.States) {
		i = len(f.States) - 1
	}

	return f.States[i], nil
}

// Close marks the provider as closed.
func (f *FakeProvider) Close() error {
	f.Closed = true
	return nil
}
