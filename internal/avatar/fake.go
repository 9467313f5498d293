package avatar

// SentParam is one recorded Send call.
type SentParam struct {
	Address string
	Value   any
}

// FakeSink records sent parameters for test assertions.
type FakeSink struct {
	// Sent contains every successful Send in order.
	Sent []SentParam

	// SendErrors maps an address to the error Send returns for it.
	SendErrors map[string]error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSink creates a FakeSink for testing.
func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

// Send records the parameter write, or fails if an error is scripted for
// the address.
func (f *FakeSink) Send(address string, value any) error {
	if err := f.SendErrors[address]; err != nil {
		return err
	}

	f.Sent = append(f.Sent, SentParam{Address: address, Value: value})

	return nil
}

// Close marks the sink as closed.
func (f *FakeSink) Close() error {
	f.Closed = true
	return nil
}

// Addresses returns just the addresses of recorded sends, in order.
func (f *FakeSink) Addresses() []string {
	addrs := make([]string, 0, len(f.Sent))
	for _, p := range f.Sent {
		addrs = append(addrs, p.Address)
	}

	return addrs
}
