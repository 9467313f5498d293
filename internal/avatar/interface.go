package avatar

// Sink delivers avatar parameter updates to a listening client. Values are
// whatever the wire format supports; this daemon sends bools and float32s.
type Sink interface {
	Send(address string, value any) error
	Close() error
}
