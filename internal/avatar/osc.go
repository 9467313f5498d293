package avatar

import (
	"fmt"
	"net"

	"github.com/hypebeast/go-osc/osc"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

// oscSink writes OSC messages over a UDP connection dialed once at
// startup. Sends are fire-and-forget datagrams: they go out whether or
// not anything is listening on the other end.
type oscSink struct {
	conn *net.UDPConn
}

// NewOSC dials the OSC endpoint and returns a Sink bound to it
func NewOSC(ip string, port int) (Sink, error) {
	errFactory := errors.New()

	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", ip, port))
	if err != nil {
		return nil, errFactory.Wrap(ErrConnectFailed, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, errFactory.Wrap(ErrConnectFailed, err)
	}

	return &oscSink{conn: conn}, nil
}

// Send encodes one OSC message and writes it to the connection
func (s *oscSink) Send(address string, value any) error {
	errFactory := errors.New()

	msg := osc.NewMessage(address)
	msg.Append(value)

	data, err := msg.MarshalBinary()
	if err != nil {
		return errFactory.Wrap(ErrEncodeFailed, err)
	}

	if _, err := s.conn.Write(data); err != nil {
		return errFactory.Wrap(ErrSendFailed, err)
	}

	return nil
}

// Close releases the connection
func (s *oscSink) Close() error {
	return s.conn.Close()
}
