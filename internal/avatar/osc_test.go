package avatar_test

import (
	"net"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/avatar"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

// newUDPListener binds an ephemeral local port and returns the listener
// with its port number.
func newUDPListener(t *testing.T) (*net.UDPConn, int) {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, conn.LocalAddr().(*net.UDPAddr).Port
}

func readPacket(t *testing.T, conn *net.UDPConn) []byte {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	buf := make([]byte, 1024)
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)

	return buf[:n]
}

func TestOSCSinkSend(t *testing.T) {
	listener, port := newUDPListener(t)

	sink, err := avatar.NewOSC("127.0.0.1", port)
	require.NoError(t, err)
	defer sink.Close()

	tests := []struct {
		name    string
		address string
		value   any
	}{
		{"bool parameter", "/avatar/parameters/on", true},
		{"float parameter", "/avatar/parameters/Color", float32(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, sink.Send(tt.address, tt.value))

			want := osc.NewMessage(tt.address)
			want.Append(tt.value)
			wantBytes, err := want.MarshalBinary()
			require.NoError(t, err)

			assert.Equal(t, wantBytes, readPacket(t, listener))
		})
	}
}

func TestOSCSinkSendUnsupportedValue(t *testing.T) {
	_, port := newUDPListener(t)

	sink, err := avatar.NewOSC("127.0.0.1", port)
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Send("/avatar/parameters/on", struct{}{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, avatar.ErrEncodeFailed))
}

func TestOSCSinkSendAfterClose(t *testing.T) {
	_, port := newUDPListener(t)

	sink, err := avatar.NewOSC("127.0.0.1", port)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Send("/avatar/parameters/on", true)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, avatar.ErrSendFailed))
}

func TestNewOSCBadAddress(t *testing.T) {
	_, err := avatar.NewOSC("not an ip", 9000)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, avatar.ErrConnectFailed))
}
