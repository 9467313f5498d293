package bulb

import "github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"

// Bulb backend error codes
const (
	ErrInvalidBackendConfig = errors.ErrorCode("bulb_invalid_config")
	ErrConnectFailed        = errors.ErrorCode("bulb_connect_failed")
	ErrFetchFailed          = errors.ErrorCode("bulb_fetch_failed")
	ErrDecodeFailed         = errors.ErrorCode("bulb_decode_failed")
	ErrNoStateReceived      = errors.ErrorCode("bulb_no_state_received")
)
