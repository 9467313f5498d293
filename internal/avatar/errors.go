package avatar

import "github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"

// Avatar sink error codes
const (
	ErrConnectFailed = errors.ErrorCode("avatar_connect_failed")
	ErrEncodeFailed  = errors.ErrorCode("avatar_encode_failed")
	ErrSendFailed    = errors.ErrorCode("avatar_send_failed")
)
