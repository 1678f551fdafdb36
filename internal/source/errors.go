package source

import "errors"

var (
	ErrDeviceUnavailable     = errors.New("cannot open input device")
	ErrExclusiveAccessDenied = errors.New("cannot grab input device")
)
