package interceptor

import "errors"

var ErrDeviceRead = errors.New("error reading from source device")
