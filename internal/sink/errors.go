package sink

import "errors"

var ErrCreateFailed = errors.New("failed to create virtual device")
