package timelog

import "errors"

var ErrTimeLogNotFound = errors.New("time log not found")
