package leave

import "errors"

var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrLeaveAlreadyReviewed = errors.New("leave request has already been reviewed")
	ErrLeaveOverlap         = errors.New("leave request overlaps an existing request")
)
