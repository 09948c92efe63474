package repository

import "errors"

var (
	// ErrChannelNotFound is returned when a channel cannot be found.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrPendingNotFound is returned when a pending video cannot be found.
	ErrPendingNotFound = errors.New("pending video not found")

	// ErrDuplicateChannel is returned when a channel with the same external ID already exists.
	ErrDuplicateChannel = errors.New("channel already exists")

	// ErrDuplicateVideo is returned when a video with the same external ID already exists.
	ErrDuplicateVideo = errors.New("video already exists")

	// ErrDuplicatePending is returned when a pending video with the same external ID already exists.
	ErrDuplicatePending = errors.New("pending video already exists")

	// ErrChannelNotResolved is returned when a channel reference cannot be
	// resolved against the external directory.
	ErrChannelNotResolved = errors.New("channel could not be resolved")

	// ErrObjectNotFound is returned when an archived object cannot be found.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
