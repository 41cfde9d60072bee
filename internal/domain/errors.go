package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrTranscriptRequired   = errors.New("transcript is required")
	ErrRecordRequired       = errors.New("form data is required")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds maximum allowed size")
	ErrNoDocument           = errors.New("no document generated for this session")
	ErrRenderFailed         = errors.New("document rendering failed")
)
