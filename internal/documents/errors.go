package documents

import "errors"

var (
	ErrNoFiles        = errors.New("no files uploaded")
	ErrUploadTooLarge = errors.New("upload too large")
)
