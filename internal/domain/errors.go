package domain

import "errors"

var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrStorageFailed       = errors.New("persisting uploaded file failed")
	ErrNoText              = errors.New("no text provided for analysis")
	ErrAPIKeyMissing       = errors.New("groq api key not configured")
)
