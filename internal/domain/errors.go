package domain

import "errors"

var (
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrImageNotFound        = errors.New("staged image not found")
	ErrOCREngineUnavailable = errors.New("ocr engine unavailable")
	ErrOCRFailed            = errors.New("ocr extraction failed")
	ErrModelUnreachable     = errors.New("llm communication failed")
	ErrModelOutputMalformed = errors.New("llm output is not valid json")
)
