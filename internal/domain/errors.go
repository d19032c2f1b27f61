package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrWorkbookRead        = errors.New("workbook could not be read")
	ErrPDFRead             = errors.New("pdf could not be read")
	ErrImageConversion     = errors.New("pdf image conversion failed")
	ErrParserNotConfigured = errors.New("ai parser is not configured")
	ErrEmptyDocument       = errors.New("document contains no usable data")
)
