package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user is inactive")
	ErrDuplicateUsername     = errors.New("username already exists")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrDuplicateFile         = errors.New("identical file already uploaded")
	ErrFileUnreadable        = errors.New("file could not be read")
	ErrHeaderNotFound        = errors.New("no header row found")
	ErrRequiredColumnMissing = errors.New("required column missing")
	ErrInvalidChannel        = errors.New("unknown channel")
	ErrInvalidBudgetType     = errors.New("unknown budget type")
	ErrParentFileRequired    = errors.New("additional budget requires a primary parent file")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrCommentRequired       = errors.New("rejection requires a reason comment")
	ErrNotFileOwner          = errors.New("only the uploader may perform this action")
	ErrRenderFailed          = errors.New("document rendering failed")
	ErrFileNotRejected       = errors.New("only rejected files may be deleted")
)
