package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"budgetflow/internal/domain"
	"budgetflow/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict, "DUPLICATE_USERNAME", "username already exists"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDuplicateFile):
		return http.StatusConflict, "DUPLICATE_FILE", err.Error()
	case errors.Is(err, domain.ErrFileUnreadable):
		return http.StatusUnprocessableEntity, "FILE_UNREADABLE", err.Error()
	case errors.Is(err, domain.ErrHeaderNotFound):
		return http.StatusUnprocessableEntity, "HEADER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrRequiredColumnMissing):
		return http.StatusUnprocessableEntity, "REQUIRED_COLUMN_MISSING", err.Error()
	case errors.Is(err, domain.ErrInvalidChannel):
		return http.StatusBadRequest, "INVALID_CHANNEL", err.Error()
	case errors.Is(err, domain.ErrInvalidBudgetType):
		return http.StatusBadRequest, "INVALID_BUDGET_TYPE", err.Error()
	case errors.Is(err, domain.ErrParentFileRequired):
		return http.StatusBadRequest, "PARENT_FILE_REQUIRED", "additional budgets must reference an existing primary file"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", err.Error()
	case errors.Is(err, domain.ErrCommentRequired):
		return http.StatusBadRequest, "COMMENT_REQUIRED", "a rejection reason is required"
	case errors.Is(err, domain.ErrNotFileOwner):
		return http.StatusForbidden, "NOT_FILE_OWNER", "only the file's uploader may perform this action"
	case errors.Is(err, domain.ErrFileNotRejected):
		return http.StatusConflict, "FILE_NOT_REJECTED", "only rejected files may be deleted"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusBadGateway, "RENDER_FAILED", "PDF generation failed; the file was not advanced"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts the user ID and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (userID uuid.UUID, role domain.UserRole, ok bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return userID, role, true
}

// extractActor builds the acting user from the validated token claims.
// Returns false if auth context is missing (error response already written).
func extractActor(c *gin.Context) (*domain.User, bool) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return nil, false
	}
	return &domain.User{
		ID:       userID,
		Username: middleware.GetUsername(c),
		Role:     role,
	}, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
