package apperror

// ErrorCode is the general, system-level error category.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInternalError    ErrorCode = "INTERNAL_SERVER_ERROR"
)

// BusinessCode is the specific business reason behind an error. Codes are
// stable identifiers that clients may branch on.
type BusinessCode string

const (
	BusinessCodeGeneral BusinessCode = "GENERAL"

	// Blogs
	BusinessCodeBlogNotFound      BusinessCode = "BLOG_NOT_FOUND"
	BusinessCodeNotBlogOwner      BusinessCode = "NOT_BLOG_OWNER"
	BusinessCodeSlugAlreadyExists BusinessCode = "SLUG_ALREADY_EXISTS"
	BusinessCodeInvalidFormat     BusinessCode = "INVALID_FORMAT"

	// Users
	BusinessCodeUserNotFound      BusinessCode = "USER_NOT_FOUND"
	BusinessCodeUserAlreadyExists BusinessCode = "USER_ALREADY_EXISTS"
	BusinessCodeInvalidEmail      BusinessCode = "INVALID_EMAIL"

	// Authorization
	BusinessCodePermissionDenied BusinessCode = "PERMISSION_DENIED"
)
