// Package api contains the request and response types of the HTTP API.
// Field names and JSON tags follow the OpenAPI document in api/openapi.yaml.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for BlogStatus.
const (
	Public  BlogStatus = "public"
	Private BlogStatus = "private"
)

// Defines values for HealthStatusStatus.
const (
	Healthy   HealthStatusStatus = "healthy"
	Unhealthy HealthStatusStatus = "unhealthy"
	Degraded  HealthStatusStatus = "degraded"
)

// Defines values for HealthStatusChecksDatabase.
const (
	Up   HealthStatusChecksDatabase = "up"
	Down HealthStatusChecksDatabase = "down"
)

// BlogStatus is the visibility of a blog.
type BlogStatus string

// HealthStatusStatus is the overall health of the service.
type HealthStatusStatus string

// HealthStatusChecksDatabase is the state of the database check.
type HealthStatusChecksDatabase string

// Blog is the full blog representation, body included.
type Blog struct {
	Id        openapi_types.UUID `json:"id"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Excerpt   string             `json:"excerpt"`
	Slug      string             `json:"slug"`
	Status    BlogStatus         `json:"status"`
	AuthorId  openapi_types.UUID `json:"author_id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// BlogSummary is the lightweight blog representation used in listings.
type BlogSummary struct {
	Id         openapi_types.UUID `json:"id"`
	Title      string             `json:"title"`
	Excerpt    string             `json:"excerpt"`
	Slug       string             `json:"slug"`
	Status     BlogStatus         `json:"status"`
	AuthorId   openapi_types.UUID `json:"author_id"`
	AuthorName string             `json:"author_name"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CreateBlogRequest is the payload for creating a blog. The author is
// never part of the payload; it is taken from the authenticated caller.
type CreateBlogRequest struct {
	Title   string     `json:"title"`
	Body    string     `json:"body"`
	Excerpt string     `json:"excerpt"`
	Status  BlogStatus `json:"status"`
}

// UpdateBlogRequest is the payload for updating a blog. All fields are
// optional; absent fields leave the stored value untouched.
type UpdateBlogRequest struct {
	Title   *string     `json:"title,omitempty"`
	Body    *string     `json:"body,omitempty"`
	Excerpt *string     `json:"excerpt,omitempty"`
	Status  *BlogStatus `json:"status,omitempty"`
}

// PaginatedBlogs is a page of blog summaries plus pagination metadata.
type PaginatedBlogs struct {
	Data []BlogSummary  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// PaginationMeta describes the position of a page within the full result set.
type PaginationMeta struct {
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
}

// ListBlogsParams are the query parameters accepted by the listing endpoints.
type ListBlogsParams struct {
	Page     *int                `json:"page,omitempty"`
	Limit    *int                `json:"limit,omitempty"`
	AuthorId *openapi_types.UUID `json:"author_id,omitempty"`
	SortBy   *string             `json:"sort_by,omitempty"`
	SortDesc *bool               `json:"sort_desc,omitempty"`
}

// User is the public user representation.
type User struct {
	Id          openapi_types.UUID `json:"id"`
	Username    string             `json:"username"`
	DisplayName string             `json:"display_name"`
	Bio         string             `json:"bio,omitempty"`
	AvatarUrl   string             `json:"avatar_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// UserProfile is the authenticated user's own representation, email included.
type UserProfile struct {
	Id          openapi_types.UUID `json:"id"`
	Email       string             `json:"email"`
	Username    string             `json:"username"`
	DisplayName string             `json:"display_name"`
	Bio         string             `json:"bio,omitempty"`
	AvatarUrl   string             `json:"avatar_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RegisterUserRequest is the payload for registering the authenticated
// identity as an application user.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// UpdateProfileRequest is the payload for updating the caller's profile.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarUrl   *string `json:"avatar_url,omitempty"`
}

// Error is the standard error envelope.
type Error struct {
	Error        string      `json:"error"`
	Message      string      `json:"message"`
	BusinessCode *string     `json:"business_code,omitempty"`
	Context      interface{} `json:"context,omitempty"`
}

// HealthStatus is the response of the health probes.
type HealthStatus struct {
	Status    HealthStatusStatus  `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Version   *string             `json:"version,omitempty"`
	Checks    *HealthStatusChecks `json:"checks,omitempty"`
}

// HealthStatusChecks carries the per-dependency results of a readiness probe.
type HealthStatusChecks struct {
	Database *HealthStatusChecksDatabase `json:"database,omitempty"`
}
