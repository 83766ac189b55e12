package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/calebh/storyspace/internal/adapters/api"
	"github.com/calebh/storyspace/internal/adapters/rest/middleware"
	"github.com/calebh/storyspace/internal/blogs/application"
	"github.com/calebh/storyspace/internal/blogs/domain"
	"github.com/calebh/storyspace/internal/blogs/ports"
	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// BlogListingPath is where a denied modify attempt gets redirected. A
// user poking at someone else's blog lands back on the public listing
// instead of an error page.
const BlogListingPath = "/api/v1/blogs"

// BlogsHandler handles HTTP requests for blogs
type BlogsHandler struct {
	*BaseHandler
	service *application.BlogsService
}

// NewBlogsHandler creates a new blogs handler
func NewBlogsHandler(base *BaseHandler, service *application.BlogsService) *BlogsHandler {
	return &BlogsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateBlog creates a new blog owned by the authenticated user
func (h *BlogsHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	var req api.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	status := domain.BlogStatus(req.Status)
	if req.Status == "" {
		status = domain.BlogStatusPublic
	}

	params := application.CreateBlogParams{
		Title:   req.Title,
		Body:    req.Body,
		Excerpt: req.Excerpt,
		Status:  status,
	}

	blog, err := h.service.CreateBlog(r.Context(), userID, params)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainBlogToAPI(blog), http.StatusCreated)
}

// GetBlog retrieves a single blog by ID. The route is public; a private
// blog is only returned to its owner and looks absent to everyone else.
func (h *BlogsHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blogID, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	actorID := middleware.ActorID(r.Context())

	blog, err := h.service.GetBlog(r.Context(), actorID, blogID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainBlogToAPI(blog), http.StatusOK)
}

// GetBlogBySlug retrieves a blog by its slug with the same visibility
// rules as GetBlog
func (h *BlogsHandler) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	actorID := middleware.ActorID(r.Context())

	blog, err := h.service.GetBlogBySlug(r.Context(), actorID, slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainBlogToAPI(blog), http.StatusOK)
}

// GetBlogForEdit returns the editable blog for its owner. A non-owner is
// redirected to the listing, not shown an error.
func (h *BlogsHandler) GetBlogForEdit(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	blogID, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	blog, err := h.service.GetBlogForEdit(r.Context(), userID, blogID)
	if err != nil {
		h.handleBlogError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainBlogToAPI(blog), http.StatusOK)
}

// UpdateBlog updates a blog owned by the authenticated user. Absent
// request fields keep their stored values.
func (h *BlogsHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	blogID, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	var req api.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	// Fetch through the edit path first so partial updates merge onto the
	// current state. This also front-loads the ownership check.
	current, err := h.service.GetBlogForEdit(r.Context(), userID, blogID)
	if err != nil {
		h.handleBlogError(w, r, err)
		return
	}

	params := application.UpdateBlogParams{
		Title:   current.Title,
		Body:    current.Body,
		Excerpt: current.Excerpt,
		Status:  current.Status,
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Body != nil {
		params.Body = *req.Body
	}
	if req.Excerpt != nil {
		params.Excerpt = *req.Excerpt
	}
	if req.Status != nil {
		params.Status = domain.BlogStatus(*req.Status)
	}

	blog, err := h.service.UpdateBlog(r.Context(), userID, blogID, params)
	if err != nil {
		h.handleBlogError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainBlogToAPI(blog), http.StatusOK)
}

// DeleteBlog deletes a blog owned by the authenticated user
func (h *BlogsHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	blogID, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBlog(r.Context(), userID, blogID); err != nil {
		h.handleBlogError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBlogs returns a paginated list of public blogs, newest first
func (h *BlogsHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)

	summaries, total, err := h.service.ListPublic(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildPaginatedBlogsResponse(summaries, total, filter), http.StatusOK)
}

// GetUserBlogs returns one author's public blogs
func (h *BlogsHandler) GetUserBlogs(w http.ResponseWriter, r *http.Request) {
	authorID, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	filter := parseListFilter(r)

	summaries, total, err := h.service.ListByAuthor(r.Context(), authorID, filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildPaginatedBlogsResponse(summaries, total, filter), http.StatusOK)
}

// GetDashboardBlogs returns all of the authenticated user's own blogs,
// private ones included
func (h *BlogsHandler) GetDashboardBlogs(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	filter := parseListFilter(r)

	summaries, total, err := h.service.ListOwnedBy(r.Context(), userID, filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildPaginatedBlogsResponse(summaries, total, filter), http.StatusOK)
}

// handleBlogError is HandleError plus the ownership special case: a
// modify attempt on someone else's blog answers with a redirect to the
// public listing.
func (h *BlogsHandler) handleBlogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, application.ErrNotBlogOwner) {
		http.Redirect(w, r, BlogListingPath, http.StatusSeeOther)
		return
	}
	h.HandleError(w, r, err)
}

// Helper functions

func domainBlogToAPI(blog *domain.Blog) api.Blog {
	return api.Blog{
		Id:        openapi_types.UUID(blog.ID),
		Title:     blog.Title,
		Body:      blog.Body,
		Excerpt:   blog.Excerpt,
		Slug:      blog.Slug,
		Status:    api.BlogStatus(blog.Status),
		AuthorId:  openapi_types.UUID(blog.AuthorID),
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
	}
}

func domainSummaryToAPI(summary *ports.BlogSummary) api.BlogSummary {
	return api.BlogSummary{
		Id:         openapi_types.UUID(summary.ID),
		Title:      summary.Title,
		Excerpt:    summary.Excerpt,
		Slug:       summary.Slug,
		Status:     api.BlogStatus(summary.Status),
		AuthorId:   openapi_types.UUID(summary.AuthorID),
		AuthorName: summary.AuthorName,
		CreatedAt:  summary.CreatedAt,
		UpdatedAt:  summary.UpdatedAt,
	}
}

func buildPaginatedBlogsResponse(summaries []*ports.BlogSummary, total int, filter ports.ListFilter) api.PaginatedBlogs {
	apiSummaries := make([]api.BlogSummary, len(summaries))
	for i, summary := range summaries {
		apiSummaries[i] = domainSummaryToAPI(summary)
	}

	itemsPerPage := filter.Limit
	if itemsPerPage == 0 {
		itemsPerPage = 20
	}
	currentPage := (filter.Offset / itemsPerPage) + 1
	totalPages := (total + itemsPerPage - 1) / itemsPerPage

	return api.PaginatedBlogs{
		Data: apiSummaries,
		Meta: api.PaginationMeta{
			TotalItems:   total,
			ItemsPerPage: itemsPerPage,
			CurrentPage:  currentPage,
			TotalPages:   totalPages,
		},
	}
}

// parseListFilter builds a list filter from query parameters. Page-based
// pagination from the API converts to offset-based for the repository.
func parseListFilter(r *http.Request) ports.ListFilter {
	filter := ports.DefaultListFilter()
	q := r.URL.Query()

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Offset = (page - 1) * filter.Limit
	}

	switch q.Get("sort_by") {
	case "updated_at":
		filter.OrderBy = ports.OrderByUpdatedAt
	case "title":
		filter.OrderBy = ports.OrderByTitle
	case "created_at":
		filter.OrderBy = ports.OrderByCreatedAt
	}

	if order := q.Get("sort_order"); order == "asc" {
		filter.OrderDesc = false
	}

	return filter
}
