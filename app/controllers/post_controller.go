package controllers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"chirper/app/middleware"
	"chirper/app/repositories"
	"chirper/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts and feeds.
type PostController struct {
	postService *services.PostService
	feedService *services.FeedService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, feedService *services.FeedService) *PostController {
	return &PostController{
		postService: postService,
		feedService: feedService,
	}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.AuthorID(r)

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), authorID, req.Content)
	if err != nil {
		pc.sendServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// ListAll handles GET /api/posts/all
func (pc *PostController) ListAll(w http.ResponseWriter, r *http.Request) {
	feed, err := pc.feedService.GetRecentPosts(r.Context())
	if err != nil {
		pc.sendServiceError(w, err)
		return
	}
	pc.sendJSON(w, feed)
}

// ListByAuthor handles GET /api/posts/byAuthor/{authorId}
func (pc *PostController) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := mux.Vars(r)["authorId"]

	feed, err := pc.feedService.GetPostsByAuthor(r.Context(), authorID)
	if err != nil {
		pc.sendServiceError(w, err)
		return
	}
	pc.sendJSON(w, feed)
}

// Show handles GET /api/posts/byId/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, err := pc.feedService.GetPost(r.Context(), id)
	if err != nil {
		pc.sendServiceError(w, err)
		return
	}
	pc.sendJSON(w, entry)
}

// Helper methods for consistent response handling

func (pc *PostController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// sendServiceError maps the service error taxonomy onto HTTP statuses.
func (pc *PostController) sendServiceError(w http.ResponseWriter, err error) {
	var rle *services.RateLimitedError
	switch {
	case errors.As(err, &rle):
		if secs := int(math.Ceil(rle.RetryAfter.Seconds())); secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		pc.sendError(w, "Too many posts, slow down", http.StatusTooManyRequests)
	case errors.Is(err, services.ErrValidation):
		pc.sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		pc.sendError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, services.ErrStoreUnavailable):
		pc.sendError(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, services.ErrAuthorNotFound):
		pc.sendError(w, "Internal server error", http.StatusInternalServerError)
	default:
		pc.sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}
