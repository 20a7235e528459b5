package controllers

import (
	"net/http"
	"time"

	"socialgraph/app/metrics"
	"socialgraph/app/services"
)

// PostController handles HTTP requests for posts
type PostController struct {
	posts *services.PostService
	resp  *Responder
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, resp *Responder) *PostController {
	return &PostController{posts: posts, resp: resp}
}

type createPostInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=10000"`
}

type postResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Create creates a post owned by the caller
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := pc.resp.identity(w, r)
	if !ok {
		return
	}

	var in createPostInput
	if !pc.resp.decode(w, r, "create_post", &in) {
		return
	}

	post, err := pc.posts.CreatePost(r.Context(), actor, in.Title, in.Description)
	if err != nil {
		pc.resp.fail(w, r, "create_post", err)
		return
	}

	metrics.RecordOperation("create_post", metrics.OutcomeOK)
	pc.resp.sendJSON(w, http.StatusCreated, postResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		CreatedAt:   post.CreatedAt,
	})
}

// Delete deletes one of the caller's posts along with its comments and likes
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := pc.resp.identity(w, r)
	if !ok {
		return
	}
	postID, ok := pc.resp.pathID(w, r, "postId")
	if !ok {
		return
	}

	if err := pc.posts.DeletePost(r.Context(), actor, postID); err != nil {
		pc.resp.fail(w, r, "delete_post", err)
		return
	}

	metrics.RecordOperation("delete_post", metrics.OutcomeOK)
	pc.resp.sendMessage(w, "Post has been deleted successfully.")
}

// Index lists the caller's posts with like counts and comments
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	actor, ok := pc.resp.identity(w, r)
	if !ok {
		return
	}

	summaries, err := pc.posts.ListOwnPosts(r.Context(), actor)
	if err != nil {
		pc.resp.fail(w, r, "list_posts", err)
		return
	}
	pc.resp.sendJSON(w, http.StatusOK, summaries)
}
