package controllers

import (
	"net/http"

	"socialgraph/app/metrics"
	"socialgraph/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
	resp     *Responder
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, resp *Responder) *CommentController {
	return &CommentController{comments: comments, resp: resp}
}

type commentInput struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

// Create adds the caller's comment to the post in the path
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := cc.resp.identity(w, r)
	if !ok {
		return
	}
	postID, ok := cc.resp.pathID(w, r, "postId")
	if !ok {
		return
	}

	var in commentInput
	if !cc.resp.decode(w, r, "add_comment", &in) {
		return
	}

	comment, err := cc.comments.AddComment(r.Context(), actor, postID, in.Comment)
	if err != nil {
		cc.resp.fail(w, r, "add_comment", err)
		return
	}

	metrics.RecordOperation("add_comment", metrics.OutcomeOK)
	cc.resp.sendJSON(w, http.StatusCreated, map[string]uint{"id": comment.ID})
}
