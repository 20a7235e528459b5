package controllers

import (
	"net/http"

	"socialgraph/app/metrics"
	"socialgraph/app/services"
)

// LikeController handles liking and unliking posts
type LikeController struct {
	likes *services.LikeService
	resp  *Responder
}

// NewLikeController creates a new LikeController
func NewLikeController(likes *services.LikeService, resp *Responder) *LikeController {
	return &LikeController{likes: likes, resp: resp}
}

// Like likes the post in the path. Liking twice is reported, not rejected.
func (lc *LikeController) Like(w http.ResponseWriter, r *http.Request) {
	actor, ok := lc.resp.identity(w, r)
	if !ok {
		return
	}
	postID, ok := lc.resp.pathID(w, r, "postId")
	if !ok {
		return
	}

	created, err := lc.likes.LikePost(r.Context(), actor, postID)
	if err != nil {
		lc.resp.fail(w, r, "like_post", err)
		return
	}

	if !created {
		metrics.RecordOperation("like_post", metrics.OutcomeNoop)
		lc.resp.sendMessage(w, "You have already liked this post.")
		return
	}
	metrics.RecordOperation("like_post", metrics.OutcomeOK)
	lc.resp.sendMessage(w, "You have liked this post.")
}

// Unlike removes the caller's like from the post in the path
func (lc *LikeController) Unlike(w http.ResponseWriter, r *http.Request) {
	actor, ok := lc.resp.identity(w, r)
	if !ok {
		return
	}
	postID, ok := lc.resp.pathID(w, r, "postId")
	if !ok {
		return
	}

	if err := lc.likes.UnlikePost(r.Context(), actor, postID); err != nil {
		lc.resp.fail(w, r, "unlike_post", err)
		return
	}

	metrics.RecordOperation("unlike_post", metrics.OutcomeOK)
	lc.resp.sendMessage(w, "You have unliked this post.")
}
