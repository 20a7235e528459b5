package controllers

import (
	"fmt"
	"net/http"

	"socialgraph/app/metrics"
	"socialgraph/app/services"
)

// UserController handles follow edges and the caller's profile
type UserController struct {
	graph *services.GraphService
	resp  *Responder
}

// NewUserController creates a new UserController
func NewUserController(graph *services.GraphService, resp *Responder) *UserController {
	return &UserController{graph: graph, resp: resp}
}

// Follow makes the caller follow the user in the path
func (uc *UserController) Follow(w http.ResponseWriter, r *http.Request) {
	actor, ok := uc.resp.identity(w, r)
	if !ok {
		return
	}
	targetID, ok := uc.resp.pathID(w, r, "userId")
	if !ok {
		return
	}

	target, err := uc.graph.FollowUser(r.Context(), actor, targetID)
	if err != nil {
		uc.resp.fail(w, r, "follow_user", err)
		return
	}

	metrics.RecordOperation("follow_user", metrics.OutcomeOK)
	uc.resp.sendMessage(w, fmt.Sprintf("You are now following %s!", target.Username))
}

// Unfollow removes the user in the path from the caller's following set
func (uc *UserController) Unfollow(w http.ResponseWriter, r *http.Request) {
	actor, ok := uc.resp.identity(w, r)
	if !ok {
		return
	}
	targetID, ok := uc.resp.pathID(w, r, "userId")
	if !ok {
		return
	}

	target, err := uc.graph.UnfollowUser(r.Context(), actor, targetID)
	if err != nil {
		uc.resp.fail(w, r, "unfollow_user", err)
		return
	}

	metrics.RecordOperation("unfollow_user", metrics.OutcomeOK)
	uc.resp.sendMessage(w, fmt.Sprintf("You have unfollowed %s.", target.Username))
}

// Profile returns the caller's username and follow counts
func (uc *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := uc.resp.identity(w, r)
	if !ok {
		return
	}

	profile, err := uc.graph.GetProfile(r.Context(), actor)
	if err != nil {
		uc.resp.fail(w, r, "get_profile", err)
		return
	}
	uc.resp.sendJSON(w, http.StatusOK, profile)
}
