// Package routes wires controllers and middleware into the HTTP router.
package routes

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"socialgraph/app/auth"
	"socialgraph/app/controllers"
	"socialgraph/app/metrics"
	"socialgraph/app/middleware"
	"socialgraph/app/repositories"
	"socialgraph/app/services"
)

// Dependencies are the collaborators SetupRoutes builds handlers from.
type Dependencies struct {
	Log               *logrus.Logger
	Repos             *repositories.Repositories
	Auth              *auth.Provider
	LegacyStatusCodes bool

	// Health reports whether backing stores are reachable. Optional.
	Health func(ctx context.Context) error
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(d Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(d.Log))
	router.Use(middleware.Recoverer(d.Log))
	router.Use(metrics.InstrumentHandler)
	router.Use(middleware.ContentTypeJSON)

	resp := controllers.NewResponder(d.Log, d.LegacyStatusCodes)
	authController := controllers.NewAuthController(d.Auth, resp)
	userController := controllers.NewUserController(services.NewGraphService(d.Repos.Users, d.Repos.Follows), resp)
	postController := controllers.NewPostController(services.NewPostService(d.Repos.Posts, d.Repos.Comments, d.Repos.Likes), resp)
	commentController := controllers.NewCommentController(services.NewCommentService(d.Repos.Comments, d.Repos.Posts), resp)
	likeController := controllers.NewLikeController(services.NewLikeService(d.Repos.Likes), resp)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthHandler(d.Health)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/authenticate/", authController.Authenticate).Methods(http.MethodPost)

	// Everything else requires a bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate(d.Auth, d.Log))

	protected.HandleFunc("/logout/", authController.Logout).Methods(http.MethodPost)

	// Social graph
	protected.HandleFunc("/follow/{userId:[0-9]+}/", userController.Follow).Methods(http.MethodPost)
	protected.HandleFunc("/unfollow/{userId:[0-9]+}/", userController.Unfollow).Methods(http.MethodPost)
	protected.HandleFunc("/user/", userController.Profile).Methods(http.MethodGet)

	// Posts
	protected.HandleFunc("/posts/", postController.Create).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{postId:[0-9]+}/", postController.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/all_posts/", postController.Index).Methods(http.MethodGet)

	// Engagement
	protected.HandleFunc("/like/{postId:[0-9]+}/", likeController.Like).Methods(http.MethodPost)
	protected.HandleFunc("/unlike/{postId:[0-9]+}/", likeController.Unlike).Methods(http.MethodPost)
	protected.HandleFunc("/comment/{postId:[0-9]+}/", commentController.Create).Methods(http.MethodPost)

	return router
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if check != nil {
			if err := check(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.Write([]byte(`{"status":"ok"}`))
	}
}
