// Package fakeapi is an in-memory double of the remote gateway. It serves
// every endpoint the SDK consumes with the backend's response shapes, so the
// SDK tests run against real HTTP and `citysafe devserver` gives a working
// backend for local development. State lives in memory only; persistence is
// the real backend's job.
package fakeapi

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store  *Store
	secret []byte
}

func NewServer(store *Store) *Server {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "citysafe-dev-secret"
	}
	return &Server{store: store, secret: []byte(secret)}
}

// Handler returns the configured gin engine. Tests mount it on an httptest
// server; devserver mounts it on a real port.
func (s *Server) Handler() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", s.login)
		api.POST("/auth/register", s.register)

		api.GET("/crimeReports/getAllCrimeReports", s.getAllCrimeReports)
		api.GET("/map/getAllCrimeLocation", s.getAllCrimeLocation)

		protected := api.Group("")
		protected.Use(s.authRequired())
		{
			protected.GET("/auth/me", s.me)

			protected.GET("/post/getAllPosts", s.getAllPosts)
			protected.GET("/post/getPostById", s.getPostByID)
			protected.POST("/post/addPost", s.addPost)
			protected.POST("/post/edit-post", s.editPost)
			protected.DELETE("/post/delete-post/:id", s.deletePost)
			protected.POST("/post/like/:id", s.likePost)
			protected.POST("/post/downvote/:id", s.downvotePost)
			protected.POST("/post/add-comment", s.addComment)
			protected.DELETE("/post/delete-comment/:id", s.deleteComment)

			protected.GET("/profile/getUserProfile", s.getOwnProfile)
			protected.GET("/profile/getUserProfile/:id", s.getUserProfile)
			protected.PUT("/profile/edit-profile", s.editProfile)
		}
	}

	return r
}

// NewHTTPServer wraps the handler for standalone use by devserver.
func (s *Server) NewHTTPServer(port string) *http.Server {
	if port == "" {
		port = "8080"
	}
	return &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
