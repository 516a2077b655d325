package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/citysafe/citysafe-go/internal/models"
)

func (s *Server) getOwnProfile(c *gin.Context) {
	s.profileResponse(c, currentUserID(c))
}

func (s *Server) getUserProfile(c *gin.Context) {
	s.profileResponse(c, c.Param("id"))
}

func (s *Server) profileResponse(c *gin.Context, id string) {
	user, ok := s.store.userByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"posts": s.store.postsByUser(id),
	})
}

func (s *Server) editProfile(c *gin.Context) {
	id := c.PostForm("id")
	if id != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own profile"})
		return
	}

	var picURL string
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["profilePic"]; len(files) > 0 {
			picURL = "/uploads/" + uuid.NewString() + "-" + files[0].Filename
		}
	}

	user, ok := s.store.updateUser(id, func(u *models.User) {
		if name := c.PostForm("name"); name != "" {
			u.Name = name
		}
		if username := c.PostForm("username"); username != "" {
			u.UserID = username
		}
		if bio := c.PostForm("bio"); bio != "" {
			u.Bio = bio
		}
		if picURL != "" {
			u.ProfilePic = picURL
		}
	})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
