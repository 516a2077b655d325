package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/citysafe/citysafe-go/internal/models"
)

func (s *Server) getAllPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.store.allPosts()})
}

func (s *Server) getPostByID(c *gin.Context) {
	id := c.Query("id")
	post, ok := s.store.postByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"resp":   post,
			"isSame": post.User.ID == currentUserID(c),
		},
	})
}

// addPost accepts the multipart report form. Image bytes are not kept; each
// upload becomes a synthetic URL the way the real backend returns CDN paths.
func (s *Server) addPost(c *gin.Context) {
	text := c.PostForm("text")
	postType := c.PostForm("type")
	location := c.PostForm("location")
	tags := c.PostFormArray("tags")

	if strings.TrimSpace(text) == "" || postType == "" || location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	user, _ := s.store.userByID(currentUserID(c))
	post := models.Post{
		Text:     text,
		Type:     postType,
		Location: location,
		Tags:     tags,
		Images:   imageURLs(c),
		User:     user,
	}

	created := s.store.createPost(post)
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (s *Server) editPost(c *gin.Context) {
	id := c.PostForm("id")
	post, ok := s.store.postByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if post.User.ID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only edit your own posts"})
		return
	}

	images := imageURLs(c)
	updated, _ := s.store.mutatePost(id, func(p *models.Post) {
		if text := c.PostForm("text"); text != "" {
			p.Text = text
		}
		if postType := c.PostForm("type"); postType != "" {
			p.Type = postType
		}
		if location := c.PostForm("location"); location != "" {
			p.Location = location
		}
		if tags := c.PostFormArray("tags"); len(tags) > 0 {
			p.Tags = tags
		}
		if len(images) > 0 {
			p.Images = images
		}
	})

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func imageURLs(c *gin.Context) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	var urls []string
	for _, f := range form.File["images"] {
		urls = append(urls, "/uploads/"+uuid.NewString()+"-"+f.Filename)
	}
	return urls
}

func (s *Server) deletePost(c *gin.Context) {
	found, owned := s.store.deletePost(c.Param("id"), currentUserID(c))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if !owned {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (s *Server) likePost(c *gin.Context) {
	s.vote(c, true)
}

func (s *Server) downvotePost(c *gin.Context) {
	s.vote(c, false)
}

func (s *Server) vote(c *gin.Context, like bool) {
	userID := currentUserID(c)
	post, ok := s.store.toggleVote(c.Param("id"), userID, like)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"liked":          post.HasLiked(userID),
		"downVoted":      post.HasDownvoted(userID),
		"likesCount":     post.Likes.Count,
		"downVotesCount": post.DownVotes.Count,
	})
}

func (s *Server) addComment(c *gin.Context) {
	var input struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
		Text string `json:"text" binding:"required"`
		Post string `json:"post" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Comment cannot be empty"})
		return
	}

	author, ok := s.store.userByID(currentUserID(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unknown user"})
		return
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		User:      author,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if _, ok := s.store.mutatePost(input.Post, func(p *models.Post) {
		p.Comments = append(p.Comments, comment)
	}); !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (s *Server) deleteComment(c *gin.Context) {
	commentID := c.Param("id")
	postID := c.Query("postId")
	userID := currentUserID(c)

	var found, owned bool
	if _, ok := s.store.mutatePost(postID, func(p *models.Post) {
		for i, cm := range p.Comments {
			if cm.ID != commentID {
				continue
			}
			found = true
			if cm.User.ID != userID {
				return
			}
			owned = true
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return
		}
	}); !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	if !owned {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
