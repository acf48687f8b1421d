package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/db"
	"github.com/SteveHaveIt/Blog/model"
)

type createPostRequest struct {
	Type     model.PostType `json:"type" binding:"required"`
	Title    string         `json:"title"`
	Content  string         `json:"content" binding:"required"`
	MediaURL string         `json:"media_url" binding:"omitempty,url"`
	Author   string         `json:"author"`
	Tags     []string       `json:"tags"`
}

// createPost accepts content from external sources. New posts start as
// drafts; publishing is a separate call.
func (s *Server) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of blog, vlog, story"})
		return
	}

	post, err := s.store.CreatePost(c.Request.Context(), model.InsertPost{
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		Author:    req.Author,
		Tags:      req.Tags,
		Published: false,
	})
	if err != nil {
		log.Error().Err(err).Msg("error creating post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content received and stored", "data": post})
}

// listPosts returns posts for website consumption, optionally filtered
// by type and published status.
func (s *Server) listPosts(c *gin.Context) {
	var filter model.PostFilter

	if t := c.Query("type"); t != "" {
		postType := model.PostType(t)
		if !postType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of blog, vlog, story"})
			return
		}
		filter.Type = postType
	}
	if p := c.Query("published"); p != "" {
		published, err := strconv.ParseBool(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "published must be true or false"})
			return
		}
		filter.Published = &published
	}

	posts, err := s.store.Posts(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("error listing posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts, "count": len(posts)})
}

// postID validates the :id path parameter as a UUID.
func postID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return "", false
	}
	return id, true
}

func (s *Server) getPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := s.store.PostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("error fetching post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *Server) updatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var updates model.UpdatePost
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if updates.Type != nil && !updates.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of blog, vlog, story"})
		return
	}

	post, err := s.store.UpdatePost(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("error updating post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully", "data": post})
}

func (s *Server) publishPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := s.store.PublishPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("error publishing post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post published successfully", "data": post})
}

func (s *Server) deletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := s.store.DeletePost(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Str("post_id", id).Msg("error deleting post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully", "success": true})
}
