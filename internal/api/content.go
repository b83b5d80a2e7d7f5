package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/content"
)

type createPostRequest struct {
	Type      string   `json:"type" binding:"required"`
	Mode      string   `json:"mode"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	VideoName string   `json:"video_name"`
	Address   string   `json:"address"`
	Sports    string   `json:"sports"`
	Topic     string   `json:"topic"`
	ImageURLs []string `json:"image_urls"`
}

func (r *Router) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := r.content.CreatePost(c.Request.Context(), content.CreatePostInput{
		AuthorID:  viewerID(c),
		Type:      req.Type,
		Mode:      req.Mode,
		Title:     req.Title,
		Content:   req.Content,
		VideoName: req.VideoName,
		Address:   req.Address,
		Sports:    req.Sports,
		Topic:     req.Topic,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (r *Router) getPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := r.content.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

func (r *Router) createComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := r.content.CreateComment(c.Request.Context(), postID, viewerID(c), req.ParentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (r *Router) listComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tree, err := r.content.CommentTree(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r *Router) updateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := r.content.UpdateComment(c.Request.Context(), id, viewerID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (r *Router) deleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := r.content.DeleteComment(c.Request.Context(), id, viewerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (r *Router) likePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	like, err := r.social.LikePost(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like": like})
}

func (r *Router) unlikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	removed, err := r.social.UnlikePost(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (r *Router) postLiked(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	liked, err := r.social.IsPostLiked(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	likedComments, err := r.social.LikedComments(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liked":          liked,
		"liked_comments": likedComments,
	})
}

func (r *Router) likeComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	like, ownerID, err := r.social.LikeComment(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like": like, "owner_id": ownerID})
}

func (r *Router) unlikeComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	removed, err := r.social.UnlikeComment(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
