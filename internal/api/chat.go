package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (r *Router) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	message, err := r.chat.Send(c.Request.Context(), viewerID(c), req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

type sharePostRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	PostID     int64  `json:"post_id" binding:"required"`
	Content    string `json:"content"`
}

func (r *Router) sharePost(c *gin.Context) {
	var req sharePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	message, err := r.chat.SharePost(c.Request.Context(), viewerID(c), req.ReceiverID, req.PostID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func (r *Router) conversation(c *gin.Context) {
	peerID, ok := pathID(c, "peer")
	if !ok {
		return
	}
	messages, err := r.chat.Conversation(c.Request.Context(), viewerID(c), peerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (r *Router) allMessages(c *gin.Context) {
	messages, err := r.chat.ForUser(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (r *Router) markConversationRead(c *gin.Context) {
	peerID, ok := pathID(c, "peer")
	if !ok {
		return
	}
	changed, err := r.chat.MarkRead(c.Request.Context(), viewerID(c), peerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}
