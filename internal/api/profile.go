package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/profile"
)

func (r *Router) getProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := r.profile.Get(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateFieldRequest struct {
	Value string `json:"value" binding:"required"`
}

func (r *Router) updateName(c *gin.Context) {
	r.updateProfileField(c, func(v string) profile.UpdateInput {
		return profile.UpdateInput{Fullname: &v}
	})
}

func (r *Router) updateStory(c *gin.Context) {
	r.updateProfileField(c, func(v string) profile.UpdateInput {
		return profile.UpdateInput{Story: &v}
	})
}

func (r *Router) updateAvatar(c *gin.Context) {
	r.updateProfileField(c, func(v string) profile.UpdateInput {
		return profile.UpdateInput{Avatar: &v}
	})
}

func (r *Router) updateProfileField(c *gin.Context, input func(string) profile.UpdateInput) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	account, err := r.profile.Update(c.Request.Context(), viewerID(c), input(req.Value))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account.Summary()})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (r *Router) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := r.profile.ChangePassword(c.Request.Context(), viewerID(c), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": true})
}

func (r *Router) listFollowers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	accounts, err := r.profile.Followers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (r *Router) listFollowing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	accounts, err := r.profile.Following(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}
