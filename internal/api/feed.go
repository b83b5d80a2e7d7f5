package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// feedRandom draws one random visible video, excluding the ids the
// client has already seen. Unparseable exclude entries are dropped
// rather than failing the request.
func (r *Router) feedRandom(c *gin.Context) {
	exclude := parseIDList(c.Query("exclude"))
	post, err := r.selector.PickRandom(c.Request.Context(), exclude, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusOK, gin.H{"post": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (r *Router) feedFirstTwo(c *gin.Context) {
	posts, err := r.selector.FirstTwo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// parseIDList splits a comma-separated id list, dropping entries
// that do not parse as positive integers.
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
