package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// idParam returns false for anything that is not a positive integer.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func searchQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("q"))
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
