package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses the :id route parameter as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
