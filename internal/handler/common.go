package handler

import (
	"errors"
	"net/http"
	"strconv"

	"afiliasi/internal/domain"

	"github.com/gin-gonic/gin"
)

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// writeDomainError maps the domain sentinels onto HTTP statuses; anything
// unrecognized becomes a 500 with the fallback message.
func writeDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"amount": err.Error()}})
	case errors.Is(err, domain.ErrBelowMinPayout):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"amount": err.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
