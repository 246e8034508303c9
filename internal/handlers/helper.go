package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// studentIDHeader carries the subject resolved by the identity provider
// at the edge. The exam service trusts it; authentication itself happens
// upstream.
const studentIDHeader = "X-Student-ID"

func ParseUintParam(c *gin.Context, param string) (uint, bool) {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func StudentIDFromRequest(c *gin.Context) (string, bool) {
	studentID := strings.TrimSpace(c.GetHeader(studentIDHeader))
	if studentID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "missing student identity",
			Details: studentIDHeader + " header is required",
		})
		return "", false
	}
	return studentID, true
}
