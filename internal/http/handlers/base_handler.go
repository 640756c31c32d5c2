// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"github.com/gin-gonic/gin"
)

const badRequestPrefix = "请求参数错误: "

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts client ids made of letters, digits, '-' and '_', up to 64 chars.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}
