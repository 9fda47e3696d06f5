package util

import "github.com/gin-gonic/gin"

// Response is the payload map used by success responses.
type Response map[string]interface{}

// JSON writes a success payload with the given HTTP status.
func JSON(c *gin.Context, status int, data Response) {
	c.JSON(status, data)
}

// Error 统一错误返回：{"error": "..."}
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"error": msg,
	})
}
