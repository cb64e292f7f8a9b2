package utils

import "github.com/gin-gonic/gin"

// The external API speaks in bare payloads, not an envelope: successful
// responses are the resource itself, failures are {"error": "..."}.

func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}
