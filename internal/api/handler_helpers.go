package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shreyansh232/wysa/internal"
	"github.com/shreyansh232/wysa/internal/response"
)

// HandleError logs the underlying cause with the request ID and sends the
// caller only the given message. Store errors never leak details.
func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	c.JSON(status, response.NewFailure(msg))
}
