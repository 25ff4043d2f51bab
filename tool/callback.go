package tool

import (
	"maps"

	"github.com/gin-gonic/gin"
)

// FastReturnError wraps an error message in the standard response envelope.
// Share failures do NOT go through this: they land in the share state and the
// request itself still succeeds.
func FastReturnError(msg string) gin.H {
	return gin.H{
		"error": msg,
	}
}

func FastReturnSuccess() gin.H {
	return gin.H{
		"status": "ok",
	}
}

// FastReturnSuccessWithData wraps a payload (share state, affordances, config)
// in the standard data envelope.
func FastReturnSuccessWithData(data any) gin.H {
	return gin.H{
		"data": data,
	}
}

func FastReturnErrorWithData(msg string, data map[string]any) gin.H {
	resp := gin.H{
		"error": msg,
	}
	maps.Copy(resp, data)
	return resp
}
