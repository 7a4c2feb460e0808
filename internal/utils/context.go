package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/types"
)

// CurrentEmail returns the verified email the session middleware
// stored in the gin context.
func CurrentEmail(ctx *gin.Context) (string, error) {
	value, exists := ctx.Get(types.ContextEmailKey)

	if !exists {
		return "", fmt.Errorf("no verified identity in context")
	}

	email, ok := value.(string)

	if !ok || email == "" {
		return "", fmt.Errorf("invalid identity in context")
	}

	return email, nil
}
