package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/pkg/types"
)

// renderError writes the standard error envelope for an error, choosing the
// HTTP status from the error's category.
func renderError(c *gin.Context, err error) {
	c.JSON(statusFor(err), &types.ErrorEnvelope{
		Error:       err.Error(),
		Code:        errs.CodeOf(err),
		Category:    errs.CategoryOf(err),
		Suggestions: errs.SuggestionsOf(err),
	})
}

func statusFor(err error) int {
	switch errs.CategoryOf(err) {
	case errs.CategoryNotFound:
		return http.StatusNotFound
	case errs.CategoryValidation:
		return http.StatusUnprocessableEntity
	case errs.CategoryConfig:
		return http.StatusBadRequest
	case errs.CategoryPermission:
		return http.StatusForbidden
	case errs.CategoryBusinessLogic:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
