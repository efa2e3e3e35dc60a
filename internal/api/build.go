package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcpforge/mcpforge/internal/validation"
	"github.com/mcpforge/mcpforge/pkg/types"
)

func (s *Server) buildServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.builder == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "builder is not configured"})
			return
		}

		var input types.BuildServerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cfg, err := s.builder.Build(c.Request.Context(), &input)
		if err != nil {
			renderError(c, err)
			return
		}

		if input.Save {
			if _, err := s.serverService.SyncFromConfig(cfg); err != nil {
				renderError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, cfg)
	}
}

func (s *Server) validateConfigHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc map[string]any
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		errors := validation.ValidateServerConfig(doc)
		c.JSON(http.StatusOK, &types.ValidationResult{
			Valid:  validation.IsValid(errors),
			Errors: errors,
		})
	}
}
