package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcpforge/mcpforge/internal/errs"
)

func (s *Server) listConfigsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.configStore == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "config store is not configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"configs": s.configStore.GetAllConfigs()})
	}
}

func (s *Server) getConfigHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.configStore == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "config store is not configured"})
			return
		}
		name := c.Param("name")
		cfg, ok := s.configStore.LoadConfig(name)
		if !ok {
			renderError(c, &errs.FileNotFoundError{Path: s.configStore.ConfigPath(name)})
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

func (s *Server) deleteConfigHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.configStore == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "config store is not configured"})
			return
		}
		name := c.Param("name")
		if !s.configStore.DeleteConfig(name) {
			renderError(c, &errs.FileNotFoundError{Path: s.configStore.ConfigPath(name)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
