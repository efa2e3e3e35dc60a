package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) exportServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.exportImport == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export service is not configured"})
			return
		}
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		server, err := s.serverService.Get(id)
		if err != nil {
			renderError(c, err)
			return
		}

		path, err := s.exportImport.ExportServer(server.Name)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path})
	}
}

type importServerInput struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

func (s *Server) importServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.exportImport == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "import service is not configured"})
			return
		}
		var input importServerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Path == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
			return
		}

		server, err := s.exportImport.ImportServer(input.Path, input.Name)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, server)
	}
}
