package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mcpforge/mcpforge/internal/model"
	"github.com/mcpforge/mcpforge/pkg/types"
)

func (s *Server) listServersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

		servers, total, err := s.serverService.List(page, perPage)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"servers":  servers,
			"total":    total,
			"page":     page,
			"per_page": perPage,
		})
	}
}

func (s *Server) getServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		server, err := s.serverService.Get(id)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, server)
	}
}

func (s *Server) createServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input types.CreateServerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		status, err := types.ValidateServerStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		version := input.Version
		if version == "" {
			version = "1.0.0"
		}
		server := &model.Server{
			Name:        input.Name,
			Version:     version,
			Description: input.Description,
			Status:      status,
		}
		if input.Config != nil {
			built, err := model.NewServer(input.Config, status)
			if err != nil {
				renderError(c, err)
				return
			}
			built.Name = input.Name
			built.Version = version
			built.Description = input.Description
			server = built
		}

		created, err := s.serverService.Create(server)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (s *Server) updateServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var input types.CreateServerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]any{}
		if input.Name != "" {
			updates["name"] = input.Name
		}
		if input.Version != "" {
			updates["version"] = input.Version
		}
		if input.Description != "" {
			updates["description"] = input.Description
		}
		if input.Status != "" {
			status, err := types.ValidateServerStatus(input.Status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["status"] = status
		}

		updated, err := s.serverService.Update(id, updates)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (s *Server) deleteServerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		if err := s.serverService.Delete(id); err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func (s *Server) listServerToolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		server, err := s.serverService.Get(id)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tools": server.Tools})
	}
}

func (s *Server) toggleToolHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		toolID, err := strconv.ParseUint(c.Param("toolId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tool id"})
			return
		}

		var input struct {
			IsActive bool `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		tool, err := s.serverService.SetToolActive(id, uint(toolID), input.IsActive)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, tool)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid server id"})
		return 0, false
	}
	return uint(id), true
}
