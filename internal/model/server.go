package model

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mcpforge/mcpforge/pkg/types"
)

// Server is a registered server config tracked in the database.
// The canonical document lives in Config; the columns alongside it are
// denormalized for listing and lookup.
type Server struct {
	gorm.Model

	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Version string `json:"version" gorm:"not null"`

	Description string `json:"description"`

	// Config holds the full JSON server config document this row was
	// created or last synced from.
	Config datatypes.JSON `json:"config" gorm:"type:jsonb"`

	// Status is either "active" or "inactive". Inactive servers stay in
	// the database but are excluded from active listings.
	Status types.ServerStatus `json:"status" gorm:"type:varchar(20);default:'inactive'"`

	Tools []Tool `json:"tools,omitempty" gorm:"foreignKey:ServerID"`
}

// NewServer creates a server row from a config document. The document is
// embedded verbatim as the row's Config column.
func NewServer(cfg *types.ServerConfig, status types.ServerStatus) (*Server, error) {
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = types.ServerStatusInactive
	}
	return &Server{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: cfg.Description,
		Config:      configJSON,
		Status:      status,
	}, nil
}

// GetConfig unmarshals the embedded config document.
func (s *Server) GetConfig() (*types.ServerConfig, error) {
	var cfg types.ServerConfig
	if err := json.Unmarshal(s.Config, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsActive reports whether the server is in the active state.
func (s *Server) IsActive() bool {
	return s.Status == types.ServerStatusActive
}
