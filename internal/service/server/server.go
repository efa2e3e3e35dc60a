// Package server manages the registry of server records in the database.
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/internal/model"
	"github.com/mcpforge/mcpforge/pkg/types"
)

const (
	defaultPage    = 1
	defaultPerPage = 15
)

// ServerService provides methods to manage server records.
type ServerService struct {
	db *gorm.DB
}

func NewServerService(db *gorm.DB) *ServerService {
	return &ServerService{db: db}
}

// List returns one page of server records, newest first, along with the total
// record count. Non-positive page or perPage fall back to the defaults.
func (s *ServerService) List(page, perPage int) ([]model.Server, int64, error) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	var total int64
	if err := s.db.Model(&model.Server{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count servers: %w", err)
	}

	var servers []model.Server
	err := s.db.Preload("Tools").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&servers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list servers: %w", err)
	}
	return servers, total, nil
}

// Get returns the server record with the given ID, tools included.
func (s *ServerService) Get(id uint) (*model.Server, error) {
	var server model.Server
	if err := s.db.Preload("Tools").First(&server, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.ServerNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to fetch server: %w", err)
	}
	return &server, nil
}

// GetByName returns the server record with the given name, tools included.
func (s *ServerService) GetByName(name string) (*model.Server, error) {
	var server model.Server
	if err := s.db.Preload("Tools").Where("name = ?", name).First(&server).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.ServerNotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to fetch server: %w", err)
	}
	return &server, nil
}

// Create persists a new server record.
func (s *ServerService) Create(server *model.Server) (*model.Server, error) {
	if err := s.db.Create(server).Error; err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return server, nil
}

// Update applies the given fields to an existing server record and returns
// the updated record.
func (s *ServerService) Update(id uint, updates map[string]any) (*model.Server, error) {
	server, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(server).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update server: %w", err)
	}
	return s.Get(id)
}

// SetToolActive flips the active flag on one of a server's tool rows and
// returns the updated row.
func (s *ServerService) SetToolActive(serverID, toolID uint, active bool) (*model.Tool, error) {
	var tool model.Tool
	err := s.db.Where("id = ? AND server_id = ?", toolID, serverID).First(&tool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.ToolNotFoundError{ID: toolID, ServerID: serverID}
		}
		return nil, fmt.Errorf("failed to fetch tool: %w", err)
	}
	if err := s.db.Model(&tool).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}
	return &tool, nil
}

// Delete removes a server record and its tools.
func (s *ServerService) Delete(id uint) error {
	server, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("server_id = ?", server.ID).Delete(&model.Tool{}).Error; err != nil {
			return fmt.Errorf("failed to delete server tools: %w", err)
		}
		if err := tx.Unscoped().Delete(&model.Server{}, server.ID).Error; err != nil {
			return fmt.Errorf("failed to delete server: %w", err)
		}
		return nil
	})
}

// SyncFromConfig upserts a server record from a config document, keyed by the
// config's name. The server's tool rows are replaced wholesale so the database
// mirrors the document. Existing rows keep their status.
func (s *ServerService) SyncFromConfig(cfg *types.ServerConfig) (*model.Server, error) {
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize config: %w", err)
	}

	var server model.Server
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txErr := tx.Where("name = ?", cfg.Name).First(&server).Error
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			server = model.Server{
				Name:        cfg.Name,
				Version:     cfg.Version,
				Description: cfg.Description,
				Config:      configJSON,
				Status:      types.ServerStatusInactive,
			}
			if txErr := tx.Create(&server).Error; txErr != nil {
				return fmt.Errorf("failed to create server: %w", txErr)
			}
		case txErr != nil:
			return fmt.Errorf("failed to fetch server: %w", txErr)
		default:
			server.Version = cfg.Version
			server.Description = cfg.Description
			server.Config = configJSON
			if txErr := tx.Save(&server).Error; txErr != nil {
				return fmt.Errorf("failed to update server: %w", txErr)
			}
		}

		if txErr := tx.Unscoped().Where("server_id = ?", server.ID).Delete(&model.Tool{}).Error; txErr != nil {
			return fmt.Errorf("failed to clear server tools: %w", txErr)
		}
		for _, tool := range cfg.Tools {
			row, txErr := toolRow(server.ID, tool)
			if txErr != nil {
				return txErr
			}
			if txErr := tx.Create(row).Error; txErr != nil {
				return fmt.Errorf("failed to create tool %s: %w", tool.Name, txErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(server.ID)
}

func toolRow(serverID uint, tool types.ToolDescriptor) (*model.Tool, error) {
	schemaJSON, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize input schema for tool %s: %w", tool.Name, err)
	}

	row := &model.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: schemaJSON,
		IsActive:    true,
		ServerID:    serverID,
	}
	if len(tool.Metadata) > 0 {
		metadataJSON, err := json.Marshal(tool.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize metadata for tool %s: %w", tool.Name, err)
		}
		row.Metadata = metadataJSON
	}
	return row, nil
}
