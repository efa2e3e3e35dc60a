// Package exportimport moves server records between the database and portable
// JSON snapshot files.
package exportimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/internal/model"
	"github.com/mcpforge/mcpforge/pkg/types"
)

const exportTimestampLayout = "2006-01-02_150405"

// Service exports server records to snapshot files and imports them back.
type Service struct {
	db        *gorm.DB
	fs        afero.Fs
	exportDir string
	now       func() time.Time
}

// ServiceConfig holds the configuration for creating the export/import service.
type ServiceConfig struct {
	DB        *gorm.DB
	Fs        afero.Fs
	ExportDir string

	// Now overrides the clock, for tests.
	Now func() time.Time
}

func NewService(c *ServiceConfig) *Service {
	s := &Service{
		db:        c.DB,
		fs:        c.Fs,
		exportDir: c.ExportDir,
		now:       c.Now,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// snapshot is the portable on-disk form of a server record and its tools.
type snapshot struct {
	Server     snapshotServer `json:"server"`
	Tools      []snapshotTool `json:"tools"`
	ExportedAt string         `json:"exported_at"`
}

type snapshotServer struct {
	Name        string             `json:"name"`
	Version     string             `json:"version"`
	Description string             `json:"description"`
	Config      json.RawMessage    `json:"config,omitempty"`
	Status      types.ServerStatus `json:"status"`
}

type snapshotTool struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	InputSchema   json.RawMessage `json:"input_schema,omitempty"`
	HandlerClass  string          `json:"handler_class,omitempty"`
	HandlerMethod string          `json:"handler_method,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`

	// IsActive is a pointer so that a snapshot omitting the field imports
	// as active rather than inactive.
	IsActive *bool `json:"is_active"`
}

func boolPtr(b bool) *bool { return &b }

// ExportServer writes a snapshot of the named server to the export directory
// and returns the file path. The filename embeds the export timestamp so
// successive exports never overwrite each other.
func (s *Service) ExportServer(name string) (string, error) {
	var server model.Server
	if err := s.db.Preload("Tools").Where("name = ?", name).First(&server).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &errs.ServerNotFoundError{Name: name}
		}
		return "", fmt.Errorf("failed to fetch server: %w", err)
	}

	snap := snapshot{
		Server: snapshotServer{
			Name:        server.Name,
			Version:     server.Version,
			Description: server.Description,
			Config:      json.RawMessage(server.Config),
			Status:      server.Status,
		},
		Tools:      make([]snapshotTool, 0, len(server.Tools)),
		ExportedAt: s.now().Format(time.RFC3339),
	}
	for _, tool := range server.Tools {
		snap.Tools = append(snap.Tools, snapshotTool{
			Name:          tool.Name,
			Description:   tool.Description,
			InputSchema:   json.RawMessage(tool.InputSchema),
			HandlerClass:  tool.HandlerClass,
			HandlerMethod: tool.HandlerMethod,
			Metadata:      json.RawMessage(tool.Metadata),
			IsActive:      boolPtr(tool.IsActive),
		})
	}

	content, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := s.fs.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json", server.Name, s.now().Format(exportTimestampLayout))
	path := filepath.Join(s.exportDir, filename)
	if err := afero.WriteFile(s.fs, path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return path, nil
}

// ImportServer loads a snapshot file and upserts its server record, keyed by
// name. overrideName, when non-empty, replaces the snapshot's server name. A
// snapshot with no name at all gets a generated one. Tools are upserted by
// name within the server; tools already in the database but absent from the
// snapshot are left untouched.
func (s *Service) ImportServer(path, overrideName string) (*model.Server, error) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &errs.FileNotFoundError{Path: path}
	}

	var snap snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return nil, &errs.ParseError{Format: "JSON", Err: err}
	}

	name := overrideName
	if name == "" {
		name = snap.Server.Name
	}
	if name == "" {
		name = fmt.Sprintf("imported-server-%d", s.now().Unix())
	}

	version := snap.Server.Version
	if version == "" {
		version = "1.0.0"
	}
	description := snap.Server.Description
	if description == "" {
		description = "Imported server"
	}
	status := snap.Server.Status
	if status == "" {
		status = types.ServerStatusInactive
	}

	var server model.Server
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txErr := tx.Where("name = ?", name).First(&server).Error
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			server = model.Server{
				Name:        name,
				Version:     version,
				Description: description,
				Config:      datatypes.JSON(snap.Server.Config),
				Status:      status,
			}
			if txErr := tx.Create(&server).Error; txErr != nil {
				return fmt.Errorf("failed to create server: %w", txErr)
			}
		case txErr != nil:
			return fmt.Errorf("failed to fetch server: %w", txErr)
		default:
			server.Version = version
			server.Description = description
			server.Config = datatypes.JSON(snap.Server.Config)
			server.Status = status
			if txErr := tx.Save(&server).Error; txErr != nil {
				return fmt.Errorf("failed to update server: %w", txErr)
			}
		}

		for _, tool := range snap.Tools {
			if txErr := upsertTool(tx, server.ID, tool); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var fresh model.Server
	if err := s.db.Preload("Tools").First(&fresh, server.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload imported server: %w", err)
	}
	return &fresh, nil
}

func upsertTool(tx *gorm.DB, serverID uint, tool snapshotTool) error {
	var row model.Tool
	err := tx.Where("server_id = ? AND name = ?", serverID, tool.Name).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to fetch tool %s: %w", tool.Name, err)
	}

	row.Name = tool.Name
	row.Description = tool.Description
	row.InputSchema = datatypes.JSON(tool.InputSchema)
	row.HandlerClass = tool.HandlerClass
	row.HandlerMethod = tool.HandlerMethod
	row.Metadata = datatypes.JSON(tool.Metadata)
	row.IsActive = tool.IsActive == nil || *tool.IsActive
	row.ServerID = serverID

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create tool %s: %w", tool.Name, err)
		}
		return nil
	}
	if err := tx.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update tool %s: %w", tool.Name, err)
	}
	return nil
}
