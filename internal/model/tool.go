package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tool is one tool descriptor belonging to a server row.
type Tool struct {
	gorm.Model

	// Name is unique only within the owning server. Two servers CAN each
	// hold a tool with the same name.
	Name string `json:"name" gorm:"not null"`

	Description string `json:"description"`

	// InputSchema is the JSON schema describing the tool's parameters.
	InputSchema datatypes.JSON `json:"input_schema" gorm:"type:jsonb"`

	// HandlerClass and HandlerMethod optionally point at the generated
	// handler stub that implements the tool.
	HandlerClass  string `json:"handler_class"`
	HandlerMethod string `json:"handler_method"`

	// Metadata carries source-specific detail, e.g. the originating route
	// URI and HTTP method for route-derived tools.
	Metadata datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	// IsActive indicates whether the tool is exposed. Inactive tools stay
	// in the database but are excluded from exports of active tools.
	IsActive bool `json:"is_active" gorm:"default:true"`

	// ServerID is the ID of the server this tool belongs to.
	ServerID uint   `json:"-" gorm:"not null"`
	Server   Server `json:"-" gorm:"foreignKey:ServerID;references:ID"`
}
