package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/casalivre/casalivre-backend/internal/services"
	"github.com/casalivre/casalivre-backend/internal/templates"
)

type TemplateHandler struct {
	registry        *templates.Registry
	documentService services.DocumentService
}

func NewTemplateHandler(registry *templates.Registry, documentService services.DocumentService) *TemplateHandler {
	return &TemplateHandler{registry: registry, documentService: documentService}
}

type templateSummary struct {
	Type                string   `json:"type"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Version             int      `json:"version"`
	RequiresSignature   bool     `json:"requires_signature"`
	DefaultDeadlineDays int      `json:"default_deadline_days"`
	ExpectedPaths       []string `json:"expected_paths"`
}

func (th *TemplateHandler) List(c *gin.Context) {
	defs := th.registry.All()
	out := make([]templateSummary, len(defs))
	for i, def := range defs {
		out[i] = templateSummary{
			Type:                def.Type,
			Name:                def.Name,
			Description:         def.Description,
			Version:             def.Version,
			RequiresSignature:   def.RequiresSignature,
			DefaultDeadlineDays: def.DefaultDeadlineDays,
			ExpectedPaths:       def.ExpectedPaths,
		}
	}
	RespondOK(c, gin.H{"templates": out})
}

func (th *TemplateHandler) Lint(c *gin.Context) {
	RespondOK(c, gin.H{"results": th.documentService.LintTemplates()})
}
