package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casalivre/casalivre-backend/internal/clients/gotenberg"
	"github.com/casalivre/casalivre-backend/internal/services"
	"github.com/casalivre/casalivre-backend/internal/templating"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

type createDocumentRequest struct {
	Type                  string          `json:"type" binding:"required"`
	ContratoID            *uuid.UUID      `json:"contrato_id"`
	ImovelID              *uuid.UUID      `json:"imovel_id"`
	LocatarioID           *uuid.UUID      `json:"locatario_id"`
	LocadorID             *uuid.UUID      `json:"locador_id"`
	FiadorID              *uuid.UUID      `json:"fiador_id"`
	ParcelaID             *uuid.UUID      `json:"parcela_id"`
	CustomData            templating.Data `json:"custom_data"`
	RequiresSignature     *bool           `json:"requires_signature"`
	SignatureDeadlineDays *int            `json:"signature_deadline_days"`
	GeneratedBy           string          `json:"generated_by" binding:"required"`
}

func (dh *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	doc, err := dh.documentService.Generate(c.Request.Context(), services.GenerateInput{
		Type:                  req.Type,
		ContratoID:            req.ContratoID,
		ImovelID:              req.ImovelID,
		LocatarioID:           req.LocatarioID,
		LocadorID:             req.LocadorID,
		FiadorID:              req.FiadorID,
		ParcelaID:             req.ParcelaID,
		CustomData:            req.CustomData,
		RequiresSignature:     req.RequiresSignature,
		SignatureDeadlineDays: req.SignatureDeadlineDays,
		GeneratedBy:           req.GeneratedBy,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

func (dh *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	doc, err := dh.documentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"document": doc})
}

func (dh *DocumentHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	doc, err := dh.documentService.Finalize(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"document": doc})
}

type sendDocumentRequest struct {
	Signers []struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
		CPF   string `json:"cpf"`
		Role  string `json:"role"`
		Order int    `json:"order"`
	} `json:"signers" binding:"required,min=1"`
}

func (dh *DocumentHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req sendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	signers := make([]services.SignerInput, len(req.Signers))
	for i, signer := range req.Signers {
		signers[i] = services.SignerInput{
			Name:  signer.Name,
			Email: signer.Email,
			CPF:   signer.CPF,
			Role:  signer.Role,
			Order: signer.Order,
		}
	}
	doc, sigs, err := dh.documentService.Send(c.Request.Context(), id, signers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"document": doc, "signatures": sigs})
}

type cancelDocumentRequest struct {
	CancelledBy string `json:"cancelled_by" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

func (dh *DocumentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req cancelDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	doc, err := dh.documentService.Cancel(c.Request.Context(), id, req.CancelledBy, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"document": doc})
}

func (dh *DocumentHandler) GetPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	pdf, err := dh.documentService.RenderPDF(c.Request.Context(), id, gotenberg.RenderOptions{
		Margins: gotenberg.DefaultMargins(),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (dh *DocumentHandler) ExpireSweep(c *gin.Context) {
	expired, err := dh.documentService.ExpireSweep(c.Request.Context(), time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"expired": expired})
}

type signRequest struct {
	IP string `json:"ip"`
}

func (dh *DocumentHandler) Sign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req signRequest
	_ = c.ShouldBindJSON(&req)
	ip := req.IP
	if ip == "" {
		ip = c.ClientIP()
	}
	doc, err := dh.documentService.RegisterSignature(c.Request.Context(), id, ip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"document": doc})
}

type refuseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (dh *DocumentHandler) Refuse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req refuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	doc, err := dh.documentService.RefuseSignature(c.Request.Context(), id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"document": doc})
}
