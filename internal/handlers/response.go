package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/clients/gotenberg"
	"github.com/casalivre/casalivre-backend/internal/lifecycle"
	"github.com/casalivre/casalivre-backend/internal/numbering"
	"github.com/casalivre/casalivre-backend/internal/services"
	"github.com/casalivre/casalivre-backend/internal/templates"
	"github.com/casalivre/casalivre-backend/internal/templating"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the domain's distinct failure kinds to HTTP statuses
// so handlers don't repeat the errors.As ladder.
func RespondDomainError(c *gin.Context, err error) {
	var (
		incomplete *services.IncompleteDataError
		transition *lifecycle.InvalidTransitionError
		syntax     *templating.SyntaxError
		malformed  *numbering.MalformedNumberError
		render     *gotenberg.RenderError
	)
	switch {
	case errors.Is(err, templates.ErrTemplateNotFound):
		RespondError(c, http.StatusNotFound, "template_not_found", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{
			Error: APIError{
				Message: incomplete.Error(),
				Code:    "incomplete_data",
				Details: gin.H{"missing_paths": incomplete.MissingPaths},
			},
		})
	case errors.As(err, &transition):
		RespondError(c, http.StatusConflict, "invalid_transition", err)
	case errors.As(err, &syntax):
		RespondError(c, http.StatusUnprocessableEntity, "template_syntax", err)
	case errors.Is(err, numbering.ErrSequenceOverflow), errors.As(err, &malformed):
		RespondError(c, http.StatusInternalServerError, "numbering", err)
	case errors.As(err, &render):
		RespondError(c, http.StatusBadGateway, "pdf_rendering", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
