package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tripquote/internal/app/dto"
	"tripquote/internal/app/form"
	"tripquote/internal/domain/booking"
)

// FormHandler plays the browser for a server-held booking form.
type FormHandler struct {
	Forms *form.Service
}

type formEventRequest struct {
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields"`
}

func (h FormHandler) Open(c *gin.Context) {
	if !h.available(c) {
		return
	}
	sess, err := h.Forms.Open(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapFormSession(sess, form.SubmitOutcome{}))
}

func (h FormHandler) Get(c *gin.Context) {
	if !h.available(c) {
		return
	}
	sess, err := h.Forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapFormSession(sess, form.SubmitOutcome{}))
}

func (h FormHandler) Event(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req formEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, err := form.ParseEventKind(req.Type)
	if err != nil {
		writeError(c, err)
		return
	}
	sess, err := h.Forms.Input(c.Request.Context(), c.Param("id"), kind, req.Fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapFormSession(sess, form.SubmitOutcome{}))
}

func (h FormHandler) Submit(c *gin.Context) {
	if !h.available(c) {
		return
	}
	sess, outcome, err := h.Forms.Submit(c.Request.Context(), c.Param("id"), c.GetHeader("Idempotency-Key"))
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if outcome.Accepted {
		status = http.StatusAccepted
	}
	c.JSON(status, dto.MapFormSession(sess, outcome))
}

func (h FormHandler) available(c *gin.Context) bool {
	if h.Forms == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "forms unavailable"})
		return false
	}
	return true
}

var _ FormHTTP = FormHandler{}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, form.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, form.ErrSessionIDMissing),
		errors.Is(err, form.ErrUnknownEvent),
		errors.Is(err, booking.ErrUnknownField),
		errors.Is(err, booking.ErrInvalidForm):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
