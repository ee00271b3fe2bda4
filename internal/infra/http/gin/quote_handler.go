package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tripquote/internal/app/bus"
	"tripquote/internal/app/dto"
	bookingapp "tripquote/internal/app/handlers/booking"
	"tripquote/internal/domain/booking"
)

// QuoteHandler evaluates raw form fields without opening a session.
type QuoteHandler struct {
	Queries bus.Bus
}

func (h QuoteHandler) Create(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quotes unavailable"})
		return
	}
	var fields booking.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote, err := bus.Dispatch[bookingapp.QuoteQuery, dto.Quote](c.Request.Context(), h.Queries, bookingapp.QuoteQuery{Fields: fields})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

var _ QuoteHTTP = QuoteHandler{}
