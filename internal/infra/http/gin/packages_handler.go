package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tripquote/internal/app/bus"
	"tripquote/internal/app/dto"
	packagesapp "tripquote/internal/app/handlers/packages"
)

// PackagesHandler serves the pricing table.
type PackagesHandler struct {
	Queries bus.Bus
}

func (h PackagesHandler) List(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "packages unavailable"})
		return
	}
	table, err := bus.Dispatch[packagesapp.ListPackagesQuery, dto.PackageTable](c.Request.Context(), h.Queries, packagesapp.ListPackagesQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

var _ PackagesHTTP = PackagesHandler{}
