package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/service"
)

// AdminHandler holds admin-only operations.
type AdminHandler struct {
	snapshotService service.SnapshotService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(snapshotService service.SnapshotService) *AdminHandler {
	return &AdminHandler{snapshotService: snapshotService}
}

// Snapshot archives the current data file to object storage and returns the
// object key it was stored under.
func (h *AdminHandler) Snapshot(c *gin.Context) {
	key, err := h.snapshotService.Snapshot(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSnapshotsDisabled) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to archive snapshot.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "key": key})
}
