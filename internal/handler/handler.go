package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/6540011013-oss/Room-Status-System/internal/apperr"
	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/middleware"
	"github.com/6540011013-oss/Room-Status-System/internal/service"
)

type actionFunc func(ctx context.Context, p params) (gin.H, error)

const defaultMaxBody = 64 << 20

// APIHandler serves every action of the room status API from one endpoint.
type APIHandler struct {
	ref     *service.ReferenceService
	rooms   *service.RoomService
	maint   *service.MaintenanceService
	maxBody int64
	actions map[string]actionFunc
}

func NewAPIHandler(ref *service.ReferenceService, rooms *service.RoomService, maint *service.MaintenanceService, maxBody int64) *APIHandler {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	h := &APIHandler{ref: ref, rooms: rooms, maint: maint, maxBody: maxBody}
	h.actions = map[string]actionFunc{
		"get_room_types":              h.getRoomTypes,
		"add_room_type":               h.addRoomType,
		"delete_room_type":            h.deleteRoomType,
		"get_maintenance_categories":  h.getMaintenanceCategories,
		"add_maintenance_category":    h.addMaintenanceCategory,
		"delete_maintenance_category": h.deleteMaintenanceCategory,
		"get_item_categories":         h.getItemCategories,
		"add_item_category":           h.addItemCategory,
		"delete_item_category":        h.deleteItemCategory,
		"get_room_state":              h.getRoomState,
		"get_all_room_states":         h.getAllRoomStates,
		"get_room_snapshots":          h.getRoomSnapshots,
		"get_room_items":              h.getRoomItems,
		"get_room_items_snapshot":     h.getRoomItemsSnapshot,
		"save_room_state":             h.saveRoomState,
		"save_room_snapshot":          h.saveRoomSnapshot,
		"save_room_items_snapshot":    h.saveRoomItemsSnapshot,
		"get_maintenance_tasks":       h.getMaintenanceTasks,
		"resolve_maintenance_task":    h.resolveMaintenanceTask,
	}
	return h
}

// Register mounts the API on /api and its legacy alias /api.php.
func (h *APIHandler) Register(r gin.IRouter) {
	for _, path := range []string{"/api", "/api.php"} {
		r.GET(path, h.Dispatch)
		r.POST(path, h.Dispatch)
	}
}

// GET|POST /api?action=...
func (h *APIHandler) Dispatch(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := readParams(c, h.maxBody)
	if err != nil {
		h.fail(c, "", err)
		return
	}
	action := p.action()
	c.Set(middleware.ActionKey, action)
	if action == "" {
		h.fail(c, action, apperr.Validation("Missing action"))
		return
	}
	fn, ok := h.actions[action]
	if !ok {
		h.fail(c, action, apperr.Validation("Unknown action"))
		return
	}

	data, err := fn(ctx, p)
	if err != nil {
		h.fail(c, action, err)
		return
	}
	resp := gin.H{"ok": true}
	for k, v := range data {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

func (h *APIHandler) fail(c *gin.Context, action string, err error) {
	status, msg := apperr.Status(err)
	log := logger.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("api.failed", "action", action, "status", status, "err", err)
	} else {
		log.Warn("api.rejected", "action", action, "status", status, "err", msg)
	}
	c.JSON(status, gin.H{"ok": false, "error": msg})
}
