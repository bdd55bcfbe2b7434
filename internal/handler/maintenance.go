package handler

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) getMaintenanceTasks(ctx context.Context, p params) (gin.H, error) {
	tasks, err := h.maint.Tasks(ctx, p.get("building"))
	if err != nil {
		return nil, err
	}
	return gin.H{"tasks": orEmpty(tasks)}, nil
}

func (h *APIHandler) resolveMaintenanceTask(ctx context.Context, p params) (gin.H, error) {
	return nil, h.maint.Resolve(ctx, p.get("building"), p.getInt64("task_id"))
}
