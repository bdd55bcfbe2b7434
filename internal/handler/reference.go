package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

func (h *APIHandler) getRoomTypes(ctx context.Context, _ params) (gin.H, error) {
	rows, err := h.ref.RoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{"room_types": orEmpty(rows)}, nil
}

func (h *APIHandler) addRoomType(ctx context.Context, p params) (gin.H, error) {
	rt := model.RoomType{ID: p.get("id"), Name: p.get("name"), Color: p.get("color")}
	if err := h.ref.SaveRoomType(ctx, rt); err != nil {
		return nil, err
	}
	return gin.H{"id": rt.ID}, nil
}

func (h *APIHandler) deleteRoomType(ctx context.Context, p params) (gin.H, error) {
	return nil, h.ref.DeleteRoomType(ctx, p.get("id"))
}

func (h *APIHandler) getMaintenanceCategories(ctx context.Context, _ params) (gin.H, error) {
	rows, err := h.ref.MaintenanceCategories(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{"maintenance_categories": orEmpty(rows)}, nil
}

func (h *APIHandler) addMaintenanceCategory(ctx context.Context, p params) (gin.H, error) {
	id, err := h.ref.AddMaintenanceCategory(ctx, p.get("name"), p.get("icon"))
	if err != nil {
		return nil, err
	}
	return gin.H{"id": id}, nil
}

func (h *APIHandler) deleteMaintenanceCategory(ctx context.Context, p params) (gin.H, error) {
	return nil, h.ref.DeleteMaintenanceCategory(ctx, p.getInt64("id"), p.get("name"))
}

func (h *APIHandler) getItemCategories(ctx context.Context, _ params) (gin.H, error) {
	rows, err := h.ref.ItemCategories(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{"item_categories": orEmpty(rows)}, nil
}

func (h *APIHandler) addItemCategory(ctx context.Context, p params) (gin.H, error) {
	return nil, h.ref.SaveItemCategory(ctx, model.ItemCategory{
		Name:      p.get("name"),
		Label:     p.get("label"),
		Icon:      p.get("icon"),
		SortOrder: p.getInt("sort_order"),
	})
}

func (h *APIHandler) deleteItemCategory(ctx context.Context, p params) (gin.H, error) {
	return nil, h.ref.DeleteItemCategory(ctx, p.get("name"))
}
