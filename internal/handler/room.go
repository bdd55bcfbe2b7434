package handler

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) getRoomState(ctx context.Context, p params) (gin.H, error) {
	r, err := h.rooms.Room(ctx, p.get("building"), p.get("room_id"))
	if err != nil {
		return nil, err
	}
	return gin.H{"room": newRoomView(r)}, nil
}

func (h *APIHandler) getAllRoomStates(ctx context.Context, p params) (gin.H, error) {
	rows, err := h.rooms.Rooms(ctx, p.get("building"))
	if err != nil {
		return nil, err
	}
	return gin.H{"rooms": roomViews(rows)}, nil
}

func (h *APIHandler) getRoomSnapshots(ctx context.Context, p params) (gin.H, error) {
	rows, err := h.rooms.Snapshots(ctx, p.get("building"), p.get("snapshot_date"))
	if err != nil {
		return nil, err
	}
	return gin.H{"rooms": snapshotViews(rows)}, nil
}

func (h *APIHandler) getRoomItems(ctx context.Context, p params) (gin.H, error) {
	rows, err := h.rooms.LatestItems(ctx, p.get("building"))
	if err != nil {
		return nil, err
	}
	return gin.H{"items": orEmpty(rows)}, nil
}

func (h *APIHandler) getRoomItemsSnapshot(ctx context.Context, p params) (gin.H, error) {
	rows, err := h.rooms.ItemsOn(ctx, p.get("building"), p.get("snapshot_date"))
	if err != nil {
		return nil, err
	}
	return gin.H{"items": orEmpty(rows)}, nil
}

func (h *APIHandler) saveRoomState(ctx context.Context, p params) (gin.H, error) {
	return nil, h.rooms.SaveState(ctx, roomFromParams(p))
}

func (h *APIHandler) saveRoomSnapshot(ctx context.Context, p params) (gin.H, error) {
	return nil, h.rooms.SaveSnapshot(ctx, p.get("snapshot_date"), roomFromParams(p))
}

func (h *APIHandler) saveRoomItemsSnapshot(ctx context.Context, p params) (gin.H, error) {
	return nil, h.rooms.SaveItems(ctx, p.get("building"), p.get("room_id"), p.get("snapshot_date"), p.raw("items_json"))
}
