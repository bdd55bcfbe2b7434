package service

import (
	"context"
	"strings"

	"github.com/6540011013-oss/Room-Status-System/internal/apperr"
	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/model"
	"github.com/6540011013-oss/Room-Status-System/internal/store"
)

// RoomService reads and writes live room state, daily snapshots and item inventories.
type RoomService struct {
	store *store.Store
	maint *MaintenanceService
	clock Clock
}

func NewRoomService(st *store.Store, maint *MaintenanceService, clock Clock) *RoomService {
	return &RoomService{store: st, maint: maint, clock: clock}
}

// Room returns nil without error for a room that was never saved.
func (s *RoomService) Room(ctx context.Context, building, roomID string) (*model.RoomStatus, error) {
	building, roomID = strings.TrimSpace(building), strings.TrimSpace(roomID)
	if building == "" || roomID == "" {
		return nil, apperr.Validation("Missing building or room_id")
	}
	r, err := s.store.GetRoomStatus(ctx, building, roomID)
	return r, apperr.Store("get room state", err)
}

func (s *RoomService) Rooms(ctx context.Context, building string) ([]model.RoomStatus, error) {
	building = strings.TrimSpace(building)
	if building == "" {
		return nil, apperr.Validation("Missing building")
	}
	rows, err := s.store.ListRoomStatuses(ctx, building)
	return rows, apperr.Store("list room states", err)
}

// SaveState overwrites the room's live state, then reconciles its maintenance tasks.
// A reconciliation failure is logged; the saved state stands.
func (s *RoomService) SaveState(ctx context.Context, r model.RoomStatus) error {
	normalize(&r)
	if r.Building == "" || r.RoomID == "" {
		return apperr.Validation("Missing building or room_id")
	}
	apDate, err := parseDay(string(r.APInstallDate), "ap_install_date")
	if err != nil {
		return err
	}
	r.APInstallDate = apDate
	if err := s.store.UpsertRoomStatus(ctx, r); err != nil {
		return apperr.Store("save room state", err)
	}
	logger.Ctx(ctx).Info("room.save", "building", r.Building, "room_id", r.RoomID, "maint_status", r.MaintStatus)

	if err := s.maint.SyncRoom(ctx, r.Building, r.RoomID, r.MaintStatus, r.MaintNote); err != nil {
		logger.Ctx(ctx).Error("task.sync failed", "building", r.Building, "room_id", r.RoomID, "err", err)
	}
	return nil
}

func (s *RoomService) Snapshots(ctx context.Context, building, date string) ([]model.RoomSnapshot, error) {
	building, date = strings.TrimSpace(building), strings.TrimSpace(date)
	if building == "" || date == "" {
		return nil, apperr.Validation("Missing building or snapshot_date")
	}
	day, err := parseDay(date, "snapshot_date")
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListRoomSnapshots(ctx, building, day)
	return rows, apperr.Store("list room snapshots", err)
}

// SaveSnapshot stores r as the room's state on date. It never touches maintenance tasks.
func (s *RoomService) SaveSnapshot(ctx context.Context, date string, r model.RoomStatus) error {
	normalize(&r)
	date = strings.TrimSpace(date)
	if r.Building == "" || r.RoomID == "" || date == "" {
		return apperr.Validation("Missing building, room_id or snapshot_date")
	}
	day, err := parseDay(date, "snapshot_date")
	if err != nil {
		return err
	}
	if r.APInstallDate, err = parseDay(string(r.APInstallDate), "ap_install_date"); err != nil {
		return err
	}
	err = s.store.UpsertRoomSnapshot(ctx, model.RoomSnapshot{RoomStatus: r, SnapshotDate: day})
	return apperr.Store("save room snapshot", err)
}

// LatestItems returns each room's newest inventory that is not dated in the future.
func (s *RoomService) LatestItems(ctx context.Context, building string) ([]model.RoomItems, error) {
	building = strings.TrimSpace(building)
	if building == "" {
		return nil, apperr.Validation("Missing building")
	}
	rows, err := s.store.ListLatestRoomItems(ctx, building, s.clock.today())
	return rows, apperr.Store("list room items", err)
}

func (s *RoomService) ItemsOn(ctx context.Context, building, date string) ([]model.RoomItems, error) {
	building, date = strings.TrimSpace(building), strings.TrimSpace(date)
	if building == "" || date == "" {
		return nil, apperr.Validation("Missing building or snapshot_date")
	}
	day, err := parseDay(date, "snapshot_date")
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListRoomItemsForDate(ctx, building, day)
	return rows, apperr.Store("list room items snapshot", err)
}

// SaveItems stores itemsJSON verbatim as the room's inventory on date. An empty list
// is stored as "[]".
func (s *RoomService) SaveItems(ctx context.Context, building, roomID, date, itemsJSON string) error {
	building, roomID, date = strings.TrimSpace(building), strings.TrimSpace(roomID), strings.TrimSpace(date)
	if building == "" || roomID == "" || date == "" {
		return apperr.Validation("Missing building, room_id or snapshot_date")
	}
	if itemsJSON == "" {
		itemsJSON = "[]"
	}
	day, err := parseDay(date, "snapshot_date")
	if err != nil {
		return err
	}
	err = s.store.UpsertRoomItems(ctx, model.RoomItems{Building: building, RoomID: roomID, SnapshotDate: day, ItemsJSON: itemsJSON})
	return apperr.Store("save room items", err)
}

func normalize(r *model.RoomStatus) {
	r.Building = strings.TrimSpace(r.Building)
	r.RoomID = strings.TrimSpace(r.RoomID)
	r.GuestName = strings.TrimSpace(r.GuestName)
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.RoomNote = strings.TrimSpace(r.RoomNote)
	r.MaintStatus = strings.TrimSpace(r.MaintStatus)
	r.MaintNote = strings.TrimSpace(r.MaintNote)
	r.BedBadge = strings.TrimSpace(r.BedBadge)
	r.APInstallDate = model.Date(strings.TrimSpace(string(r.APInstallDate)))
}

func parseDay(s, field string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return "", apperr.Validation("Invalid " + field)
	}
	return d, nil
}
