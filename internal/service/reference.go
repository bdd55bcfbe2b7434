package service

import (
	"context"
	"strings"

	"github.com/6540011013-oss/Room-Status-System/internal/apperr"
	"github.com/6540011013-oss/Room-Status-System/internal/model"
	"github.com/6540011013-oss/Room-Status-System/internal/store"
)

// ReferenceService manages room types, maintenance categories and item categories.
type ReferenceService struct {
	store *store.Store
}

func NewReferenceService(st *store.Store) *ReferenceService { return &ReferenceService{store: st} }

func (s *ReferenceService) RoomTypes(ctx context.Context) ([]model.RoomType, error) {
	rows, err := s.store.ListRoomTypes(ctx)
	return rows, apperr.Store("list room types", err)
}

func (s *ReferenceService) SaveRoomType(ctx context.Context, rt model.RoomType) error {
	rt.ID, rt.Name, rt.Color = strings.TrimSpace(rt.ID), strings.TrimSpace(rt.Name), strings.TrimSpace(rt.Color)
	if rt.ID == "" || rt.Name == "" || rt.Color == "" {
		return apperr.Validation("Missing room type fields")
	}
	return apperr.Store("save room type", s.store.UpsertRoomType(ctx, rt))
}

func (s *ReferenceService) DeleteRoomType(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.Validation("Missing id")
	}
	return apperr.Store("delete room type", s.store.DeleteRoomType(ctx, id))
}

func (s *ReferenceService) MaintenanceCategories(ctx context.Context) ([]model.MaintenanceCategory, error) {
	rows, err := s.store.ListMaintenanceCategories(ctx)
	return rows, apperr.Store("list maintenance categories", err)
}

// AddMaintenanceCategory always inserts; names are not unique.
func (s *ReferenceService) AddMaintenanceCategory(ctx context.Context, name, icon string) (int64, error) {
	name, icon = strings.TrimSpace(name), strings.TrimSpace(icon)
	if name == "" || icon == "" {
		return 0, apperr.Validation("Missing maintenance category fields")
	}
	id, err := s.store.AddMaintenanceCategory(ctx, name, icon)
	return id, apperr.Store("add maintenance category", err)
}

// DeleteMaintenanceCategory deletes by id when id is positive, otherwise by name.
func (s *ReferenceService) DeleteMaintenanceCategory(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	switch {
	case id > 0:
		return apperr.Store("delete maintenance category", s.store.DeleteMaintenanceCategory(ctx, id))
	case name != "":
		return apperr.Store("delete maintenance category", s.store.DeleteMaintenanceCategoryByName(ctx, name))
	default:
		return apperr.Validation("Missing id or name")
	}
}

func (s *ReferenceService) ItemCategories(ctx context.Context) ([]model.ItemCategory, error) {
	rows, err := s.store.ListItemCategories(ctx)
	return rows, apperr.Store("list item categories", err)
}

func (s *ReferenceService) SaveItemCategory(ctx context.Context, c model.ItemCategory) error {
	c.Name, c.Label, c.Icon = strings.TrimSpace(c.Name), strings.TrimSpace(c.Label), strings.TrimSpace(c.Icon)
	if c.Name == "" || c.Label == "" || c.Icon == "" {
		return apperr.Validation("Missing item category fields")
	}
	return apperr.Store("save item category", s.store.UpsertItemCategory(ctx, c))
}

func (s *ReferenceService) DeleteItemCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("Missing item category name")
	}
	return apperr.Store("delete item category", s.store.DeleteItemCategory(ctx, name))
}
