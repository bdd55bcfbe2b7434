package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

// DefaultItemCategories seed an empty item_categories table.
var DefaultItemCategories = []model.ItemCategory{
	{Name: "เฟอร์นิเจอร์", Label: "Furniture", Icon: "🛋️", SortOrder: 10},
	{Name: "เครื่องใช้ไฟฟ้า", Label: "Appliances", Icon: "💡", SortOrder: 20},
	{Name: "ของตกแต่ง", Label: "Decor", Icon: "🖼️", SortOrder: 30},
	{Name: "อื่นๆ", Label: "Other", Icon: "📦", SortOrder: 40},
}

func (s *Store) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
	var rows []model.RoomType
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return rows, nil
}

// UpsertRoomType inserts rt or overwrites name and color of the row with the same id.
func (s *Store) UpsertRoomType(ctx context.Context, rt model.RoomType) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.AssignmentColumns([]string{"name", "color"}),
	}).Create(&rt).Error
	if err != nil {
		return fmt.Errorf("upsert room type %s: %w", rt.ID, err)
	}
	return nil
}

func (s *Store) DeleteRoomType(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RoomType{}).Error; err != nil {
		return fmt.Errorf("delete room type %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListMaintenanceCategories(ctx context.Context) ([]model.MaintenanceCategory, error) {
	var rows []model.MaintenanceCategory
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list maintenance categories: %w", err)
	}
	return rows, nil
}

// AddMaintenanceCategory returns the new row's id.
func (s *Store) AddMaintenanceCategory(ctx context.Context, name, icon string) (int64, error) {
	mc := model.MaintenanceCategory{Name: name, Icon: icon}
	if err := s.db.WithContext(ctx).Create(&mc).Error; err != nil {
		return 0, fmt.Errorf("add maintenance category %q: %w", name, err)
	}
	return mc.ID, nil
}

func (s *Store) DeleteMaintenanceCategory(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MaintenanceCategory{}).Error; err != nil {
		return fmt.Errorf("delete maintenance category %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteMaintenanceCategoryByName(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Where("name = ?", name).Delete(&model.MaintenanceCategory{}).Error; err != nil {
		return fmt.Errorf("delete maintenance category %q: %w", name, err)
	}
	return nil
}

// ListItemCategories returns categories by sort_order, seeding the defaults first
// when the table is empty.
func (s *Store) ListItemCategories(ctx context.Context) ([]model.ItemCategory, error) {
	rows, err := s.listItemCategories(ctx)
	if err != nil || len(rows) > 0 {
		return rows, err
	}
	for _, c := range DefaultItemCategories {
		// A concurrent seeder may have won the race on the unique name.
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			logger.Debug("item_category.seed skipped", "name", c.Name, "err", err)
		}
	}
	return s.listItemCategories(ctx)
}

func (s *Store) listItemCategories(ctx context.Context) ([]model.ItemCategory, error) {
	var rows []model.ItemCategory
	if err := s.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list item categories: %w", err)
	}
	return rows, nil
}

// UpsertItemCategory inserts c or overwrites label, icon and sort_order of the row with the same name.
func (s *Store) UpsertItemCategory(ctx context.Context, c model.ItemCategory) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "icon", "sort_order"}),
	}).Create(&c).Error
	if err != nil {
		return fmt.Errorf("upsert item category %q: %w", c.Name, err)
	}
	return nil
}

func (s *Store) DeleteItemCategory(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Where("name = ?", name).Delete(&model.ItemCategory{}).Error; err != nil {
		return fmt.Errorf("delete item category %q: %w", name, err)
	}
	return nil
}
