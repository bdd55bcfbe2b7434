package store

import (
	"context"
	"fmt"

	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

// UpsertRoomItems stores the inventory document verbatim for its day.
func (s *Store) UpsertRoomItems(ctx context.Context, it model.RoomItems) error {
	err := s.db.WithContext(ctx).Exec(`INSERT INTO room_items_history (building, room_id, snapshot_date, items_json)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE items_json = VALUES(items_json)`,
		it.Building, it.RoomID, it.SnapshotDate, it.ItemsJSON,
	).Error
	if err != nil {
		return fmt.Errorf("upsert items %s/%s@%s: %w", it.Building, it.RoomID, it.SnapshotDate, err)
	}
	return nil
}

func (s *Store) ListRoomItemsForDate(ctx context.Context, building string, date model.Date) ([]model.RoomItems, error) {
	var rows []model.RoomItems
	err := s.db.WithContext(ctx).
		Raw(`SELECT building, room_id, snapshot_date, items_json FROM room_items_history
			WHERE building = ? AND snapshot_date = ? ORDER BY room_id`, building, date).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list items %s@%s: %w", building, date, err)
	}
	return rows, nil
}

// ListLatestRoomItems returns, per room, the newest inventory dated on or before asOf.
func (s *Store) ListLatestRoomItems(ctx context.Context, building string, asOf model.Date) ([]model.RoomItems, error) {
	var rows []model.RoomItems
	err := s.db.WithContext(ctx).
		Raw(`SELECT h.building, h.room_id, h.snapshot_date, h.items_json
			FROM room_items_history h
			JOIN (
				SELECT room_id, MAX(snapshot_date) AS latest FROM room_items_history
				WHERE building = ? AND snapshot_date <= ? GROUP BY room_id
			) m ON m.room_id = h.room_id AND m.latest = h.snapshot_date
			WHERE h.building = ?
			ORDER BY h.room_id`, building, asOf, building).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list latest items %s: %w", building, err)
	}
	return rows, nil
}
