package store

import (
	"context"
	"fmt"

	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

// roomColumns maps nullable legacy columns to their zero values.
const roomColumns = `building, room_id,
	COALESCE(guest_name, '') AS guest_name,
	COALESCE(type_id, '') AS type_id,
	COALESCE(room_note, '') AS room_note,
	COALESCE(maint_status, '') AS maint_status,
	COALESCE(maint_note, '') AS maint_note,
	COALESCE(ap_installed, 0) AS ap_installed,
	ap_date,
	COALESCE(bed_badge, '') AS bed_badge,
	room_image, updated_at`

// GetRoomStatus returns nil when the room has never been saved.
func (s *Store) GetRoomStatus(ctx context.Context, building, roomID string) (*model.RoomStatus, error) {
	var row model.RoomStatus
	res := s.db.WithContext(ctx).
		Raw("SELECT "+roomColumns+" FROM rooms_status WHERE building = ? AND room_id = ? LIMIT 1", building, roomID).
		Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("get room %s/%s: %w", building, roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (s *Store) ListRoomStatuses(ctx context.Context, building string) ([]model.RoomStatus, error) {
	var rows []model.RoomStatus
	err := s.db.WithContext(ctx).
		Raw("SELECT "+roomColumns+" FROM rooms_status WHERE building = ? ORDER BY room_id", building).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list rooms %s: %w", building, err)
	}
	return rows, nil
}

// UpsertRoomStatus writes every field of r, replacing the stored row for the same room.
func (s *Store) UpsertRoomStatus(ctx context.Context, r model.RoomStatus) error {
	err := s.db.WithContext(ctx).Exec(`INSERT INTO rooms_status
		(building, room_id, guest_name, type_id, room_note, maint_status, maint_note, ap_installed, ap_date, bed_badge, room_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		guest_name = VALUES(guest_name), type_id = VALUES(type_id), room_note = VALUES(room_note),
		maint_status = VALUES(maint_status), maint_note = VALUES(maint_note),
		ap_installed = VALUES(ap_installed), ap_date = VALUES(ap_date),
		bed_badge = VALUES(bed_badge), room_image = VALUES(room_image)`,
		r.Building, r.RoomID, r.GuestName, r.RoomType, r.RoomNote, r.MaintStatus, r.MaintNote,
		r.APInstalled, r.APInstallDate, r.BedBadge, r.RoomImage,
	).Error
	if err != nil {
		return fmt.Errorf("upsert room %s/%s: %w", r.Building, r.RoomID, err)
	}
	return nil
}

// ClearMaintenance empties the room's maintenance fields. A missing room is not an error.
func (s *Store) ClearMaintenance(ctx context.Context, building, roomID string) error {
	err := s.db.WithContext(ctx).Exec(
		"UPDATE rooms_status SET maint_status = '', maint_note = '' WHERE building = ? AND room_id = ?",
		building, roomID,
	).Error
	if err != nil {
		return fmt.Errorf("clear maintenance %s/%s: %w", building, roomID, err)
	}
	return nil
}

func (s *Store) ListRoomSnapshots(ctx context.Context, building string, date model.Date) ([]model.RoomSnapshot, error) {
	var rows []model.RoomSnapshot
	err := s.db.WithContext(ctx).
		Raw("SELECT "+roomColumns+", snapshot_date FROM room_status_history WHERE building = ? AND snapshot_date = ? ORDER BY room_id",
			building, date).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots %s@%s: %w", building, date, err)
	}
	return rows, nil
}

// UpsertRoomSnapshot stores the room as it looked on snap.SnapshotDate.
func (s *Store) UpsertRoomSnapshot(ctx context.Context, snap model.RoomSnapshot) error {
	err := s.db.WithContext(ctx).Exec(`INSERT INTO room_status_history
		(building, room_id, snapshot_date, guest_name, type_id, room_note, maint_status, maint_note, ap_installed, ap_date, bed_badge, room_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		guest_name = VALUES(guest_name), type_id = VALUES(type_id), room_note = VALUES(room_note),
		maint_status = VALUES(maint_status), maint_note = VALUES(maint_note),
		ap_installed = VALUES(ap_installed), ap_date = VALUES(ap_date),
		bed_badge = VALUES(bed_badge), room_image = VALUES(room_image)`,
		snap.Building, snap.RoomID, snap.SnapshotDate, snap.GuestName, snap.RoomType, snap.RoomNote,
		snap.MaintStatus, snap.MaintNote, snap.APInstalled, snap.APInstallDate, snap.BedBadge, snap.RoomImage,
	).Error
	if err != nil {
		return fmt.Errorf("upsert snapshot %s/%s@%s: %w", snap.Building, snap.RoomID, snap.SnapshotDate, err)
	}
	return nil
}
