package store

import (
	"context"
	"fmt"

	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

const taskColumns = `id, building, room_id, type, COALESCE(note, '') AS note,
	reported_date, resolved_date, status, updated_at`

// FindLatestPendingTask returns the newest pending task of a room, or nil.
func (s *Store) FindLatestPendingTask(ctx context.Context, building, roomID string) (*model.MaintenanceTask, error) {
	var t model.MaintenanceTask
	res := s.db.WithContext(ctx).
		Raw("SELECT "+taskColumns+" FROM maintenance_tasks WHERE building = ? AND room_id = ? AND status = 'pending' ORDER BY id DESC LIMIT 1",
			building, roomID).
		Scan(&t)
	if res.Error != nil {
		return nil, fmt.Errorf("find pending task %s/%s: %w", building, roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &t, nil
}

// InsertPendingTask opens a task reported on day and returns its id.
// With the pending-slot key in place a second pending task for the room fails with a
// duplicate-key error; see IsDuplicateKey.
func (s *Store) InsertPendingTask(ctx context.Context, building, roomID, typ, note string, day model.Date) (int64, error) {
	t := model.MaintenanceTask{
		Building:     building,
		RoomID:       roomID,
		Type:         typ,
		Note:         note,
		ReportedDate: day,
		Status:       model.TaskPending,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, fmt.Errorf("insert task %s/%s: %w", building, roomID, err)
	}
	return t.ID, nil
}

// UpdateTaskDetails rewrites type and note and bumps updated_at. reported_date is kept.
func (s *Store) UpdateTaskDetails(ctx context.Context, id int64, typ, note string) error {
	err := s.db.WithContext(ctx).Exec(
		"UPDATE maintenance_tasks SET type = ?, note = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		typ, note, id,
	).Error
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

// ResolvePendingTasks closes every pending task of a room on day.
func (s *Store) ResolvePendingTasks(ctx context.Context, building, roomID string, day model.Date) (int64, error) {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE maintenance_tasks SET status = 'resolved', resolved_date = ? WHERE building = ? AND room_id = ? AND status = 'pending'",
		day, building, roomID,
	)
	if res.Error != nil {
		return 0, fmt.Errorf("resolve tasks %s/%s: %w", building, roomID, res.Error)
	}
	return res.RowsAffected, nil
}

// LockTask loads a task scoped to building and holds its row lock until the
// surrounding transaction ends. It returns nil when there is no such task.
func (s *Store) LockTask(ctx context.Context, building string, id int64) (*model.MaintenanceTask, error) {
	var t model.MaintenanceTask
	res := s.db.WithContext(ctx).
		Raw("SELECT "+taskColumns+" FROM maintenance_tasks WHERE id = ? AND building = ? FOR UPDATE", id, building).
		Scan(&t)
	if res.Error != nil {
		return nil, fmt.Errorf("lock task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &t, nil
}

func (s *Store) MarkTaskResolved(ctx context.Context, id int64, day model.Date) error {
	err := s.db.WithContext(ctx).Exec(
		"UPDATE maintenance_tasks SET status = 'resolved', resolved_date = ? WHERE id = ?",
		day, id,
	).Error
	if err != nil {
		return fmt.Errorf("mark task %d resolved: %w", id, err)
	}
	return nil
}

// DeleteStalePendingTasks drops pending tasks whose room is gone or no longer reports
// a maintenance status.
func (s *Store) DeleteStalePendingTasks(ctx context.Context, building string) (int64, error) {
	res := s.db.WithContext(ctx).Exec(`DELETE t FROM maintenance_tasks t
		LEFT JOIN rooms_status r ON r.building = t.building AND r.room_id = t.room_id
		WHERE t.building = ? AND t.status = 'pending'
		AND (r.room_id IS NULL OR COALESCE(r.maint_status, '') = '')`, building)
	if res.Error != nil {
		return 0, fmt.Errorf("delete stale tasks %s: %w", building, res.Error)
	}
	return res.RowsAffected, nil
}

// SyncPendingTaskTypes copies each room's current maint_status onto its pending tasks.
func (s *Store) SyncPendingTaskTypes(ctx context.Context, building string) (int64, error) {
	res := s.db.WithContext(ctx).Exec(`UPDATE maintenance_tasks t
		JOIN rooms_status r ON r.building = t.building AND r.room_id = t.room_id
		SET t.type = r.maint_status, t.updated_at = CURRENT_TIMESTAMP
		WHERE t.building = ? AND t.status = 'pending'
		AND COALESCE(r.maint_status, '') <> '' AND t.type <> r.maint_status`, building)
	if res.Error != nil {
		return 0, fmt.Errorf("sync task types %s: %w", building, res.Error)
	}
	return res.RowsAffected, nil
}

// ListTasks returns every task of the building, newest report first.
func (s *Store) ListTasks(ctx context.Context, building string) ([]model.MaintenanceTask, error) {
	var rows []model.MaintenanceTask
	err := s.db.WithContext(ctx).
		Raw("SELECT "+taskColumns+" FROM maintenance_tasks WHERE building = ? ORDER BY reported_date DESC, id DESC", building).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks %s: %w", building, err)
	}
	return rows, nil
}
