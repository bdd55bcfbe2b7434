package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/6540011013-oss/Room-Status-System/internal/apperr"
	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/model"
	"github.com/6540011013-oss/Room-Status-System/internal/store"
)

// MaintenanceService keeps maintenance_tasks consistent with the rooms' maint_status.
//
// A room with a non-empty maint_status has exactly one pending task whose type mirrors it.
// Clearing the status resolves the room's pending tasks; resolving a task clears the room.
type MaintenanceService struct {
	store *store.Store
	clock Clock
}

func NewMaintenanceService(st *store.Store, clock Clock) *MaintenanceService {
	return &MaintenanceService{store: st, clock: clock}
}

// SyncRoom reconciles a room's tasks after its state was saved with status and note.
func (s *MaintenanceService) SyncRoom(ctx context.Context, building, roomID, status, note string) error {
	today := s.clock.today()
	if status == "" {
		n, err := s.store.ResolvePendingTasks(ctx, building, roomID, today)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Ctx(ctx).Info("task.auto_resolve", "building", building, "room_id", roomID, "count", n)
		}
		return nil
	}

	updated, err := s.updatePending(ctx, building, roomID, status, note)
	if err != nil || updated {
		return err
	}

	id, err := s.store.InsertPendingTask(ctx, building, roomID, status, note, today)
	if store.IsDuplicateKey(err) {
		// Another save opened the pending task between our lookup and insert.
		_, err = s.updatePending(ctx, building, roomID, status, note)
		return err
	}
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Info("task.open", "building", building, "room_id", roomID, "task_id", id, "type", status)
	return nil
}

func (s *MaintenanceService) updatePending(ctx context.Context, building, roomID, status, note string) (bool, error) {
	task, err := s.store.FindLatestPendingTask(ctx, building, roomID)
	if err != nil || task == nil {
		return false, err
	}
	if err := s.store.UpdateTaskDetails(ctx, task.ID, status, note); err != nil {
		return false, err
	}
	return true, nil
}

// Resolve closes a task and clears its room's maintenance fields in one transaction.
func (s *MaintenanceService) Resolve(ctx context.Context, building string, taskID int64) error {
	building = strings.TrimSpace(building)
	if building == "" || taskID <= 0 {
		return apperr.Validation("Missing task_id or building")
	}
	today := s.clock.today()

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		task, err := tx.LockTask(ctx, building, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return apperr.NotFound("Task not found")
		}
		if task.Status != model.TaskResolved {
			if err := tx.MarkTaskResolved(ctx, task.ID, today); err != nil {
				return err
			}
		}
		if roomID := strings.TrimSpace(task.RoomID); roomID != "" {
			return tx.ClearMaintenance(ctx, building, roomID)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})

	switch {
	case err == nil:
		logger.Ctx(ctx).Info("task.resolve", "building", building, "task_id", taskID)
		return nil
	case apperr.IsNotFound(err):
		return err
	default:
		return apperr.StoreMsg("resolve maintenance task", "Cannot resolve maintenance task", err)
	}
}

// Tasks repairs drift between pending tasks and room states, then lists every task
// of the building, newest report first.
func (s *MaintenanceService) Tasks(ctx context.Context, building string) ([]model.MaintenanceTask, error) {
	building = strings.TrimSpace(building)
	if building == "" {
		return nil, apperr.Validation("Missing building")
	}
	deleted, err := s.store.DeleteStalePendingTasks(ctx, building)
	if err != nil {
		return nil, apperr.Store("list maintenance tasks", err)
	}
	synced, err := s.store.SyncPendingTaskTypes(ctx, building)
	if err != nil {
		return nil, apperr.Store("list maintenance tasks", err)
	}
	if deleted > 0 || synced > 0 {
		logger.Ctx(ctx).Info("task.drift_repair", "building", building, "deleted", deleted, "synced", synced)
	}
	tasks, err := s.store.ListTasks(ctx, building)
	return tasks, apperr.Store("list maintenance tasks", err)
}
