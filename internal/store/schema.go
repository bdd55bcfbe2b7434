package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

var createTables = []string{
	`CREATE TABLE IF NOT EXISTS room_types (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		color VARCHAR(32) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS maintenance_categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		icon VARCHAR(16) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS item_categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		label VARCHAR(255) NOT NULL,
		icon VARCHAR(16) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_item_category_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms_status (
		building VARCHAR(8) NOT NULL,
		room_id VARCHAR(32) NOT NULL,
		guest_name VARCHAR(255) DEFAULT '',
		type_id VARCHAR(64) DEFAULT '',
		room_note TEXT,
		maint_status VARCHAR(255) DEFAULT '',
		maint_note TEXT,
		ap_installed TINYINT(1) DEFAULT 0,
		ap_date DATE NULL,
		bed_badge VARCHAR(16) DEFAULT '',
		room_image MEDIUMBLOB NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_building_room (building, room_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS room_status_history (
		building VARCHAR(8) NOT NULL,
		room_id VARCHAR(32) NOT NULL,
		snapshot_date DATE NOT NULL,
		guest_name VARCHAR(255) DEFAULT '',
		type_id VARCHAR(64) DEFAULT '',
		room_note TEXT,
		maint_status VARCHAR(255) DEFAULT '',
		maint_note TEXT,
		ap_installed TINYINT(1) DEFAULT 0,
		ap_date DATE NULL,
		bed_badge VARCHAR(16) DEFAULT '',
		room_image MEDIUMBLOB NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (building, room_id, snapshot_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS room_items_history (
		building VARCHAR(8) NOT NULL,
		room_id VARCHAR(32) NOT NULL,
		snapshot_date DATE NOT NULL,
		items_json LONGTEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (building, room_id, snapshot_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// pending_slot is 1 for pending rows and NULL otherwise, so the unique key allows
	// any number of resolved tasks but only one pending task per room.
	`CREATE TABLE IF NOT EXISTS maintenance_tasks (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		building VARCHAR(8) NOT NULL,
		room_id VARCHAR(32) NOT NULL,
		type VARCHAR(255) NOT NULL,
		note TEXT,
		reported_date DATE NOT NULL,
		resolved_date DATE NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		pending_slot TINYINT AS (IF(status = 'pending', 1, NULL)) VIRTUAL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_maint_building_status (building, status),
		KEY idx_maint_building_room (building, room_id),
		KEY idx_maint_reported (reported_date),
		UNIQUE KEY uniq_pending_task (building, room_id, pending_slot)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// legacyUpgrades bring tables created by older deployments up to the current shape.
// Each one fails harmlessly when it has already been applied.
var legacyUpgrades = []string{
	`ALTER TABLE rooms_status ADD UNIQUE KEY uniq_building_room (building, room_id)`,
	`ALTER TABLE rooms_status ADD COLUMN room_note TEXT AFTER type_id`,
	`ALTER TABLE room_status_history ADD COLUMN room_note TEXT AFTER type_id`,
	`ALTER TABLE rooms_status ADD COLUMN room_image MEDIUMBLOB NULL AFTER bed_badge`,
	`ALTER TABLE room_status_history ADD COLUMN room_image MEDIUMBLOB NULL AFTER bed_badge`,
	`ALTER TABLE maintenance_tasks ADD COLUMN pending_slot TINYINT AS (IF(status = 'pending', 1, NULL)) VIRTUAL`,
	// Fails on tables that already hold two pending tasks for a room; those keep the
	// application-level check only.
	`ALTER TABLE maintenance_tasks ADD UNIQUE KEY uniq_pending_task (building, room_id, pending_slot)`,
}

// Migrate creates missing tables and applies legacy upgrades.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	for _, stmt := range createTables {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	applied := 0
	for _, stmt := range legacyUpgrades {
		// Best effort: "duplicate column/key" is the expected outcome on an up-to-date schema.
		if err := db.Exec(stmt).Error; err != nil {
			logger.Debug("schema.upgrade skipped", "stmt", stmt, "err", err)
			continue
		}
		applied++
	}
	logger.Info("schema.migrated", "tables", len(createTables), "upgrades_applied", applied)
	return nil
}

type variableRow struct {
	Name  string `gorm:"column:Variable_name"`
	Value string `gorm:"column:Value"`
}

// TunePacketSize raises the server's max_allowed_packet to target bytes when it is lower.
// Room photos and item lists are sent inline, and 1MB defaults truncate them.
// It reports whether the setting was raised.
func (s *Store) TunePacketSize(ctx context.Context, target int64) (bool, error) {
	db := s.db.WithContext(ctx)
	var row variableRow
	if err := db.Raw("SHOW GLOBAL VARIABLES LIKE 'max_allowed_packet'").Scan(&row).Error; err != nil {
		return false, fmt.Errorf("read max_allowed_packet: %w", err)
	}
	current, _ := strconv.ParseInt(row.Value, 10, 64)
	if current <= 0 || current >= target {
		return false, nil
	}
	// SET GLOBAL needs SUPER or SYSTEM_VARIABLES_ADMIN.
	if err := db.Exec("SET GLOBAL max_allowed_packet = " + strconv.FormatInt(target, 10)).Error; err != nil {
		return false, fmt.Errorf("set max_allowed_packet: %w", err)
	}
	return true, nil
}

type PruneResult struct {
	StatusSnapshots int64
	ItemSnapshots   int64
	Tasks           int64
}

// Prune deletes snapshots dated before snapshotCutoff and tasks reported before taskCutoff.
// Every delete is attempted; failures are joined.
func (s *Store) Prune(ctx context.Context, snapshotCutoff, taskCutoff model.Date) (PruneResult, error) {
	db := s.db.WithContext(ctx)
	var res PruneResult
	var errs []error

	r := db.Exec("DELETE FROM room_status_history WHERE snapshot_date < ?", snapshotCutoff)
	if r.Error != nil {
		errs = append(errs, fmt.Errorf("prune status history: %w", r.Error))
	}
	res.StatusSnapshots = r.RowsAffected

	r = db.Exec("DELETE FROM room_items_history WHERE snapshot_date < ?", snapshotCutoff)
	if r.Error != nil {
		errs = append(errs, fmt.Errorf("prune items history: %w", r.Error))
	}
	res.ItemSnapshots = r.RowsAffected

	r = db.Exec("DELETE FROM maintenance_tasks WHERE reported_date < ?", taskCutoff)
	if r.Error != nil {
		errs = append(errs, fmt.Errorf("prune tasks: %w", r.Error))
	}
	res.Tasks = r.RowsAffected

	return res, errors.Join(errs...)
}
