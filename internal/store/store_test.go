package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(db), mock
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, IsDuplicateKey(dup))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert task: %w", dup)))
	assert.False(t, IsDuplicateKey(&gomysql.MySQLError{Number: 1146}))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestMigrate_IgnoresFailedUpgrades(t *testing.T) {
	st, mock := newMockStore(t)

	for _, table := range []string{"room_types", "maintenance_categories", "item_categories",
		"rooms_status", "room_status_history", "room_items_history", "maintenance_tasks"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	dupKey := &gomysql.MySQLError{Number: 1061, Message: "Duplicate key name"}
	dupCol := &gomysql.MySQLError{Number: 1060, Message: "Duplicate column name"}
	mock.ExpectExec("ALTER TABLE rooms_status ADD UNIQUE KEY uniq_building_room").WillReturnError(dupKey)
	mock.ExpectExec("ALTER TABLE rooms_status ADD COLUMN room_note").WillReturnError(dupCol)
	mock.ExpectExec("ALTER TABLE room_status_history ADD COLUMN room_note").WillReturnError(dupCol)
	mock.ExpectExec("ALTER TABLE rooms_status ADD COLUMN room_image").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE room_status_history ADD COLUMN room_image").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE maintenance_tasks ADD COLUMN pending_slot").WillReturnError(dupCol)
	mock.ExpectExec("ALTER TABLE maintenance_tasks ADD UNIQUE KEY uniq_pending_task").WillReturnError(dupKey)

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_CreateFailureStops(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS room_types").WillReturnError(errors.New("access denied"))

	err := st.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTunePacketSize(t *testing.T) {
	t.Run("raises low value", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("SHOW GLOBAL VARIABLES LIKE 'max_allowed_packet'").
			WillReturnRows(sqlmock.NewRows([]string{"Variable_name", "Value"}).AddRow("max_allowed_packet", "4194304"))
		mock.ExpectExec("SET GLOBAL max_allowed_packet = 67108864").WillReturnResult(sqlmock.NewResult(0, 0))

		raised, err := st.TunePacketSize(context.Background(), 64<<20)
		require.NoError(t, err)
		assert.True(t, raised)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps large value", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("SHOW GLOBAL VARIABLES").
			WillReturnRows(sqlmock.NewRows([]string{"Variable_name", "Value"}).AddRow("max_allowed_packet", "134217728"))

		raised, err := st.TunePacketSize(context.Background(), 64<<20)
		require.NoError(t, err)
		assert.False(t, raised)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no privilege", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("SHOW GLOBAL VARIABLES").
			WillReturnRows(sqlmock.NewRows([]string{"Variable_name", "Value"}).AddRow("max_allowed_packet", "1048576"))
		mock.ExpectExec("SET GLOBAL").WillReturnError(&gomysql.MySQLError{Number: 1227, Message: "Access denied"})

		raised, err := st.TunePacketSize(context.Background(), 64<<20)
		assert.Error(t, err)
		assert.False(t, raised)
	})
}

func TestPrune_AttemptsEveryTable(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM room_status_history WHERE snapshot_date <").
		WithArgs("2026-09-15").WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec("DELETE FROM room_items_history WHERE snapshot_date <").
		WithArgs("2026-09-15").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectExec("DELETE FROM maintenance_tasks WHERE reported_date <").
		WithArgs("2026-07-17").WillReturnResult(sqlmock.NewResult(0, 3))

	res, err := st.Prune(context.Background(), "2026-09-15", "2026-07-17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prune items history")
	assert.Equal(t, int64(12), res.StatusSnapshots)
	assert.Equal(t, int64(3), res.Tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_ReadCommitted(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM maintenance_tasks WHERE id = \\? AND building = \\? FOR UPDATE").
		WithArgs(int64(7), "B1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "building", "room_id", "type", "note", "reported_date", "resolved_date", "status"}).
			AddRow(7, "B1", "101", "Leak", "", "2026-10-01", nil, "pending"))
	mock.ExpectCommit()

	var got *model.MaintenanceTask
	err := st.Transaction(context.Background(), func(tx *Store) error {
		var err error
		got, err = tx.LockTask(context.Background(), "B1", 7)
		return err
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Leak", got.Type)
	assert.Equal(t, model.Date("2026-10-01"), got.ReportedDate)
	assert.True(t, got.ResolvedDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := st.Transaction(context.Background(), func(*Store) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var roomCols = []string{"building", "room_id", "guest_name", "type_id", "room_note", "maint_status",
	"maint_note", "ap_installed", "ap_date", "bed_badge", "room_image", "updated_at"}

func TestGetRoomStatus(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		st, mock := newMockStore(t)
		updated := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
		mock.ExpectQuery("FROM rooms_status WHERE building = \\? AND room_id = \\?").
			WithArgs("B1", "101").
			WillReturnRows(sqlmock.NewRows(roomCols).
				AddRow("B1", "101", "Somchai", "std", "", "Leak", "sink", int64(1), "2026-10-01", "2", []byte{0xFF, 0xD8}, updated))

		r, err := st.GetRoomStatus(context.Background(), "B1", "101")
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, "Somchai", r.GuestName)
		assert.Equal(t, "std", r.RoomType)
		assert.True(t, r.APInstalled)
		assert.Equal(t, model.Date("2026-10-01"), r.APInstallDate)
		assert.Equal(t, []byte{0xFF, 0xD8}, r.RoomImage)
		assert.Equal(t, updated, r.UpdatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("FROM rooms_status").WillReturnRows(sqlmock.NewRows(roomCols))

		r, err := st.GetRoomStatus(context.Background(), "B1", "999")
		require.NoError(t, err)
		assert.Nil(t, r)
	})
}

func TestUpsertRoomStatus(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO rooms_status").
		WithArgs("B1", "101", "", "std", "", "Leak", "sink", true, "2026-10-01", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := st.UpsertRoomStatus(context.Background(), model.RoomStatus{
		Building: "B1", RoomID: "101", RoomType: "std", MaintStatus: "Leak", MaintNote: "sink",
		APInstalled: true, APInstallDate: "2026-10-01",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRoomSnapshot(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO room_status_history").
		WithArgs("B1", "101", "2026-10-14", "Ann", "", "", "", "", false, nil, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	snap := model.RoomSnapshot{SnapshotDate: "2026-10-14"}
	snap.Building, snap.RoomID, snap.GuestName = "B1", "101", "Ann"
	require.NoError(t, st.UpsertRoomSnapshot(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRoomSnapshots(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectQuery("FROM room_status_history WHERE building = \\? AND snapshot_date = \\?").
		WithArgs("B1", "2026-10-14").
		WillReturnRows(sqlmock.NewRows(append(roomCols, "snapshot_date")).
			AddRow("B1", "101", "Ann", "", "", "", "", int64(0), nil, "", nil, time.Now(), "2026-10-14"))

	rows, err := st.ListRoomSnapshots(context.Background(), "B1", "2026-10-14")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann", rows[0].GuestName)
	assert.Equal(t, model.Date("2026-10-14"), rows[0].SnapshotDate)
	assert.Nil(t, rows[0].RoomImage)
}

func TestListLatestRoomItems_BoundedByDay(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectQuery("MAX\\(snapshot_date\\)").
		WithArgs("B1", "2026-10-15", "B1").
		WillReturnRows(sqlmock.NewRows([]string{"building", "room_id", "snapshot_date", "items_json"}).
			AddRow("B1", "101", "2026-10-15", `[{"name":"bed"}]`).
			AddRow("B1", "102", "2026-10-09", `[]`))

	rows, err := st.ListLatestRoomItems(context.Background(), "B1", "2026-10-15")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.Date("2026-10-09"), rows[1].SnapshotDate)
	assert.JSONEq(t, `[{"name":"bed"}]`, rows[0].ItemsJSON)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRoomItems(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO room_items_history").
		WithArgs("B1", "101", "2026-10-15", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := st.UpsertRoomItems(context.Background(), model.RoomItems{Building: "B1", RoomID: "101", SnapshotDate: "2026-10-15", ItemsJSON: "[]"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
