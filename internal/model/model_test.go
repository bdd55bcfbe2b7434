package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Date("2026-10-15"), d)

	require.NoError(t, d.Scan([]byte("2026-01-02 00:00:00")))
	assert.Equal(t, Date("2026-01-02"), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_ValueAndJSON(t *testing.T) {
	v, err := Date("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Date("2026-10-15").Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", v)

	out, err := json.Marshal(MaintenanceTask{ID: 3, Status: TaskPending, ReportedDate: "2026-10-15"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"reported_date":"2026-10-15"`)
	assert.Contains(t, string(out), `"resolved_date":null`)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-02-28"), d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("2026-02-30")
	assert.Error(t, err)
	_, err = ParseDate("15/10/2026")
	assert.Error(t, err)
}

func TestDate_AddDays(t *testing.T) {
	assert.Equal(t, Date("2026-09-15"), Date("2026-10-15").AddDays(-30))
	assert.Equal(t, Date(""), Date("").AddDays(1))
}

func TestRoomStatus_ImageHiddenFromJSON(t *testing.T) {
	out, err := json.Marshal(RoomStatus{Building: "B1", RoomID: "101", RoomImage: []byte{1, 2}})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "room_image")
	assert.Contains(t, string(out), `"ap_install_date":null`)
}
