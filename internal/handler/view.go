package handler

import "github.com/6540011013-oss/Room-Status-System/internal/model"

// roomView is a RoomStatus with its image rendered as a data URI.
// ap_installed goes out as 0 or 1, the column's TINYINT value.
type roomView struct {
	model.RoomStatus
	APInstalled int    `json:"ap_installed"`
	RoomImage   string `json:"room_image"`
}

type snapshotView struct {
	model.RoomSnapshot
	APInstalled int    `json:"ap_installed"`
	RoomImage   string `json:"room_image"`
}

func newRoomView(r *model.RoomStatus) *roomView {
	if r == nil {
		return nil
	}
	return &roomView{RoomStatus: *r, APInstalled: tinyint(r.APInstalled), RoomImage: encodeImage(r.RoomImage)}
}

func roomViews(rows []model.RoomStatus) []roomView {
	out := make([]roomView, 0, len(rows))
	for i := range rows {
		out = append(out, *newRoomView(&rows[i]))
	}
	return out
}

func snapshotViews(rows []model.RoomSnapshot) []snapshotView {
	out := make([]snapshotView, 0, len(rows))
	for i := range rows {
		out = append(out, snapshotView{
			RoomSnapshot: rows[i],
			APInstalled:  tinyint(rows[i].APInstalled),
			RoomImage:    encodeImage(rows[i].RoomImage),
		})
	}
	return out
}

func tinyint(b bool) int {
	if b {
		return 1
	}
	return 0
}

// roomFromParams reads the status fields shared by save_room_state and save_room_snapshot.
// ap_install_date is validated by the service.
func roomFromParams(p params) model.RoomStatus {
	return model.RoomStatus{
		Building:      p.get("building"),
		RoomID:        p.get("room_id"),
		GuestName:     p.get("guest_name"),
		RoomType:      p.get("room_type"),
		RoomNote:      p.get("room_note"),
		MaintStatus:   p.get("maint_status"),
		MaintNote:     p.get("maint_note"),
		APInstalled:   p.flag("ap_installed"),
		APInstallDate: model.Date(p.get("ap_install_date")),
		BedBadge:      p.get("bed_badge"),
		RoomImage:     decodeImage(p.raw("room_image")),
	}
}

// orEmpty keeps empty lists rendering as [] rather than null.
func orEmpty[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
