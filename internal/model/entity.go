package model

import "time"

const (
	TaskPending  = "pending"
	TaskResolved = "resolved"
)

type RoomType struct {
	ID    string `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name  string `gorm:"column:name" json:"name"`
	Color string `gorm:"column:color" json:"color"`
}

type MaintenanceCategory struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name" json:"name"`
	Icon string `gorm:"column:icon" json:"icon"`
}

type ItemCategory struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"column:name;uniqueIndex" json:"name"`
	Label     string `gorm:"column:label" json:"label"`
	Icon      string `gorm:"column:icon" json:"icon"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
}

// RoomStatus is the live state of one room. RoomImage holds raw bytes; the HTTP layer
// renders it as a data URI.
type RoomStatus struct {
	Building      string    `gorm:"column:building" json:"building"`
	RoomID        string    `gorm:"column:room_id" json:"room_id"`
	GuestName     string    `gorm:"column:guest_name" json:"guest_name"`
	RoomType      string    `gorm:"column:type_id" json:"room_type"`
	RoomNote      string    `gorm:"column:room_note" json:"room_note"`
	MaintStatus   string    `gorm:"column:maint_status" json:"maint_status"`
	MaintNote     string    `gorm:"column:maint_note" json:"maint_note"`
	APInstalled   bool      `gorm:"column:ap_installed" json:"ap_installed"`
	APInstallDate Date      `gorm:"column:ap_date" json:"ap_install_date"`
	BedBadge      string    `gorm:"column:bed_badge" json:"bed_badge"`
	RoomImage     []byte    `gorm:"column:room_image" json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;->" json:"updated_at"`
}

// RoomSnapshot is a RoomStatus frozen for one calendar day.
type RoomSnapshot struct {
	RoomStatus
	SnapshotDate Date `gorm:"column:snapshot_date" json:"snapshot_date"`
}

// RoomItems is a per-day item inventory. ItemsJSON is stored verbatim.
type RoomItems struct {
	Building     string `gorm:"column:building" json:"-"`
	RoomID       string `gorm:"column:room_id" json:"room_id"`
	SnapshotDate Date   `gorm:"column:snapshot_date" json:"snapshot_date"`
	ItemsJSON    string `gorm:"column:items_json" json:"items_json"`
}

type MaintenanceTask struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Building     string    `gorm:"column:building" json:"building"`
	RoomID       string    `gorm:"column:room_id" json:"room_id"`
	Type         string    `gorm:"column:type" json:"type"`
	Note         string    `gorm:"column:note" json:"note"`
	ReportedDate Date      `gorm:"column:reported_date" json:"reported_date"`
	ResolvedDate Date      `gorm:"column:resolved_date" json:"resolved_date"`
	Status       string    `gorm:"column:status" json:"status"`
	UpdatedAt    time.Time `gorm:"column:updated_at;->" json:"updated_at"`
}

func (t MaintenanceTask) Pending() bool { return t.Status == TaskPending }

func (RoomType) TableName() string            { return "room_types" }
func (MaintenanceCategory) TableName() string { return "maintenance_categories" }
func (ItemCategory) TableName() string        { return "item_categories" }
func (RoomStatus) TableName() string          { return "rooms_status" }
func (RoomSnapshot) TableName() string        { return "room_status_history" }
func (RoomItems) TableName() string           { return "room_items_history" }
func (MaintenanceTask) TableName() string     { return "maintenance_tasks" }
