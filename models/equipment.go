// models/equipment.go
package models

import "time"

const EquipmentTable = "equipment"

// EquipmentStatus is the closed set of lifecycle states. Status is only
// mutated through the lifecycle repo methods (or the maintenance override).
type EquipmentStatus string

const (
	StatusAvailable   EquipmentStatus = "available"
	StatusCheckedOut  EquipmentStatus = "checked_out"
	StatusBooked      EquipmentStatus = "booked"
	StatusMaintenance EquipmentStatus = "maintenance"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusCheckedOut, StatusBooked, StatusMaintenance:
		return true
	}
	return false
}

type Equipment struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	SerialNumber string          `gorm:"size:120;uniqueIndex;not null" json:"serialNumber"` // 唯一编号
	Name         string          `gorm:"size:200;not null" json:"name"`
	Category     string          `gorm:"size:100;index;not null" json:"category"`
	Description  *string         `gorm:"size:500" json:"description,omitempty"`
	Brand        *string         `gorm:"size:120" json:"brand,omitempty"`
	Model        *string         `gorm:"size:120" json:"model,omitempty"`
	Status       EquipmentStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (Equipment) TableName() string { return EquipmentTable }
