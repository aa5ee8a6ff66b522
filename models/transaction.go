// models/transaction.go
package models

import "time"

const TransactionTable = "transactions"

type TransactionType string

const (
	TypeCheckOut TransactionType = "check_out"
	TypeCheckIn  TransactionType = "check_in"
	TypeBooking  TransactionType = "booking"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeCheckOut, TypeCheckIn, TypeBooking:
		return true
	}
	return false
}

// SystemUserName is the user_name stamped on check-in records; a check-in is
// performed by staff and has no separate borrower identity.
const SystemUserName = "System"

// Transaction is one ledger entry. A record with type check_out or booking
// and a null ActualReturnDate is "open": the item is away from the warehouse.
type Transaction struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID string          `gorm:"type:uuid;index;not null" json:"equipmentId"`
	AdminID     string          `gorm:"type:uuid;index;not null" json:"adminId"`
	Type        TransactionType `gorm:"column:transaction_type;size:20;not null" json:"transactionType"`

	UserName    string  `gorm:"size:200;not null" json:"userName"`
	UserContact *string `gorm:"size:200" json:"userContact,omitempty"`
	Notes       *string `gorm:"size:500" json:"notes,omitempty"`

	TransactionDate    time.Time  `gorm:"index;not null" json:"transactionDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	ActualReturnDate   *time.Time `gorm:"index" json:"actualReturnDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Transaction) TableName() string { return TransactionTable }
