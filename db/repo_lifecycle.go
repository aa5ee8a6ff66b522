// db/repo_lifecycle.go
//
// Lifecycle engine: every transition runs as one read-validate-write
// transaction with the equipment row as the mutex point, so two callers
// cannot both observe `available` and both succeed.
package db

import (
	"context"
	"errors"
	"time"

	"equiptrack/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckOutInput struct {
	EquipmentID        string
	AdminID            string
	UserName           string
	UserContact        *string
	ExpectedReturnDate *time.Time // optional for checkout
	Notes              *string
}

// CheckOut: available → checked_out, with a new open check_out record.
func (r *Repo) CheckOut(ctx context.Context, in CheckOutInput) (*models.Transaction, error) {
	var txn *models.Transaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := adminMustExist(tx, in.AdminID); err != nil {
			return err
		}

		// 1) 锁住该设备
		var eq models.Equipment
		if err := forUpdate(tx).First(&eq, "id = ?", in.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}

		// 2) 状态门控
		if eq.Status != models.StatusAvailable {
			return &InvalidTransitionError{Op: "check out", Current: eq.Status}
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.Equipment{}).
			Where("id = ?", eq.ID).
			Updates(map[string]any{
				"status":     models.StatusCheckedOut,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		t := &models.Transaction{
			ID:                 uuid.NewString(),
			EquipmentID:        eq.ID,
			AdminID:            in.AdminID,
			Type:               models.TypeCheckOut,
			UserName:           in.UserName,
			UserContact:        in.UserContact,
			Notes:              in.Notes,
			TransactionDate:    now,
			ExpectedReturnDate: in.ExpectedReturnDate,
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

type BookInput struct {
	EquipmentID        string
	AdminID            string
	UserName           string
	UserContact        *string
	ExpectedReturnDate *time.Time // mandatory for booking
	Notes              *string
}

// Book: available → booked. Identical gating to CheckOut except the target
// date is required.
func (r *Repo) Book(ctx context.Context, in BookInput) (*models.Transaction, error) {
	if in.ExpectedReturnDate == nil {
		return nil, ErrExpectedReturnRequired
	}

	var txn *models.Transaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := adminMustExist(tx, in.AdminID); err != nil {
			return err
		}

		var eq models.Equipment
		if err := forUpdate(tx).First(&eq, "id = ?", in.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}
		if eq.Status != models.StatusAvailable {
			return &InvalidTransitionError{Op: "book", Current: eq.Status}
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.Equipment{}).
			Where("id = ?", eq.ID).
			Updates(map[string]any{
				"status":     models.StatusBooked,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		t := &models.Transaction{
			ID:                 uuid.NewString(),
			EquipmentID:        eq.ID,
			AdminID:            in.AdminID,
			Type:               models.TypeBooking,
			UserName:           in.UserName,
			UserContact:        in.UserContact,
			Notes:              in.Notes,
			TransactionDate:    now,
			ExpectedReturnDate: in.ExpectedReturnDate,
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// CheckIn: checked_out|booked → available. Two ledger effects: the newest
// open record gets its actual_return_date stamped (reconciliation), and a
// terminal check_in record is appended so "when was it returned" and "who
// returned it" are both queryable. Returns the new check_in record.
func (r *Repo) CheckIn(ctx context.Context, equipmentID, adminID string, notes *string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := adminMustExist(tx, adminID); err != nil {
			return err
		}

		var eq models.Equipment
		if err := forUpdate(tx).First(&eq, "id = ?", equipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}
		if eq.Status != models.StatusCheckedOut && eq.Status != models.StatusBooked {
			return &InvalidTransitionError{Op: "check in", Current: eq.Status}
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.Equipment{}).
			Where("id = ?", eq.ID).
			Updates(map[string]any{
				"status":     models.StatusAvailable,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		// 关闭最新一条 open 记录。找不到就跳过（账本可能不完整），不报错。
		var open models.Transaction
		err := forUpdate(tx).
			Where("equipment_id = ? AND actual_return_date IS NULL AND transaction_type IN ?",
				eq.ID, []models.TransactionType{models.TypeCheckOut, models.TypeBooking}).
			Order("created_at DESC").
			First(&open).Error
		switch {
		case err == nil:
			if err := tx.Model(&models.Transaction{}).
				Where("id = ?", open.ID).
				Update("actual_return_date", now).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// skip
		default:
			return err
		}

		t := &models.Transaction{
			ID:               uuid.NewString(),
			EquipmentID:      eq.ID,
			AdminID:          adminID,
			Type:             models.TypeCheckIn,
			UserName:         models.SystemUserName,
			Notes:            notes,
			TransactionDate:  now,
			ActualReturnDate: &now, // the check-in event is its own completion
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// EquipmentDetail is the unified "who holds this" view.
type EquipmentDetail struct {
	Equipment    models.Equipment     `json:"equipment"`
	Transactions []models.Transaction `json:"transactions"`
	CurrentUser  *string              `json:"currentUser"`
}

// EquipmentWithTransactions returns the item, its ledger (newest first) and
// the derived current holder. The holder is coupled to the authoritative
// status field: if status was forced to available/maintenance via the
// override, CurrentUser is nil no matter what the ledger says.
func (r *Repo) EquipmentWithTransactions(ctx context.Context, equipmentID string) (*EquipmentDetail, error) {
	eq, err := r.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	var txns []models.Transaction
	if err := r.DB.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("transaction_date DESC").
		Order("created_at DESC").
		Find(&txns).Error; err != nil {
		return nil, err
	}

	detail := &EquipmentDetail{Equipment: *eq, Transactions: txns}

	var want models.TransactionType
	switch eq.Status {
	case models.StatusCheckedOut:
		want = models.TypeCheckOut
	case models.StatusBooked:
		want = models.TypeBooking
	default:
		return detail, nil
	}
	for i := range txns {
		if txns[i].Type == want && txns[i].ActualReturnDate == nil {
			detail.CurrentUser = &txns[i].UserName
			break
		}
	}
	return detail, nil
}

func adminMustExist(tx *gorm.DB, adminID string) error {
	var n int64
	if err := tx.Model(&models.Admin{}).Where("id = ?", adminID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrAdminNotFound
	}
	return nil
}
