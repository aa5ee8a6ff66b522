// db/repo_transactions.go
package db

import (
	"context"
	"time"

	"equiptrack/models"
)

type TransactionQuery struct {
	EquipmentID string
	AdminID     string
	Type        string // one of the TransactionType values, or ""
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListTransactions filters the ledger; always transaction_date descending.
func (r *Repo) ListTransactions(ctx context.Context, q TransactionQuery) ([]models.Transaction, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Transaction{}).Order("transaction_date DESC")
	if q.EquipmentID != "" {
		tx = tx.Where("equipment_id = ?", q.EquipmentID)
	}
	if q.AdminID != "" {
		tx = tx.Where("admin_id = ?", q.AdminID)
	}
	if q.Type != "" {
		tx = tx.Where("transaction_type = ?", q.Type)
	}
	if q.StartDate != nil {
		tx = tx.Where("transaction_date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		tx = tx.Where("transaction_date <= ?", *q.EndDate)
	}

	var txns []models.Transaction
	if err := tx.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// CountOpenTransactions: ledger invariant helper — at most one per item.
func (r *Repo) CountOpenTransactions(ctx context.Context, equipmentID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Transaction{}).
		Where("equipment_id = ? AND actual_return_date IS NULL", equipmentID).
		Count(&n).Error
	return n, err
}
