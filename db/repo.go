package db

import (
	"errors"
	"fmt"

	"equiptrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrAdminNotFound     = errors.New("admin not found")

	// ErrHasOpenTransactions blocks deletion while the ledger holds an open
	// record for the item.
	ErrHasOpenTransactions = errors.New("equipment has active transactions, check it in first")

	// ErrExpectedReturnRequired: a booking without a target date is meaningless.
	ErrExpectedReturnRequired = errors.New("booking requires an expected return date")
)

// InvalidTransitionError reports a rejected status transition. The message
// always quotes the current status so callers can branch on it.
type InvalidTransitionError struct {
	Op      string // "check out", "check in", "book"
	Current models.EquipmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s equipment with status %q", e.Op, e.Current)
}

// forUpdate row-locks on Postgres; sqlite (tests) serializes writes itself
// and rejects FOR UPDATE syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
