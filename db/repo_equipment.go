// db/repo_equipment.go
package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"equiptrack/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repo) CreateEquipment(ctx context.Context, eq *models.Equipment) error {
	if eq.ID == "" {
		eq.ID = uuid.NewString()
	}
	if eq.Status == "" {
		eq.Status = models.StatusAvailable
	}
	return r.DB.WithContext(ctx).Create(eq).Error
}

func (r *Repo) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// 按序列号精确查（区分大小写）
func (r *Repo) FindEquipmentBySerial(ctx context.Context, serial string) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).First(&eq, "serial_number = ?", serial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

type EquipmentQuery struct {
	Status   string // exact match against the enum
	Category string // exact match
	Search   string // substring over name/serial_number/description, case-insensitive
}

func (r *Repo) ListEquipment(ctx context.Context, q EquipmentQuery) ([]models.Equipment, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Equipment{}).Order("created_at DESC")
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(serial_number) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}

	var items []models.Equipment
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateEquipment applies a partial catalog update. A nil value in fields
// resets the column to NULL. An empty fields map is a no-op that must not
// touch timestamps, so it just returns the current record.
func (r *Repo) UpdateEquipment(ctx context.Context, id string, fields map[string]any) (*models.Equipment, error) {
	if len(fields) == 0 {
		return r.FindEquipmentByID(ctx, id)
	}

	fields["updated_at"] = time.Now().UTC()
	res := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEquipmentNotFound
	}
	return r.FindEquipmentByID(ctx, id)
}

// UpdateEquipmentStatus is the maintenance override: an unconditional status
// overwrite with no legality check and no ledger record.
func (r *Repo) UpdateEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) (*models.Equipment, error) {
	res := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEquipmentNotFound
	}
	return r.FindEquipmentByID(ctx, id)
}

// DeleteEquipment removes an item and its ledger as one unit. The guard
// trusts the ledger, not equipment.status: any record with a null
// actual_return_date blocks the delete regardless of the status field.
func (r *Repo) DeleteEquipment(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := forUpdate(tx).First(&eq, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // 不存在：返回 false，不报错
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.Transaction{}).
			Where("equipment_id = ? AND actual_return_date IS NULL", id).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrHasOpenTransactions
		}

		// 先删流水，再删设备
		if err := tx.Where("equipment_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Equipment{}, "id = ?", id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// ListCategories returns the distinct category values, case-sensitive,
// ascending.
func (r *Repo) ListCategories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}
