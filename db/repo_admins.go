// db/repo_admins.go
package db

import (
	"context"
	"errors"
	"time"

	"equiptrack/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (r *Repo) CreateAdmin(ctx context.Context, username, email, password string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &models.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Repo) FindAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

// AuthenticateAdmin returns (nil, nil) on unknown username or wrong password;
// the two cases are indistinguishable to the caller on purpose.
func (r *Repo) AuthenticateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).First(&a, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return &a, nil
}

func (r *Repo) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&admins).Error
	return admins, err
}

func (r *Repo) TouchAdminSeen(ctx context.Context, adminID string) error {
	return r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", adminID).
		Update("last_seen_at", time.Now().UTC()).Error
}

func (r *Repo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Admin{}).Count(&n).Error
	return n, err
}
