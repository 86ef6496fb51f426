package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkotelnikov/inventory_service/internal/models"
)

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the account together with every order it placed. Line
// items go first so no orphaned rows survive the order delete.
func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("order_id IN (?)", sub).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}

func (r *GormRepo) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// DeleteAdmin unsets references held by orders and items before removing the
// account, keeping the historical records themselves intact. Deleting the
// last remaining admin is refused.
func (r *GormRepo) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin models.Admin
		if err := tx.First(&admin, "id = ?", id).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.Admin{}).Count(&total).Error; err != nil {
			return err
		}
		if total == 1 {
			return fmt.Errorf("%w: cannot delete the last remaining admin account", ErrConflict)
		}

		if err := tx.Model(&models.Order{}).
			Where("approved_by_admin_id = ?", id).
			Updates(map[string]any{"approved_by_admin_id": nil, "approved_at": nil}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Item{}).
			Where("created_by_admin_id = ?", id).
			Update("created_by_admin_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Admin{}, "id = ?", id).Error
	})
	return translate(err)
}
