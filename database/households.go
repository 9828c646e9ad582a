package database

import (
	"errors"
	"fmt"

	"uandme/models"

	"gorm.io/gorm"
)

// CreateHousehold inserts a new account, enforcing the unique email.
func CreateHousehold(h *models.Household) error {
	var count int64
	if err := DB.Model(&models.Household{}).Where("email = ?", h.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	if err := DB.Create(h).Error; err != nil {
		return fmt.Errorf("create household: %w", err)
	}
	return nil
}

// HouseholdByEmail looks up an account by its login email.
func HouseholdByEmail(email string) (*models.Household, error) {
	var h models.Household
	if err := DB.Where("email = ?", email).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup household: %w", err)
	}
	return &h, nil
}

// HouseholdByID returns the account behind an authenticated session.
func HouseholdByID(id string) (*models.Household, error) {
	var h models.Household
	if err := DB.First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup household: %w", err)
	}
	return &h, nil
}
