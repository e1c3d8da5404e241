package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sumakmikuy/restaurant-backend/models"
)

func TestIsDuplicateKeyError(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:dberrors?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))

	user := models.User{
		FirstName: "Rosa",
		LastName:  "Quispe",
		Email:     "rosa@example.com",
		Password:  "hashed",
		Role:      models.RoleCustomer,
		Status:    models.UserStatusActive,
	}
	assert.NoError(t, db.Create(&user).Error)

	clone := user
	clone.ID = 0
	insertErr := db.Create(&clone).Error
	assert.Error(t, insertErr)
	assert.True(t, isDuplicateKeyError(insertErr))

	assert.False(t, isDuplicateKeyError(nil))
	assert.False(t, isDuplicateKeyError(errors.New("connection reset by peer")))
	// The MySQL driver wording.
	assert.True(t, isDuplicateKeyError(errors.New("Error 1062: Duplicate entry 'rosa@example.com' for key 'email'")))
	assert.True(t, isDuplicateKeyError(gorm.ErrDuplicatedKey))
}
