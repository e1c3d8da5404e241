package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sumakmikuy/restaurant-backend/controllers"
	"github.com/sumakmikuy/restaurant-backend/models"
)

func TestGetMenuFiltersInactiveEntries(t *testing.T) {
	db := setupTestDB(t)
	router := gin.Default()
	menuCtrl := controllers.NewMenuController(db)
	router.GET("/menu", menuCtrl.GetMenu)

	db.Create(&models.MenuCategory{Name: "Starters", SortOrder: 1, Status: models.CategoryStatusActive})
	db.Create(&models.MenuCategory{Name: "Retired", SortOrder: 2, Status: models.CategoryStatusInactive})
	db.Create(&models.Dish{Name: "Ceviche", Price: 25, Status: models.DishStatusAvailable})
	db.Create(&models.Dish{Name: "Off menu", Price: 10, Status: models.DishStatusUnavailable})

	w := doJSON(t, router, "GET", "/menu", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	data := resp["data"].(map[string]interface{})

	categories := data["categories"].([]interface{})
	assert.Len(t, categories, 1)
	assert.Equal(t, "Starters", categories[0].(map[string]interface{})["name"])

	dishes := data["dishes"].([]interface{})
	assert.Len(t, dishes, 1)
	assert.Equal(t, "Ceviche", dishes[0].(map[string]interface{})["name"])
}

func TestContactFormValidationAndStorage(t *testing.T) {
	db := setupTestDB(t)
	router := gin.Default()
	contactCtrl := controllers.NewContactController(db)
	router.POST("/contact", contactCtrl.CreateContactMessage)

	// Missing fields are rejected without touching the database.
	w := doJSON(t, router, "POST", "/contact", map[string]string{
		"name":  "Jose",
		"email": "jose@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = doJSON(t, router, "POST", "/contact", map[string]string{
		"name":    "Jose",
		"email":   "jose@example.com",
		"phone":   "999999999",
		"message": "Do you take group bookings?",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var msg models.ContactMessage
	assert.NoError(t, db.First(&msg).Error)
	assert.Equal(t, "Do you take group bookings?", msg.Message)
}
