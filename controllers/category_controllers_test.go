package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sumakmikuy/restaurant-backend/controllers"
	"github.com/sumakmikuy/restaurant-backend/middlewares"
	"github.com/sumakmikuy/restaurant-backend/models"
)

func setupCategoryRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	categoryCtrl := controllers.NewCategoryController(db)

	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	admin.GET("/categories", categoryCtrl.GetAllCategories)
	admin.POST("/categories", categoryCtrl.CreateCategory)
	admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	return router
}

func TestDeleteCategoryKeepsItsDishes(t *testing.T) {
	db := setupTestDB(t)
	router := setupCategoryRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	token := tokenFor(t, admin)

	category := models.MenuCategory{Name: "Entradas", Status: models.CategoryStatusActive}
	assert.NoError(t, db.Create(&category).Error)

	dish := models.Dish{
		CategoryID: &category.ID,
		Name:       "Papa a la Huancaína",
		Price:      18.00,
		Status:     models.DishStatusAvailable,
	}
	assert.NoError(t, db.Create(&dish).Error)

	w := doJSON(t, router, "DELETE", fmt.Sprintf("/admin/categories/%d", category.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var categories int64
	assert.NoError(t, db.Model(&models.MenuCategory{}).Count(&categories).Error)
	assert.EqualValues(t, 0, categories)

	// The dish survives the delete, just without a category.
	var stored models.Dish
	assert.NoError(t, db.First(&stored, dish.ID).Error)
	assert.Nil(t, stored.CategoryID)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupCategoryRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	w := doJSON(t, router, "DELETE", "/admin/categories/9999", nil, tokenFor(t, admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
