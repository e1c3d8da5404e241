package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenu returns active categories and available dishes for the public menu
// page. Grouping dishes under their category is the client's job.
func (mc *MenuController) GetMenu(c *gin.Context) {
	var categories []models.MenuCategory
	if err := mc.DB.Where("status = ?", models.CategoryStatusActive).
		Order("sort_order").
		Find(&categories).Error; err != nil {
		utils.ErrorLogger.Printf("loading menu categories failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load the menu"))
		return
	}

	var dishes []models.Dish
	if err := mc.DB.Where("status = ?", models.DishStatusAvailable).
		Order("name").
		Find(&dishes).Error; err != nil {
		utils.ErrorLogger.Printf("loading menu dishes failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load the menu"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"categories": categories,
		"dishes":     dishes,
	})
}
