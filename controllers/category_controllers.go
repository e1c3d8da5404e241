package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories lists every category ordered by sort order.
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Order("sort_order").Find(&categories).Error; err != nil {
		utils.ErrorLogger.Printf("listing categories failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load categories"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		SortOrder   int    `json:"sort_order"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Status:      models.CategoryStatusActive,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.ErrorLogger.Printf("creating category failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not add category"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category added", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var category models.MenuCategory
	if err := cc.DB.First(&category, c.Param("cat_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	type request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		SortOrder   *int    `json:"sort_order"`
		Status      *string `json:"status"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.Status != nil {
		if *req.Status != models.CategoryStatusActive && *req.Status != models.CategoryStatusInactive {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category status"))
			return
		}
		category.Status = *req.Status
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.ErrorLogger.Printf("updating category failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not update category"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes a category. Its dishes keep existing without a
// category: the detach is done here in the same transaction rather than left
// to the SET NULL constraint, so the behavior holds even where foreign-key
// enforcement is off.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	var category models.MenuCategory
	if err := cc.DB.First(&category, c.Param("cat_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	txErr := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Dish{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if txErr != nil {
		utils.ErrorLogger.Printf("deleting category failed: %v", txErr)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not delete category"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
}
