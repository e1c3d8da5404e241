package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/config"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// sanitizeFilename keeps only the base name and replaces characters that are
// not safe in a stored filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// saveDishImage stores an uploaded image under the configured upload dir and
// returns the stored filename. A disallowed extension yields no file and no
// filename.
func (dc *DishController) saveDishImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No image in the form is fine.
		return nil, nil
	}
	if file.Filename == "" {
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		utils.InfoLogger.Printf("rejected dish image with extension %q", ext)
		return nil, nil
	}

	uploadDir := config.UploadDir()
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), sanitizeFilename(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return nil, err
	}
	return &filename, nil
}

// GetAllDishes lists every dish with its category for the admin view.
func (dc *DishController) GetAllDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := dc.DB.Preload("Category").Order("category_id, name").Find(&dishes).Error; err != nil {
		utils.ErrorLogger.Printf("listing dishes failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load dishes"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

func (dc *DishController) GetDishByID(c *gin.Context) {
	var dish models.Dish
	if err := dc.DB.Preload("Category").First(&dish, c.Param("dish_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

// CreateDish accepts a multipart form with an optional image.
func (dc *DishController) CreateDish(c *gin.Context) {
	// Bound the upload to 10MB.
	c.Request.ParseMultipartForm(10 << 20)

	name := c.PostForm("name")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
		return
	}

	var categoryID *uint
	if s := c.PostForm("category_id"); s != "" {
		id64, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		id := uint(id64)
		categoryID = &id
	}

	prepTime, _ := strconv.Atoi(c.PostForm("prep_time_minutes"))

	imageURL, err := dc.saveDishImage(c)
	if err != nil {
		utils.ErrorLogger.Printf("saving dish image failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not store the dish image"))
		return
	}

	dish := models.Dish{
		CategoryID:      categoryID,
		Name:            name,
		Description:     c.PostForm("description"),
		Price:           price,
		ImageURL:        imageURL,
		PrepTimeMinutes: prepTime,
		Ingredients:     c.PostForm("ingredients"),
		IsVegetarian:    c.PostForm("is_vegetarian") == "true",
		IsSpicy:         c.PostForm("is_spicy") == "true",
		Status:          models.DishStatusAvailable,
	}

	if err := dc.DB.Create(&dish).Error; err != nil {
		if imageURL != nil {
			os.Remove(filepath.Join(config.UploadDir(), *imageURL))
		}
		utils.ErrorLogger.Printf("creating dish failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not add the dish"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, fmt.Sprintf("Dish %q added", dish.Name), dish)
}

// UpdateDish applies a multipart form update; a new valid image replaces the
// stored file.
func (dc *DishController) UpdateDish(c *gin.Context) {
	var dish models.Dish
	if err := dc.DB.First(&dish, c.Param("dish_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}

	c.Request.ParseMultipartForm(10 << 20)

	if name := c.PostForm("name"); name != "" {
		dish.Name = name
	}
	if s := c.PostForm("price"); s != "" {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil || price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
			return
		}
		dish.Price = price
	}
	if s := c.PostForm("category_id"); s != "" {
		id64, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		id := uint(id64)
		dish.CategoryID = &id
	}
	if s := c.PostForm("description"); s != "" {
		dish.Description = s
	}
	if s := c.PostForm("ingredients"); s != "" {
		dish.Ingredients = s
	}
	if s := c.PostForm("prep_time_minutes"); s != "" {
		if prepTime, err := strconv.Atoi(s); err == nil {
			dish.PrepTimeMinutes = prepTime
		}
	}
	if s := c.PostForm("is_vegetarian"); s != "" {
		dish.IsVegetarian = s == "true"
	}
	if s := c.PostForm("is_spicy"); s != "" {
		dish.IsSpicy = s == "true"
	}
	if s := c.PostForm("status"); s != "" {
		if s != models.DishStatusAvailable && s != models.DishStatusUnavailable {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid dish status"))
			return
		}
		dish.Status = s
	}

	newImage, err := dc.saveDishImage(c)
	if err != nil {
		utils.ErrorLogger.Printf("saving dish image failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not store the dish image"))
		return
	}
	var oldImage *string
	if newImage != nil {
		oldImage = dish.ImageURL
		dish.ImageURL = newImage
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		if newImage != nil {
			os.Remove(filepath.Join(config.UploadDir(), *newImage))
		}
		utils.ErrorLogger.Printf("updating dish failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not update the dish"))
		return
	}

	// Drop the replaced file only once the new reference is stored.
	if newImage != nil && oldImage != nil {
		os.Remove(filepath.Join(config.UploadDir(), *oldImage))
	}

	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}
