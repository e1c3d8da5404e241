package controllers_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sumakmikuy/restaurant-backend/controllers"
	"github.com/sumakmikuy/restaurant-backend/middlewares"
	"github.com/sumakmikuy/restaurant-backend/models"
)

func setupDishRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	dishCtrl := controllers.NewDishController(db)

	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	admin.GET("/dishes", dishCtrl.GetAllDishes)
	admin.POST("/dishes", dishCtrl.CreateDish)
	admin.PATCH("/dishes/:dish_id", dishCtrl.UpdateDish)

	return router
}

// sendDishForm submits a multipart dish form, optionally attaching an image.
func sendDishForm(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, imageName string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		assert.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postDishForm(t *testing.T, router *gin.Engine, token string, fields map[string]string, imageName string) *httptest.ResponseRecorder {
	t.Helper()
	return sendDishForm(t, router, "POST", "/admin/dishes", token, fields, imageName)
}

func TestCreateDishStoresAllowedImage(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)

	db := setupTestDB(t)
	router := setupDishRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	w := postDishForm(t, router, tokenFor(t, admin), map[string]string{
		"name":  "Pachamanca",
		"price": "32.50",
	}, "pachamanca.jpg")
	assert.Equal(t, http.StatusCreated, w.Code)

	var dish models.Dish
	assert.NoError(t, db.Where("name = ?", "Pachamanca").First(&dish).Error)
	assert.NotNil(t, dish.ImageURL)
	assert.True(t, strings.HasSuffix(*dish.ImageURL, "_pachamanca.jpg"))

	_, err := os.Stat(filepath.Join(uploadDir, *dish.ImageURL))
	assert.NoError(t, err)
}

func TestCreateDishRejectsDisallowedExtension(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)

	db := setupTestDB(t)
	router := setupDishRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	w := postDishForm(t, router, tokenFor(t, admin), map[string]string{
		"name":  "Cuy Chactado",
		"price": "45.00",
	}, "payload.exe")
	assert.Equal(t, http.StatusCreated, w.Code)

	// The dish exists but carries no image reference, and nothing was
	// written to disk.
	var dish models.Dish
	assert.NoError(t, db.Where("name = ?", "Cuy Chactado").First(&dish).Error)
	assert.Nil(t, dish.ImageURL)

	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateDishReplacesImage(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)

	db := setupTestDB(t)
	router := setupDishRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	token := tokenFor(t, admin)

	oldName := "100_ceviche.jpg"
	assert.NoError(t, os.WriteFile(filepath.Join(uploadDir, oldName), []byte("old image"), 0644))
	dish := models.Dish{
		Name:     "Ceviche",
		Price:    28.00,
		ImageURL: &oldName,
		Status:   models.DishStatusAvailable,
	}
	assert.NoError(t, db.Create(&dish).Error)

	w := sendDishForm(t, router, "PATCH", fmt.Sprintf("/admin/dishes/%d", dish.ID),
		token, map[string]string{"price": "30.00"}, "tiradito.png")
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Dish
	assert.NoError(t, db.First(&stored, dish.ID).Error)
	assert.NotNil(t, stored.ImageURL)
	assert.True(t, strings.HasSuffix(*stored.ImageURL, "_tiradito.png"))

	// The new file is on disk and the replaced one is gone.
	_, err := os.Stat(filepath.Join(uploadDir, *stored.ImageURL))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(uploadDir, oldName))
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateDishFailedSaveKeepsOldImage(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)

	db := setupTestDB(t)
	router := setupDishRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)
	token := tokenFor(t, admin)

	oldName := "100_ceviche.jpg"
	assert.NoError(t, os.WriteFile(filepath.Join(uploadDir, oldName), []byte("old image"), 0644))
	dish := models.Dish{
		Name:     "Ceviche",
		Price:    28.00,
		ImageURL: &oldName,
		Status:   models.DishStatusAvailable,
	}
	assert.NoError(t, db.Create(&dish).Error)

	// Make every update statement fail so the handler hits its rollback path.
	err := db.Callback().Update().Before("gorm:update").Register("force_update_failure", func(tx *gorm.DB) {
		tx.AddError(errors.New("update rejected"))
	})
	assert.NoError(t, err)

	w := sendDishForm(t, router, "PATCH", fmt.Sprintf("/admin/dishes/%d", dish.ID),
		token, map[string]string{"price": "30.00"}, "tiradito.png")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The row still points at the old image, the old file is untouched and
	// the half-uploaded replacement was cleaned up.
	var stored models.Dish
	assert.NoError(t, db.First(&stored, dish.ID).Error)
	assert.NotNil(t, stored.ImageURL)
	assert.Equal(t, oldName, *stored.ImageURL)

	_, err = os.Stat(filepath.Join(uploadDir, oldName))
	assert.NoError(t, err)

	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateDishRejectsInvalidPrice(t *testing.T) {
	db := setupTestDB(t)
	router := setupDishRouter(db)
	admin := seedUser(t, db, "admin@example.com", "password123", models.RoleAdmin)

	w := postDishForm(t, router, tokenFor(t, admin), map[string]string{
		"name":  "Sopa",
		"price": "not-a-number",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
