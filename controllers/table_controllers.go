package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.ErrorLogger.Printf("listing tables failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load tables"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	type request struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,min=1"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Table
	if err := tc.DB.Where("table_number = ?", req.TableNumber).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("a table with that number already exists"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Description: req.Description,
		Status:      models.TableStatusAvailable,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		if isDuplicateKeyError(err) {
			utils.RespondError(c, http.StatusConflict, errors.New("a table with that number already exists"))
			return
		}
		utils.ErrorLogger.Printf("creating table failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not add the table"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table added", table)
}

// UpdateTableStatus lets an admin move a table between available, reserved
// and maintenance by hand.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch req.Status {
	case models.TableStatusAvailable, models.TableStatusReserved, models.TableStatusMaintenance:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table status"))
		return
	}

	table.Status = req.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.ErrorLogger.Printf("updating table status failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not update the table"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}
