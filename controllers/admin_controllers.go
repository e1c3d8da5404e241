package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats returns the aggregate counters for the admin dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalCustomers      int64 `json:"total_customers"`
		AvailableDishes     int64 `json:"available_dishes"`
		PendingReservations int64 `json:"pending_reservations"`
		OrdersInKitchen     int64 `json:"orders_in_kitchen"`
		ReservationsToday   int64 `json:"reservations_today"`
	}

	queries := []error{
		ac.DB.Model(&models.User{}).
			Where("role = ?", models.RoleCustomer).
			Count(&stats.TotalCustomers).Error,
		ac.DB.Model(&models.Dish{}).
			Where("status = ?", models.DishStatusAvailable).
			Count(&stats.AvailableDishes).Error,
		ac.DB.Model(&models.Reservation{}).
			Where("status = ?", models.ReservationStatusPending).
			Count(&stats.PendingReservations).Error,
		ac.DB.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusInPreparation).
			Count(&stats.OrdersInKitchen).Error,
		ac.DB.Model(&models.Reservation{}).
			Where("DATE(reservation_date) = ?", today).
			Count(&stats.ReservationsToday).Error,
	}
	for _, err := range queries {
		if err != nil {
			utils.ErrorLogger.Printf("dashboard stats query failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load dashboard stats"))
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved", stats)
}
