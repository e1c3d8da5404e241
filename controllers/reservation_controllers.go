package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

var nonTerminalReservationStatuses = []string{
	models.ReservationStatusPending,
	models.ReservationStatusConfirmed,
}

// lockTable loads a table inside tx, taking a row lock on engines that
// support it so two concurrent reservations cannot both see the table free.
func lockTable(tx *gorm.DB, tableID interface{}, table *models.Table) error {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.First(table, tableID).Error
}

// GetAvailability returns the table ids occupied today by a pending or
// confirmed reservation, plus the caller's contact data for form prefill.
// This is a point-in-time snapshot; clients re-fetch to see newer changes.
func (rc *ReservationController) GetAvailability(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := rc.DB.Select("first_name", "last_name", "email", "phone").
		First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	today := time.Now().Format("2006-01-02")
	var occupiedIDs []uint
	if err := rc.DB.Model(&models.Reservation{}).
		Distinct("table_id").
		Where("DATE(reservation_date) = ? AND status IN ?", today, nonTerminalReservationStatuses).
		Pluck("table_id", &occupiedIDs).Error; err != nil {
		utils.ErrorLogger.Printf("loading occupied tables failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load availability"))
		return
	}

	var tables []models.Table
	if err := rc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.ErrorLogger.Printf("loading tables failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load availability"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability snapshot", gin.H{
		"tables":          tables,
		"occupied_tables": occupiedIDs,
		"user": gin.H{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"phone":      user.Phone,
		},
	})
}

// CreateReservation inserts the reservation and marks the table reserved as
// one atomic unit. The table row is locked for the duration, and a table
// already holding a pending or confirmed reservation for the same date
// rejects the request instead of double-booking.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	userID := c.GetUint("user_id")

	type request struct {
		TableID         uint   `json:"table_id" binding:"required"`
		PartySize       int    `json:"party_size" binding:"required,min=1"`
		ReservationDate string `json:"reservation_date" binding:"required"`
		ReservationTime string `json:"reservation_time" binding:"required"`
		Notes           string `json:"notes"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.ReservationDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation date, expected YYYY-MM-DD"))
		return
	}

	var reservation models.Reservation
	txErr := rc.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := lockTable(tx, req.TableID, &table); err != nil {
			return errTableNotFound
		}
		if table.Status == models.TableStatusMaintenance {
			return errTableUnavailable
		}
		if table.Capacity < req.PartySize {
			return errTableTooSmall
		}

		var active int64
		if err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND DATE(reservation_date) = ? AND status IN ?",
				req.TableID, req.ReservationDate, nonTerminalReservationStatuses).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return errTableTaken
		}

		reservation = models.Reservation{
			UserID:          userID,
			TableID:         req.TableID,
			PartySize:       req.PartySize,
			ReservationDate: date,
			ReservationTime: req.ReservationTime,
			Notes:           req.Notes,
			Status:          models.ReservationStatusPending,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		return tx.Model(&table).Update("status", models.TableStatusReserved).Error
	})

	switch {
	case txErr == nil:
		utils.InfoLogger.Printf("Reservation %d created for table %d on %s",
			reservation.ID, reservation.TableID, req.ReservationDate)
		utils.RespondJSON(c, http.StatusCreated, "Your table has been reserved", reservation)
	case errors.Is(txErr, errTableNotFound):
		utils.RespondError(c, http.StatusNotFound, errTableNotFound)
	case errors.Is(txErr, errTableUnavailable), errors.Is(txErr, errTableTooSmall):
		utils.RespondError(c, http.StatusBadRequest, txErr)
	case errors.Is(txErr, errTableTaken):
		utils.RespondError(c, http.StatusConflict, errTableTaken)
	default:
		utils.ErrorLogger.Printf("creating reservation failed: %v", txErr)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not process the reservation"))
	}
}

var (
	errTableNotFound    = errors.New("table not found")
	errTableUnavailable = errors.New("table is under maintenance")
	errTableTooSmall    = errors.New("party size exceeds table capacity")
	errTableTaken       = errors.New("table already has a reservation for that date")
)

// GetMyReservations lists the caller's reservations, newest first.
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	userID := c.GetUint("user_id")

	var reservations []models.Reservation
	if err := rc.DB.Preload("Table").
		Where("user_id = ?", userID).
		Order("reservation_date DESC, reservation_time DESC").
		Find(&reservations).Error; err != nil {
		utils.ErrorLogger.Printf("listing own reservations failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load your reservations"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Your reservations", reservations)
}

// GetAllReservations lists every reservation with user and table context.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Preload("User").Preload("Table").
		Order("reservation_date DESC, reservation_time DESC").
		Find(&reservations).Error; err != nil {
		utils.ErrorLogger.Printf("listing reservations failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load reservations"))
		return
	}

	type row struct {
		models.Reservation
		UserName    string `json:"user_name"`
		TableNumber string `json:"table_number"`
	}
	rows := make([]row, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, row{
			Reservation: r,
			UserName:    r.User.FirstName + " " + r.User.LastName,
			TableNumber: r.Table.TableNumber,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", rows)
}

// UpdateReservationStatus transitions a reservation and keeps its table in
// sync, all in one transaction. A terminal transition frees the table only
// when no other pending or confirmed reservation still holds it.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidReservationStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation status"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, c.Param("reservation_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	txErr := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&reservation).Update("status", req.Status).Error; err != nil {
			return err
		}

		if !models.IsTerminalReservationStatus(req.Status) {
			return nil
		}

		var table models.Table
		if err := lockTable(tx, reservation.TableID, &table); err != nil {
			return err
		}

		// Derive the table state from the remaining live reservations
		// instead of overwriting it unconditionally.
		var remaining int64
		if err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND id <> ? AND status IN ?",
				reservation.TableID, reservation.ID, nonTerminalReservationStatuses).
			Count(&remaining).Error; err != nil {
			return err
		}

		if remaining == 0 && table.Status == models.TableStatusReserved {
			return tx.Model(&table).Update("status", models.TableStatusAvailable).Error
		}
		return nil
	})

	if txErr != nil {
		utils.ErrorLogger.Printf("updating reservation status failed: %v", txErr)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not update the reservation"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}
