package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder builds an order from the requested dishes. The total and every
// line price come from the stored dish prices, never from the client.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	type itemReq struct {
		DishID   uint   `json:"dish_id" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
		Notes    string `json:"notes"`
	}
	type request struct {
		TableID *uint     `json:"table_id"`
		Items   []itemReq `json:"items" binding:"required,min=1,dive"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		if req.TableID != nil {
			var table models.Table
			if err := tx.First(&table, *req.TableID).Error; err != nil {
				return errTableNotFound
			}
		}

		order = models.Order{
			UserID:  userID,
			TableID: req.TableID,
			Status:  models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			var dish models.Dish
			if err := tx.First(&dish, item.DishID).Error; err != nil {
				return fmt.Errorf("%w: dish %d", errDishNotOrderable, item.DishID)
			}
			if dish.Status != models.DishStatusAvailable {
				return fmt.Errorf("%w: dish %q", errDishNotOrderable, dish.Name)
			}

			line := models.OrderItem{
				OrderID:  order.ID,
				DishID:   dish.ID,
				Quantity: item.Quantity,
				Price:    dish.Price,
				Notes:    item.Notes,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			total += float64(item.Quantity) * dish.Price
		}

		order.Total = total
		return tx.Save(&order).Error
	})

	switch {
	case txErr == nil:
		utils.InfoLogger.Printf("Order %d created by user %d (total=%.2f)", order.ID, userID, order.Total)
		utils.RespondJSON(c, http.StatusCreated, "Order created", order)
	case errors.Is(txErr, errTableNotFound):
		utils.RespondError(c, http.StatusNotFound, errTableNotFound)
	case errors.Is(txErr, errDishNotOrderable):
		utils.RespondError(c, http.StatusBadRequest, txErr)
	default:
		utils.ErrorLogger.Printf("creating order failed: %v", txErr)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not create the order"))
	}
}

var errDishNotOrderable = errors.New("dish is not available")

// GetMyOrders lists the caller's order history, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetUint("user_id")

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Table").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("listing own orders failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load your orders"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Your orders", orders)
}

// GetAllOrders lists open orders for the kitchen view, oldest first.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Table").
		Where("status NOT IN ?", []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("listing orders failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load orders"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID returns one order with its lines and dish names.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Dish").Preload("Table").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus moves an order along the kitchen flow.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.AllowedOrderTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot move order from %s to %s", order.Status, req.Status))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.ErrorLogger.Printf("updating order status failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not update the order"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
