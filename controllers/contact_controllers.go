package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"gorm.io/gorm"
)

type ContactController struct {
	DB *gorm.DB
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db}
}

// CreateContactMessage stores an inbound contact-form submission.
func (cc *ContactController) CreateContactMessage(c *gin.Context) {
	type request struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := cc.DB.Create(&msg).Error; err != nil {
		utils.ErrorLogger.Printf("saving contact message failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not send the message, please try again"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Message sent, we will get back to you soon", nil)
}
