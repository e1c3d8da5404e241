package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/services"
	"github.com/sumakmikuy/restaurant-backend/utils"
)

const chatbotApology = "There was a problem reaching the assistant. Please try again later."

type ChatbotController struct {
	Service *services.ChatbotService
}

func NewChatbotController(service *services.ChatbotService) *ChatbotController {
	return &ChatbotController{Service: service}
}

// Chat relays a single user message to the assistant. An absent message is a
// client error and never reaches the upstream service; any upstream failure
// maps to a fixed apology so internal detail never leaks.
func (cc *ChatbotController) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no message provided"))
		return
	}

	reply, err := cc.Service.Ask(c.Request.Context(), req.Message)
	if err != nil {
		utils.ErrorLogger.Printf("chatbot call failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"response": chatbotApology})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
