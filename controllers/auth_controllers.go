package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sumakmikuy/restaurant-backend/models"
	"github.com/sumakmikuy/restaurant-backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a customer account. The role is never taken from the
// request body.
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		Address   string `json:"address"`
		Phone     string `json:"phone"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email is already registered"))
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorLogger.Printf("register lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not complete registration"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("password hashing failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not complete registration"))
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      models.RoleCustomer,
		Address:   req.Address,
		Phone:     req.Phone,
		Status:    models.UserStatusActive,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the lookup above and trip
		// the unique index instead.
		if isDuplicateKeyError(err) {
			utils.RespondError(c, http.StatusConflict, errors.New("email is already registered"))
			return
		}
		utils.ErrorLogger.Printf("register insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not complete registration"))
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)

	utils.RespondJSON(c, http.StatusCreated, "Registration successful, you can now log in", gin.H{
		"user_id": user.ID,
	})
}

// Login verifies credentials against active accounts and returns a JWT plus
// the role so the client can route to the right view.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ? AND status = ?", input.Email, models.UserStatusActive).
		First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("incorrect credentials or inactive account"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("incorrect credentials or inactive account"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.ErrorLogger.Printf("token generation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not log in"))
		return
	}

	now := time.Now()
	if err := ac.DB.Model(&user).Update("last_session_at", &now).Error; err != nil {
		utils.ErrorLogger.Printf("could not stamp last session for %s: %v", user.Email, err)
	}

	utils.InfoLogger.Printf("Login successful for %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":      token,
		"user_role":  strings.ToLower(user.Role),
		"first_name": user.FirstName,
	})
}

// Logout revokes the presented token.
func (ac *AuthController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString != "" {
		utils.BlacklistToken(tokenString)
	}
	utils.RespondJSON(c, http.StatusOK, "You have been logged out", nil)
}

// GetProfile returns the identity of the authenticated caller.
func (ac *AuthController) GetProfile(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile retrieved", gin.H{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"role":       user.Role,
		"address":    user.Address,
		"phone":      user.Phone,
	})
}
