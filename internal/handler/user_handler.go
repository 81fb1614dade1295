/**
* Name:        user_handler.go
* Description: account and health profile endpoints
* Workflow:    signup, login, save/get profile, BMI
 */
package handler

import (
	"errors"
	"net/http"
	"strings"

	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type CredentialsRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"password123"`
}

type AuthResponse struct {
	Success          bool   `json:"success" example:"true"`
	ProfileCompleted bool   `json:"profileCompleted" example:"false"`
	Token            string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type SaveProfileRequest struct {
	Email string `json:"email" example:"ana@example.com"`
	models.Profile
}

type EmailRequest struct {
	Email string `json:"email" example:"ana@example.com"`
}

type ProfileResponse struct {
	Email            string               `json:"email"`
	ProfileCompleted bool                 `json:"profileCompleted"`
	Profile          models.Profile       `json:"profile"`
	BMI              *nutrition.BMIResult `json:"bmi,omitempty"`
}

// Signup godoc
// @Summary      Signup
// @Description  Creates an account with an empty profile and returns a JWT.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        X-Invite-Code header string false "Required when the server sets an invite code"
// @Param        request body handler.CredentialsRequest true "Credentials"
// @Success      200 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse "User already exists"
// @Failure      403 {object} handler.ErrorResponse "Invalid invite code"
// @Failure      500 {object} handler.ErrorResponse "Signup failed"
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	email := strings.TrimSpace(req.Email)
	// "   " is not a password either
	if email == "" || strings.TrimSpace(req.Password) == "" {
		abortMessage(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, "Signup failed", err)
		return
	}
	if err := h.store.CreateUser(c.Request.Context(), email, string(hash)); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			abortMessage(c, http.StatusBadRequest, "User already exists")
			return
		}
		internalError(c, "Signup failed", err)
		return
	}

	token, err := h.issuer.Issue(email)
	if err != nil {
		internalError(c, "Signup failed", err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Success: true, ProfileCompleted: false, Token: token})
}

// Login godoc
// @Summary      Login
// @Description  Checks the password and returns a JWT plus whether the profile is complete.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.CredentialsRequest true "Credentials"
// @Success      200 {object} handler.AuthResponse
// @Failure      401 {object} handler.ErrorResponse "Invalid email or password"
// @Failure      500 {object} handler.ErrorResponse "Login failed"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		abortMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			abortMessage(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		internalError(c, "Login failed", err)
		return
	}
	// profile-only rows created by save-profile have no password
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		abortMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issuer.Issue(user.Email)
	if err != nil {
		internalError(c, "Login failed", err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Success: true, ProfileCompleted: user.ProfileCompleted, Token: token})
}

// SaveProfile godoc
// @Summary      Save profile
// @Description  Upserts the health profile for an email and marks it completed. Omitted fields keep their stored value.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.SaveProfileRequest true "Profile"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse "Failed to save profile"
// @Router       /save-profile [post]
func (h *Handler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		abortMessage(c, http.StatusBadRequest, "Email is required")
		return
	}
	if msg := validateProfile(req.Profile); msg != "" {
		abortMessage(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.SaveProfile(c.Request.Context(), email, req.Profile); err != nil {
		internalError(c, "Failed to save profile", err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Profile saved successfully"})
}

func validateProfile(p models.Profile) string {
	switch {
	case p.Age != nil && *p.Age < 0:
		return "Age must not be negative"
	case p.Height != nil && *p.Height < 0:
		return "Height must not be negative"
	case p.Weight != nil && *p.Weight < 0:
		return "Weight must not be negative"
	}
	return ""
}

// GetProfile godoc
// @Summary      Get profile
// @Description  Returns the stored health profile for an email. diseases is always an array.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.EmailRequest true "Email"
// @Success      200 {object} models.Profile
// @Failure      404 {object} handler.ErrorResponse "User not found"
// @Failure      500 {object} handler.ErrorResponse "Failed to fetch profile"
// @Router       /get-profile [post]
func (h *Handler) GetProfile(c *gin.Context) {
	var req EmailRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	user, err := h.store.GetUserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			abortMessage(c, http.StatusNotFound, "User not found")
			return
		}
		internalError(c, "Failed to fetch profile", err)
		return
	}
	c.JSON(http.StatusOK, user.Profile)
}

// Profile godoc
// @Summary      Current user's profile
// @Description  Profile of the authenticated user, with BMI when height and weight are known.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.ProfileResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse "User not found"
// @Router       /api/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	resp := ProfileResponse{Email: user.Email, ProfileCompleted: user.ProfileCompleted, Profile: user.Profile}
	if user.Profile.HasBody() {
		if bmi, err := nutrition.AssessBMI(*user.Profile.Height, *user.Profile.Weight); err == nil {
			resp.BMI = &bmi
		}
	}
	c.JSON(http.StatusOK, resp)
}

// BMI godoc
// @Summary      BMI
// @Description  Body mass index from the stored height and weight.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} nutrition.BMIResult
// @Failure      400 {object} handler.ErrorResponse "Height and weight missing"
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/bmi [get]
func (h *Handler) BMI(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	if !user.Profile.HasBody() {
		abortMessage(c, http.StatusBadRequest, "Height and weight are required to calculate BMI")
		return
	}
	bmi, err := nutrition.AssessBMI(*user.Profile.Height, *user.Profile.Weight)
	if err != nil {
		abortMessage(c, http.StatusBadRequest, "Height and weight are required to calculate BMI")
		return
	}
	c.JSON(http.StatusOK, bmi)
}

func (h *Handler) loadUser(c *gin.Context) (models.User, bool) {
	user, err := h.store.GetUserByEmail(c.Request.Context(), currentEmail(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			abortMessage(c, http.StatusNotFound, "User not found")
			return user, false
		}
		internalError(c, "Failed to fetch profile", err)
		return user, false
	}
	return user, true
}
