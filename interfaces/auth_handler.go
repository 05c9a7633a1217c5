package interfaces

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobmatcher/auth"
	"jobmatcher/domain"
	"jobmatcher/matcher"
)

// Register creates an account. A resume PDF may be attached; its extracted
// attributes seed the user profile, otherwise every profile field holds the
// sentinel.
func (h *HTTPHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Users.FindByEmail(ctx, email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		h.Log.WithError(err).Error("failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	skills := domain.StringList{}
	education := domain.NotSpecified
	experience := domain.NotSpecified
	responsibilities := domain.NotSpecified

	if header, err := c.FormFile("resume_file"); err == nil {
		file, err := header.Open()
		if err != nil {
			h.Log.WithError(err).Error("failed to open resume upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
			return
		}
		defer file.Close()

		text, err := h.Extract(file, header.Filename)
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedFormat) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
				return
			}
			h.Log.WithError(err).Error("failed to extract resume text")
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
			return
		}

		skills = matcher.ExtractSkills(text)
		education = matcher.ExtractEducation(text)
		experience = matcher.ExtractExperience(text)
		responsibilities = matcher.ExtractResponsibilities(text)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		h.Log.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	user := domain.User{
		ID:               uuid.NewString(),
		Email:            email,
		Password:         hashed,
		Name:             c.PostForm("name"),
		Skills:           skills,
		Education:        education,
		Experience:       experience,
		Responsibilities: responsibilities,
	}
	if err := h.Users.Create(ctx, &user); err != nil {
		h.Log.WithError(err).Error("failed to save user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login verifies credentials and issues an access token. Failures share one
// generic message.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.Log.WithError(err).Error("failed to look up user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Log.WithError(err).Error("failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         userProfile(user),
	})
}

// GetProfile returns the authenticated user's profile, addressed either by
// path id or by email query; a user may only view their own.
func (h *HTTPHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(contextUserID)

	if pathID := c.Param("user_id"); pathID != "" && pathID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to view this profile."})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		h.Log.WithError(err).Error("failed to load user profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	if c.Param("user_id") == "" {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or User ID is required to fetch profile"})
			return
		}
		if user.Email != email {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to view this profile."})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user_profile": userProfile(user)})
}

func userProfile(user *domain.User) gin.H {
	return gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"name":             user.Name,
		"skills":           user.Skills,
		"education":        user.Education,
		"experience":       user.Experience,
		"responsibilities": user.Responsibilities,
	}
}
