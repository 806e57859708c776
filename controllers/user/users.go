package userControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/auth"
	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

type RegisterInput struct {
	FullName string `form:"full_name" json:"full_name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Username string `form:"username" json:"username" binding:"required,min=3"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateAccountInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// POST /users/register — multipart form, optional avatar image.
func RegisterUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBind(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "All fields are required: "+err.Error()))
			return
		}

		var existing models.User
		err := db.Where("email = ? OR username = ?", input.Email, strings.ToLower(input.Username)).
			First(&existing).Error
		if err == nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusConflict, "User with email or username already exists"))
			return
		}
		if err != gorm.ErrRecordNotFound {
			middleware.AbortWithError(c, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		avatarURL := ""
		if file, err := c.FormFile("avatar"); err == nil {
			avatarURL, err = utils.SaveUploadedImage(c, file, "avatars")
			if err != nil {
				middleware.AbortWithError(c, err)
				return
			}
		}

		user := models.User{
			ID:       uuid.NewString(),
			FullName: input.FullName,
			Email:    input.Email,
			Username: strings.ToLower(input.Username),
			Password: string(hash),
			Avatar:   avatarURL,
			Role:     models.RoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusCreated, user.Public(), "User registered successfully")
	}
}

// POST /users/login — sets the access/refresh cookie pair.
func LoginUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil || (input.Email == "" && input.Username == "") {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Username or email is required"))
			return
		}

		var user models.User
		err := db.Where("email = ? OR username = ?", input.Email, strings.ToLower(input.Username)).
			First(&user).Error
		if err == gorm.ErrRecordNotFound {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "User does not exist"))
			return
		}
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Invalid user credentials"))
			return
		}

		accessToken, refreshToken, err := issueTokenPair(db, &user)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		auth.SetAuthCookies(c, accessToken, refreshToken)
		utils.Respond(c, http.StatusOK, gin.H{
			"user":          user.Public(),
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		}, "User logged in successfully")
	}
}

// POST /users/logout — drops the stored refresh token and clears cookies.
func LogoutUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("refresh_token", "").Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		auth.ClearAuthCookies(c)
		utils.Respond(c, http.StatusOK, gin.H{}, "User logged out")
	}
}

// POST /users/refresh-token — rotates the pair; the incoming refresh token
// must match the one stored for the user.
func RefreshAccessToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		incoming, err := c.Cookie(auth.RefreshTokenCookie)
		if err != nil || incoming == "" {
			var body struct {
				RefreshToken string `json:"refresh_token"`
			}
			_ = c.ShouldBindJSON(&body)
			incoming = body.RefreshToken
		}
		if incoming == "" {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Unauthorized request"))
			return
		}

		claims, err := auth.ParseRefreshToken(incoming)
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Invalid refresh token"))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Invalid refresh token"))
			return
		}
		if user.RefreshToken != incoming {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Refresh token is expired or used"))
			return
		}

		accessToken, refreshToken, err := issueTokenPair(db, &user)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		auth.SetAuthCookies(c, accessToken, refreshToken)
		utils.Respond(c, http.StatusOK, gin.H{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		}, "Access token refreshed")
	}
}

// GET /users/current-user
func GetCurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusNotFound, "User not found"))
			return
		}
		utils.Respond(c, http.StatusOK, user.Public(), "User fetched successfully")
	}
}

// POST /users/change-password
func ChangeCurrentPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Old and new passwords are required"))
			return
		}
		if input.OldPassword == input.NewPassword {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "New password cannot be the same as the old one"))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)) != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusUnauthorized, "Invalid old password"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
	}
}

// PATCH /users/update-account
func UpdateAccountDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input UpdateAccountInput
		if err := c.ShouldBindJSON(&input); err != nil || (input.FullName == nil && input.Email == nil) {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "At least one field (full_name or email) is required to update"))
			return
		}

		updates := make(map[string]interface{})
		if input.FullName != nil {
			updates["full_name"] = *input.FullName
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, user.Public(), "Account details updated successfully")
	}
}

// PATCH /users/avatar — multipart form with the new avatar image.
func UpdateUserAvatar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		file, err := c.FormFile("avatar")
		if err != nil {
			middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Avatar file is missing"))
			return
		}

		avatarURL, err := utils.SaveUploadedImage(c, file, "avatars")
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		if err := db.Model(&user).Update("avatar", avatarURL).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, user.Public(), "Avatar image updated successfully")
	}
}

// GET /users/all-users — admin only.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		public := make([]models.PublicUser, 0, len(users))
		for i := range users {
			public = append(public, users[i].Public())
		}
		utils.Respond(c, http.StatusOK, public, "All users fetched successfully")
	}
}

func issueTokenPair(db *gorm.DB, user *models.User) (string, string, error) {
	accessToken, err := auth.IssueAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := auth.IssueRefreshToken(user)
	if err != nil {
		return "", "", err
	}

	if err := db.Model(user).Update("refresh_token", refreshToken).Error; err != nil {
		return "", "", err
	}
	user.RefreshToken = refreshToken
	return accessToken, refreshToken, nil
}
