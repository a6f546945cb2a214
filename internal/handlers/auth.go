package handlers

import (
	"errors"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users        repositories.UserRepository
	firebaseAuth *auth.Client
	jwtSecret    string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when Firebase is not configured; the firebase-login route then rejects.
func NewAuthHandler(users repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		users:        users,
		firebaseAuth: firebaseAuthClient,
		jwtSecret:    jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register creates a local record for a user already authenticated with
// Firebase on the client
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetUserByFirebaseUID(ctx, req.FirebaseUID); err == nil {
		return c.JSON(http.StatusConflict, Response{Success: false, Message: "user with this firebase uid already registered"})
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		FirebaseUID: &req.FirebaseUID,
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, Response{Success: false, Message: "user with this email already registered"})
		}
		return fail(c, err)
	}

	return ok(c, http.StatusCreated, "user registered", user)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateLocalUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetUserByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, Response{Success: false, Message: "user with this email already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		return fail(c, err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "signed up", echo.Map{"token": token, "user": user})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.users.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "invalid email or password"})
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "signed in", echo.Map{"token": token, "user": user})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and issues a local JWT,
// creating or linking the local user record as needed
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return c.JSON(http.StatusServiceUnavailable, Response{Success: false, Message: "firebase authentication is not configured"})
	}

	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	token, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "invalid firebase id token"})
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.users.GetUserByFirebaseUID(ctx, firebaseUID)
	switch {
	case err == nil:
		if email != "" {
			user.Email = email
		}
		if name != "" {
			user.Name = name
		}
		if err := h.users.UpdateUser(ctx, user); err != nil {
			return fail(c, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = h.users.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			// existing local account, link the firebase identity
			user.FirebaseUID = &firebaseUID
			if err := h.users.UpdateUser(ctx, user); err != nil {
				return fail(c, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = &models.User{Name: name, Email: email, FirebaseUID: &firebaseUID}
			if err := h.users.CreateUser(ctx, user); err != nil {
				return fail(c, err)
			}
		default:
			return fail(c, err)
		}
	default:
		return fail(c, err)
	}

	jwtToken, err := h.generateJWT(user)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "signed in", echo.Map{"token": jwtToken, "user": user})
}

func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
