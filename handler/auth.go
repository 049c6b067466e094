package handler

import (
	"net/http"
	"net/mail"
	"time"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"
	"campuseventhub-backend/jwt"
	"campuseventhub-backend/log"
	"campuseventhub-backend/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	s   store.Store
	key []byte
}

func NewAuthHandler(s store.Store, key []byte) *authHandler {
	return &authHandler{s: s, key: key}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	College  string `json:"college"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *authHandler) Register(c *gin.Context) {
	req := &registerRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.ErrEmailAddressFormat)
		return
	}

	if req.Name == "" {
		writeError(c, errs.ErrNameRequired)
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(c, errs.ErrEmailAddressFormat)
		return
	}

	if req.Password == "" {
		writeError(c, errs.ErrPasswordRequired)
		return
	}

	if req.College == "" {
		writeError(c, errs.ErrCollegeRequired)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		log.Logger.Error("failed to generate bcrypt hash", zap.Error(err))
		writeError(c, errs.ErrCryptographic)
		return
	}

	u := &entity.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		College:   req.College,
		Role:      entity.RoleStudent,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.s.CreateUser(c.Request.Context(), u); err != nil {
		if err == errs.ErrAlreadyExists {
			log.Logger.Debug("already has account", zap.String("email", req.Email))
		}

		writeError(c, err)
		return
	}

	res, err := h.tokenPair(u)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(c *gin.Context) {
	req := &loginRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.ErrInvalidEmailOrPassword)
		return
	}

	if req.Email == "" {
		writeError(c, errs.ErrEmailRequired)
		return
	}

	if req.Password == "" {
		writeError(c, errs.ErrPasswordRequired)
		return
	}

	u, err := h.s.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err == errs.ErrNotFound {
			writeError(c, errs.ErrInvalidEmailOrPassword)
			return
		}

		writeError(c, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			log.Logger.Debug("invalid password", zap.Error(err))
			writeError(c, errs.ErrInvalidEmailOrPassword)
			return
		}

		writeError(c, errs.ErrCryptographic)
		return
	}

	res, err := h.tokenPair(u)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

type refreshRequest struct {
	Token string `json:"token"`
}

func (h *authHandler) Refresh(c *gin.Context) {
	req := &refreshRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.ErrJWT)
		return
	}

	claims, err := jwt.ValidateRefreshToken(req.Token, h.key)
	if err != nil {
		if err == jwt.ErrExpired {
			writeError(c, errs.ErrTokenExpired)
			return
		}

		writeError(c, errs.ErrJWT)
		return
	}

	id, err := objectID(claims.UserID)
	if err != nil {
		writeError(c, errs.ErrJWT)
		return
	}

	u, err := h.s.FindUserByID(c.Request.Context(), id)
	if err != nil {
		if err == errs.ErrNotFound {
			writeError(c, errs.ErrJWT)
			return
		}

		writeError(c, err)
		return
	}

	token, err := jwt.NewAccessToken(u, h.key)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		writeError(c, errs.ErrJWT)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *authHandler) tokenPair(u *entity.User) (*tokenPairResponse, error) {
	res := &tokenPairResponse{}

	var err error
	res.RefreshToken, err = jwt.NewRefreshToken(u, h.key)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		return nil, errs.ErrJWT
	}

	res.AccessToken, err = jwt.NewAccessToken(u, h.key)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		return nil, errs.ErrJWT
	}

	return res, nil
}
