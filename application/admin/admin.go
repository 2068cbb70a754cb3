package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yogapit/eshop/cmd/config"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	redisrepo "github.com/yogapit/eshop/repository/redis"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AdminApp interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, tokenString string) error
	ValidateToken(ctx context.Context, tokenString string) (string, error)
}

type AdminAppImpl struct {
	config    *config.Config
	redisRepo redisrepo.Repository
}

func NewAdminApp(config *config.Config, redisRepo redisrepo.Repository) AdminApp {
	return &AdminAppImpl{
		config:    config,
		redisRepo: redisRepo,
	}
}

// Login checks the single admin account from config and opens a session.
func (s *AdminAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	auth := s.config.Auth
	if auth.AdminPasswordHash == "" {
		logger.Warn("[Login] admin password hash not configured")
		return nil, errors.SetCustomError(constant.ErrInvalidCredential)
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(auth.AdminUsername)) == 1
	// bcrypt runs even for an unknown username
	passErr := bcrypt.CompareHashAndPassword([]byte(auth.AdminPasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		logger.Security("admin login failed", zap.String("username", req.Username))
		return nil, errors.SetCustomError(constant.ErrInvalidCredential)
	}

	token, jti, err := s.generateJWT(auth.AdminUsername)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, auth.AdminUsername, auth.SessionExpTime); err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Security("admin login", zap.String("username", auth.AdminUsername))
	return &model.LoginResponse{
		Username: auth.AdminUsername,
		Token:    token,
	}, nil
}

func (s *AdminAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// ValidateToken returns the admin username of a valid token with a live session.
func (s *AdminAppImpl) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}

	username, err := s.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("invalid or expired session")
	}
	if username != claims.Subject {
		return "", fmt.Errorf("token does not match session")
	}
	return username, nil
}

func (s *AdminAppImpl) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token missing jti")
	}
	return claims, nil
}

func (s *AdminAppImpl) generateJWT(username string) (string, string, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return "", "", err
	}
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}
