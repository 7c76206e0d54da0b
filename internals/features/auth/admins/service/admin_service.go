package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hallticket_backend/internals/constants"
	"hallticket_backend/internals/features/auth/admins/dto"
	"hallticket_backend/internals/features/auth/admins/model"
	"hallticket_backend/internals/features/auth/admins/repository"
	helper "hallticket_backend/internals/helpers"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AdminService struct {
	repo   repository.AdminRepository
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewAdminService(repo repository.AdminRepository, secret string, ttl time.Duration) *AdminService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AdminService{repo: repo, secret: secret, ttl: ttl, now: time.Now}
}

// Authenticate memeriksa username/password lalu menerbitkan JWT HS256.
// Username tidak ada & password salah → error yang sama (ErrUnauthorized).
func (s *AdminService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	a, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return nil, helper.ErrUnauthorized
		}
		return nil, err
	}
	if !a.CheckPassword(req.Password) {
		return nil, helper.ErrUnauthorized
	}

	token, exp, err := s.IssueToken(a)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		Admin:       dto.ToAdminResponse(a),
	}, nil
}

func (s *AdminService) IssueToken(a *model.AdminModel) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := authMiddleware.AdminClaims{
		ID:       a.AdminID.String(),
		Username: a.AdminUsername,
		Role:     a.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.AdminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *AdminService) Me(ctx context.Context, id uuid.UUID) (*dto.AdminResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.ToAdminResponse(a)
	return &res, nil
}

// SeedAdmin membuat admin bila username belum ada. created=false bila sudah ada.
func (s *AdminService) SeedAdmin(ctx context.Context, username, password, name string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: username and password are required", helper.ErrInvalidInput)
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		log.Printf("[INFO] seed: admin %q already exists", username)
		return false, nil
	} else if !errors.Is(err, helper.ErrNotFound) {
		return false, err
	}

	a := &model.AdminModel{
		AdminUsername: username,
		AdminPassword: password,
		AdminName:     strings.TrimSpace(name),
		AdminRole:     constants.RoleSuperAdmin,
	}
	if a.AdminName == "" {
		a.AdminName = username
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return false, err
	}
	log.Printf("[INFO] seed: admin %q created", username)
	return true, nil
}
