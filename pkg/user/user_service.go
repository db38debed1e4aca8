package user

import (
	"context"
	"errors"
	"fmt"

	"nutrify-backend/domain"
	"nutrify-backend/entities"
	"nutrify-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.SignupRequest) (domain.UserResponse, string, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.UserResponse, string, error)
		Profile(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// Register creates the user and immediately establishes a session, so the
// caller is signed in after signup. Email uniqueness is enforced by the
// users table; the pre-check only gives a cleaner error in the common case.
func (s *userService) Register(ctx context.Context, req domain.SignupRequest) (domain.UserResponse, string, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, "", domain.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, "", domain.ErrEmailExists
		}
		return domain.UserResponse{}, "", err
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID.String())
	if err != nil {
		return domain.UserResponse{}, "", err
	}

	return toUserResponse(user), token, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.UserResponse, string, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, "", domain.ErrInvalidCredentials
		}
		return domain.UserResponse{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return domain.UserResponse{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID.String())
	if err != nil {
		return domain.UserResponse{}, "", err
	}

	return toUserResponse(user), token, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.FullName = req.FullName
	user.Age = req.Age
	user.Height = req.Height
	user.Weight = req.Weight
	user.Gender = req.Gender

	return s.userRepository.UpdateUser(ctx, user)
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		Email:    user.Email,
		FullName: user.FullName,
		Age:      user.Age,
		Height:   user.Height,
		Weight:   user.Weight,
		Gender:   user.Gender,
	}
}
