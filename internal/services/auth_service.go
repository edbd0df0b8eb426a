package services

import (
	"context"
	"errors"

	"uploadhub_backend/internal/auth"
	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/pkg/apperrors"
)

// AuthService resolves credentials into tokens and identities.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Me returns the resolved identity view of the acting user.
	Me(ctx context.Context, actor *auth.Actor) (*dto.UserView, error)
	// ResolveActor loads the user behind validated token claims and
	// builds the request identity.
	ResolveActor(ctx context.Context, userID uint) (*auth.Actor, error)
}

type authService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID, "username", user.Username)
	return &dto.LoginResponse{
		AccessToken: token,
		User:        buildUserView(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, actor *auth.Actor) (*dto.UserView, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	view := buildUserView(user)
	return &view, nil
}

func (s *authService) ResolveActor(ctx context.Context, userID uint) (*auth.Actor, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	actor := &auth.Actor{
		UserID:   user.ID,
		Username: user.Username,
		Groups:   user.Groups,
	}
	if user.Custom != nil && user.Custom.Pipeline != nil {
		actor.Pipeline = user.Custom.Pipeline
	}
	return actor, nil
}

func buildUserView(user *models.User) dto.UserView {
	view := dto.UserView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Groups:   user.Groups,
	}
	if user.Custom != nil && user.Custom.Pipeline != nil {
		view.Pipeline = &user.Custom.Pipeline.ID
		view.PipelineName = user.Custom.Pipeline.Name
	}
	return view
}
