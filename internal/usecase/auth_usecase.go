package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase/auth"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResult struct {
	User   user.User `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in auth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in auth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Me(ctx context.Context, userID string) (user.User, error)
}

type authUsecase struct {
	svc    *auth.Service
	users  repository.UserRepository
	tokens jwt.Service
}

func NewAuthUsecase(svc *auth.Service, users repository.UserRepository, tokens jwt.Service) AuthUsecase {
	return &authUsecase{svc: svc, users: users, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, in auth.RegisterInput) (AuthResult, error) {
	created, err := u.svc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	pair, err := u.issueTokens(created)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: created, Tokens: pair}, nil
}

func (u *authUsecase) Login(ctx context.Context, in auth.LoginInput) (AuthResult, error) {
	logged, err := u.svc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	pair, err := u.issueTokens(logged)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: logged, Tokens: pair}, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := u.tokens.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.tokens.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	// Re-reads the account so a deactivated user cannot refresh forever.
	acct, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(acct)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return pair, nil
}

func (u *authUsecase) Me(ctx context.Context, userID string) (user.User, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return user.User{}, ErrUnauthorized
	}
	acct, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	acct.PasswordHash = ""
	return acct, nil
}

func (u *authUsecase) issueTokens(acct user.User) (TokenPair, error) {
	access, err := u.tokens.GenerateAccessToken(acct.ID, acct.Email, string(acct.Role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := u.tokens.GenerateRefreshToken(acct.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
