package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/shopmarket/internal/domain"
)

// AuthUC simulates sign-in. There is no password store: any non-empty
// password is accepted for an active user.
type AuthUC struct {
	Sessions *SessionUC
	Users    domain.UserRepo
	Delay    time.Duration
}

type SignupRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (uc *AuthUC) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	email = normEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := wait(ctx, uc.Delay); err != nil {
		return nil, err
	}
	u, err := uc.Users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = &domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: "John",
			LastName:  "Doe",
			Role:      domain.RoleUser,
			IsActive:  true,
			CreatedAt: uc.Sessions.now(),
		}
	case err != nil:
		return nil, err
	case !u.IsActive:
		return nil, domain.ErrUserInactive
	}
	return uc.signIn(ctx, sid, u)
}

func (uc *AuthUC) Signup(ctx context.Context, sid string, req SignupRequest) (*domain.User, error) {
	email := normEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if req.Password != req.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if err := wait(ctx, uc.Delay); err != nil {
		return nil, err
	}
	u, err := uc.Users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = &domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			Role:      domain.RoleUser,
			IsActive:  true,
			CreatedAt: uc.Sessions.now(),
		}
	case err != nil:
		return nil, err
	case !u.IsActive:
		return nil, domain.ErrUserInactive
	}
	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	return uc.signIn(ctx, sid, u)
}

func (uc *AuthUC) signIn(ctx context.Context, sid string, u *domain.User) (*domain.User, error) {
	now := uc.Sessions.now()
	u.LastLogin = &now
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	_, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		cp := *u
		st.User = &cp
		st.IsAuthenticated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Logout drops the user together with cart, wishlist and orders.
func (uc *AuthUC) Logout(ctx context.Context, sid string) error {
	_, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		st.SignOut()
		return nil
	})
	return err
}

func (uc *AuthUC) Me(ctx context.Context, sid string) (*domain.User, bool, error) {
	st, err := uc.Sessions.View(ctx, sid)
	if err != nil {
		return nil, false, err
	}
	return st.User, st.IsAuthenticated, nil
}
