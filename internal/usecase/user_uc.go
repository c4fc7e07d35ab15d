package usecase

import (
	"context"
	"time"

	"github.com/phenrril/shopmarket/internal/domain"
)

type UserUC struct {
	Users domain.UserRepo
}

func (uc *UserUC) List(ctx context.Context) ([]domain.User, error) {
	return uc.Users.List(ctx)
}

// UserPatch holds the admin editable fields; nil leaves a field unchanged.
type UserPatch struct {
	IsActive *bool        `json:"is_active"`
	Role     *domain.Role `json:"role"`
}

func (uc *UserUC) Patch(ctx context.Context, id string, p UserPatch) (*domain.User, error) {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != nil {
		r, ok := domain.ParseRole(string(*p.Role))
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		u.Role = r
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *UserUC) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	return uc.Patch(ctx, id, UserPatch{IsActive: &active})
}

func (uc *UserUC) SetRole(ctx context.Context, id string, r domain.Role) (*domain.User, error) {
	return uc.Patch(ctx, id, UserPatch{Role: &r})
}

// Seed stores users when the user table is empty.
func (uc *UserUC) Seed(ctx context.Context, users []domain.User) (int, error) {
	n, err := uc.Users.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range users {
		if users[i].CreatedAt.IsZero() {
			users[i].CreatedAt = time.Now()
		}
		if err := uc.Users.Save(ctx, &users[i]); err != nil {
			return i, err
		}
	}
	return len(users), nil
}
