package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/internal/domain"
)

type UserUsecase struct {
	gw Gateways
}

func NewUserUsecase(gw Gateways) *UserUsecase {
	return &UserUsecase{gw: gw}
}

func (uc *UserUsecase) Get(ctx context.Context, id string) (*domain.User, error) {
	return uc.gw.Users.Get(ctx, id)
}

func (uc *UserUsecase) Login(ctx context.Context, email, password string) (domain.Token, error) {
	if strings.TrimSpace(email) == "" {
		return domain.Token{}, &domain.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	token, err := uc.gw.Users.Login(ctx, email, password)
	if err != nil {
		return domain.Token{}, errors.Wrap(err, "UserUsecase.Login")
	}
	return token, nil
}

func (uc *UserUsecase) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	if strings.TrimSpace(input.Email) == "" {
		return domain.User{}, &domain.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if input.Password == "" {
		return domain.User{}, &domain.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	user, err := uc.gw.Users.Register(ctx, input)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "UserUsecase.Register")
	}
	return user, nil
}
