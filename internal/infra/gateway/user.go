package gateway

import (
	"context"

	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type UserGateway struct {
	col collection
}

func NewUserGateway(cl *client.Client, baseURL string) *UserGateway {
	return &UserGateway{col: newCollection(cl, "users", baseURL)}
}

func (g *UserGateway) Get(ctx context.Context, id string) (*domain.User, error) {
	var rec musicgw.UserRecord
	found, err := g.col.get(ctx, id, &rec)
	if err != nil || !found || rec.ID == "" {
		return nil, err
	}
	user := userFromRecord(rec)
	return &user, nil
}

func (g *UserGateway) Login(ctx context.Context, email, password string) (domain.Token, error) {
	var res musicgw.TokenResponse
	err := g.col.post(ctx, "login", "login", musicgw.Credentials{Email: email, Password: password}, &res)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.Token{JWT: res.JWT}, nil
}

// Register creates the account. The password is forwarded as given.
func (g *UserGateway) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	req := body{
		"firstName": input.FirstName,
		"lastName":  input.SecondName,
		"password":  input.Password,
		"email":     input.Email,
	}
	var rec musicgw.UserRecord
	if err := g.col.post(ctx, "register", "register", req, &rec); err != nil {
		return domain.User{}, err
	}
	user := userFromRecord(rec)
	// some user services echo only the id
	if user.Email == "" {
		user.FirstName = input.FirstName
		user.SecondName = input.SecondName
		user.Email = input.Email
		user.Password = input.Password
	}
	return user, nil
}

var _ usecase.UserGateway = (*UserGateway)(nil)
