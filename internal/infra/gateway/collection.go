package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
)

// collection is the REST surface shared by every entity service.
type collection struct {
	client  *client.Client
	service string
	baseURL string
}

func newCollection(cl *client.Client, service, baseURL string) collection {
	return collection{
		client:  cl,
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c collection) fail(op string, err error) error {
	return &domain.UpstreamError{Service: c.service, Op: op, Err: err}
}

func (c collection) endpoint(op string, parts ...string) (string, error) {
	if c.baseURL == "" {
		return "", c.fail(op, errors.WithMessage(domain.ErrServiceNotConfigured, c.service))
	}
	u := c.baseURL
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u, nil
}

// get decodes the record into out. found is false on 404.
func (c collection) get(ctx context.Context, id string, out any) (found bool, err error) {
	u, err := c.endpoint("get", id)
	if err != nil {
		return false, err
	}
	err = c.client.HttpRequest(ctx, http.MethodGet, u, "", nil, out)
	if client.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, c.fail("get", err)
	}
	return true, nil
}

func (c collection) list(ctx context.Context, limit, offset int, out any) error {
	u, err := c.endpoint("list")
	if err != nil {
		return err
	}
	u += fmt.Sprintf("?limit=%d&offset=%d", limit, offset)
	if err := c.client.HttpRequest(ctx, http.MethodGet, u, "", nil, out); err != nil {
		return c.fail("list", err)
	}
	return nil
}

func (c collection) create(ctx context.Context, token string, body, out any) error {
	u, err := c.endpoint("create")
	if err != nil {
		return err
	}
	if err := c.client.HttpRequest(ctx, http.MethodPost, u, token, body, out); err != nil {
		return c.fail("create", err)
	}
	return nil
}

func (c collection) update(ctx context.Context, token, id string, body, out any) error {
	u, err := c.endpoint("update", id)
	if err != nil {
		return err
	}
	if err := c.client.HttpRequest(ctx, http.MethodPut, u, token, body, out); err != nil {
		return c.fail("update", err)
	}
	return nil
}

func (c collection) delete(ctx context.Context, token, id string) error {
	u, err := c.endpoint("delete", id)
	if err != nil {
		return err
	}
	if err := c.client.HttpRequest(ctx, http.MethodDelete, u, token, nil, nil); err != nil {
		return c.fail("delete", err)
	}
	return nil
}

// post sends to a named sub-resource such as /login.
func (c collection) post(ctx context.Context, op, path string, body, out any) error {
	u, err := c.endpoint(op, path)
	if err != nil {
		return err
	}
	if err := c.client.HttpRequest(ctx, http.MethodPost, u, "", body, out); err != nil {
		return c.fail(op, err)
	}
	return nil
}

func deletedMessage(entity, id string) string {
	return fmt.Sprintf("%s with id %s was successfully deleted", entity, id)
}

// body collects the fields of a write request, skipping absent ones.
type body map[string]any

func (b body) str(key string, v *string) {
	if v != nil {
		b[key] = *v
	}
}

func (b body) num(key string, v *int) {
	if v != nil {
		b[key] = *v
	}
}

func (b body) ids(key string, v []string) {
	if v != nil {
		b[key] = v
	}
}
