package api

import (
	"context"
	"fmt"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// UserClient implements ports.UserAPI against the /users family.
type UserClient struct {
	c *Client
}

// Users returns the user endpoint family.
func (c *Client) Users() *UserClient {
	return &UserClient{c: c}
}

func (u *UserClient) List(ctx context.Context, filter domain.UserFilter, page, limit int) ([]domain.User, domain.Pagination, error) {
	var env listEnvelope[domain.User]
	if err := u.c.get(ctx, "/users", pageQuery(filter, page, limit), &env); err != nil {
		return nil, domain.Pagination{}, err
	}
	for i := range env.Items {
		env.Items[i].Role = domain.NormalizeRole(string(env.Items[i].Role))
	}
	return env.Items, env.Pagination, nil
}

func (u *UserClient) Get(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := u.c.get(ctx, fmt.Sprintf("/users/detail/%d", id), nil, &user); err != nil {
		return nil, err
	}
	user.Role = domain.NormalizeRole(string(user.Role))
	return &user, nil
}

func (u *UserClient) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	in.Role = domain.NormalizeRole(string(in.Role))
	var user domain.User
	if err := u.c.post(ctx, "/users/create", in, &user); err != nil {
		return nil, err
	}
	user.Role = domain.NormalizeRole(string(user.Role))
	return &user, nil
}

func (u *UserClient) Update(ctx context.Context, id int, in domain.UserInput) (*domain.User, error) {
	in.Role = domain.NormalizeRole(string(in.Role))
	var user domain.User
	if err := u.c.put(ctx, fmt.Sprintf("/users/update/%d", id), in, &user); err != nil {
		return nil, err
	}
	user.Role = domain.NormalizeRole(string(user.Role))
	return &user, nil
}

func (u *UserClient) Delete(ctx context.Context, id int) error {
	return u.c.delete(ctx, fmt.Sprintf("/users/delete/%d", id))
}

// Login exchanges credentials for a bearer token plus identity. A 401
// here surfaces as the server's own message (wrong credentials), never
// as session expiry.
func (u *UserClient) Login(ctx context.Context, username, password string) (domain.Session, error) {
	body := map[string]string{"username": username, "password": password}
	var session domain.Session
	if err := u.c.post(ctx, loginPath, body, &session); err != nil {
		return domain.Session{}, err
	}
	session.User.Role = domain.NormalizeRole(string(session.User.Role))
	if !session.Authenticated() {
		return domain.Session{}, &APIError{Status: 401, Message: "invalid username or password"}
	}
	return session, nil
}
