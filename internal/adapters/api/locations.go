package api

import (
	"context"
	"fmt"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// LocationClient implements ports.LocationAPI against the /lokasi
// family.
type LocationClient struct {
	c *Client
}

// Locations returns the location endpoint family.
func (c *Client) Locations() *LocationClient {
	return &LocationClient{c: c}
}

func (l *LocationClient) List(ctx context.Context, filter domain.LocationFilter, page, limit int) ([]domain.Location, domain.Pagination, error) {
	var env listEnvelope[domain.Location]
	if err := l.c.get(ctx, "/lokasi", pageQuery(filter, page, limit), &env); err != nil {
		return nil, domain.Pagination{}, err
	}
	return env.Items, env.Pagination, nil
}

func (l *LocationClient) Get(ctx context.Context, id int) (*domain.Location, error) {
	var loc domain.Location
	if err := l.c.get(ctx, fmt.Sprintf("/lokasi/detail/%d", id), nil, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (l *LocationClient) Create(ctx context.Context, in domain.LocationInput) (*domain.Location, error) {
	var loc domain.Location
	if err := l.c.post(ctx, "/lokasi/create", in, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Update goes to /lokasi/uptade/{id}. The typo is the backend's; it is
// part of the deployed route table.
func (l *LocationClient) Update(ctx context.Context, id int, in domain.LocationInput) (*domain.Location, error) {
	var loc domain.Location
	if err := l.c.put(ctx, fmt.Sprintf("/lokasi/uptade/%d", id), in, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (l *LocationClient) Delete(ctx context.Context, id int) error {
	return l.c.delete(ctx, fmt.Sprintf("/lokasi/delete/%d", id))
}
