package api

import (
	"context"
	"fmt"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// AssetClient implements ports.AssetAPI against the /barang family.
type AssetClient struct {
	c *Client
}

// Assets returns the asset endpoint family.
func (c *Client) Assets() *AssetClient {
	return &AssetClient{c: c}
}

func (a *AssetClient) List(ctx context.Context, filter domain.AssetFilter, page, limit int) ([]domain.Asset, domain.Pagination, error) {
	var env listEnvelope[domain.Asset]
	if err := a.c.get(ctx, "/barang", pageQuery(filter, page, limit), &env); err != nil {
		return nil, domain.Pagination{}, err
	}
	return env.Items, env.Pagination, nil
}

func (a *AssetClient) Get(ctx context.Context, id int) (*domain.Asset, error) {
	var asset domain.Asset
	if err := a.c.get(ctx, fmt.Sprintf("/barang/detail/%d", id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (a *AssetClient) Create(ctx context.Context, in domain.AssetInput) (*domain.Asset, error) {
	var asset domain.Asset
	if err := a.c.post(ctx, "/barang/create", in, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (a *AssetClient) Update(ctx context.Context, id int, in domain.AssetInput) (*domain.Asset, error) {
	var asset domain.Asset
	if err := a.c.put(ctx, fmt.Sprintf("/barang/update/%d", id), in, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (a *AssetClient) Delete(ctx context.Context, id int) error {
	return a.c.delete(ctx, fmt.Sprintf("/barang/delete/%d", id))
}
