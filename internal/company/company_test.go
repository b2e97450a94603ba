package company

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockflow-app/stockflow/internal/shared"
)

type memoryRepo struct {
	companies map[string]Company
	nextID    int
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return Company{}, shared.ErrNotFound
	}
	return c, nil
}

func (r *memoryRepo) Insert(ctx context.Context, name string) (string, error) {
	r.nextID++
	id := fmt.Sprintf("co-%d", r.nextID)
	r.companies[id] = Company{ID: id, Name: name}
	return id, nil
}

func (r *memoryRepo) Update(ctx context.Context, id, name, logoURL string) error {
	c, ok := r.companies[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.Name = name
	c.LogoURL = logoURL
	r.companies[id] = c
	return nil
}

func TestCreateAndUpdate(t *testing.T) {
	repo := &memoryRepo{companies: map[string]Company{}}
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, "  Builders Inc  ")
	require.NoError(t, err)

	c, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Builders Inc", c.Name)

	require.NoError(t, svc.Update(ctx, id, UpdateInput{Name: "Builders International", LogoURL: "https://cdn.example.com/logo.png"}))
	c, err = svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Builders International", c.Name)
	require.Equal(t, "https://cdn.example.com/logo.png", c.LogoURL)
}

func TestUpdateRequiresName(t *testing.T) {
	svc := NewService(&memoryRepo{companies: map[string]Company{}})

	err := svc.Update(context.Background(), "co-1", UpdateInput{Name: "   "})
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Company name is required", fields["name"])
}
