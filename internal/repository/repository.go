package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avc-dev/tag-registry/internal/model"
)

// Store определяет контракт хранилища тегов и алиасов.
// ClaimAlias, Activate и CreateIssued — единственные операции, которым
// разрешено изменять short, status и public_profile; каждая из них
// атомарна относительно других писателей той же записи.
type Store interface {
	GetItem(ctx context.Context, uuid string) (model.Item, error)
	GetAlias(ctx context.Context, code model.Code) (model.Alias, error)
	ClaimAlias(ctx context.Context, code model.Code, uuid string) (model.Code, bool, error)
	Activate(ctx context.Context, uuid string, profile model.PublicProfile, now time.Time) error
	CreateIssued(ctx context.Context, item model.Item) error
}

type Repository struct {
	underlying Store
}

func New(underlying Store) *Repository {
	return &Repository{underlying}
}

func (r *Repository) GetItem(ctx context.Context, uuid string) (model.Item, error) {
	item, err := r.underlying.GetItem(ctx, uuid)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *Repository) GetAlias(ctx context.Context, code model.Code) (model.Alias, error) {
	alias, err := r.underlying.GetAlias(ctx, code)
	if err != nil {
		return model.Alias{}, fmt.Errorf("failed to get alias: %w", err)
	}
	return alias, nil
}

func (r *Repository) ClaimAlias(ctx context.Context, code model.Code, uuid string) (model.Code, bool, error) {
	finalCode, created, err := r.underlying.ClaimAlias(ctx, code, uuid)
	if err != nil {
		return "", false, fmt.Errorf("failed to claim alias: %w", err)
	}
	return finalCode, created, nil
}

func (r *Repository) Activate(ctx context.Context, uuid string, profile model.PublicProfile, now time.Time) error {
	if err := r.underlying.Activate(ctx, uuid, profile, now); err != nil {
		return fmt.Errorf("failed to activate item: %w", err)
	}
	return nil
}

func (r *Repository) CreateIssued(ctx context.Context, item model.Item) error {
	if err := r.underlying.CreateIssued(ctx, item); err != nil {
		return fmt.Errorf("failed to create issued item: %w", err)
	}
	return nil
}
