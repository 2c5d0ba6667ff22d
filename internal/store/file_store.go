package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avc-dev/tag-registry/internal/model"
)

// FileStore декоратор над Store, который добавляет персистентность через
// append-only журнал. Атомарность обеспечивает вложенный in-memory Store;
// журнал пополняется только после успешной мутации.
type FileStore struct {
	store       *Store
	fileStorage *FileStorage
}

// NewFileStore создаёт FileStore и восстанавливает состояние из журнала
func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		store:       NewStore(),
		fileStorage: NewFileStorage(filePath),
	}

	if err := fs.loadFromFile(); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return fs, nil
}

// GetItem читает тег из in-memory store
func (fs *FileStore) GetItem(ctx context.Context, uuid string) (model.Item, error) {
	return fs.store.GetItem(ctx, uuid)
}

// GetAlias читает алиас из in-memory store
func (fs *FileStore) GetAlias(ctx context.Context, code model.Code) (model.Alias, error) {
	return fs.store.GetAlias(ctx, code)
}

// ClaimAlias закрепляет код за тегом и дописывает событие в журнал
func (fs *FileStore) ClaimAlias(ctx context.Context, code model.Code, uuid string) (model.Code, bool, error) {
	finalCode, created, err := fs.store.ClaimAlias(ctx, code, uuid)
	if err != nil || !created {
		return finalCode, created, err
	}

	entry := LedgerEntry{Op: "alias", UUID: uuid, Code: finalCode}
	if err := fs.fileStorage.Append(entry); err != nil {
		return "", false, fmt.Errorf("failed to append alias to ledger: %w", err)
	}

	return finalCode, created, nil
}

// Activate переводит тег в activated и дописывает событие в журнал
func (fs *FileStore) Activate(ctx context.Context, uuid string, profile model.PublicProfile, now time.Time) error {
	if err := fs.store.Activate(ctx, uuid, profile, now); err != nil {
		return err
	}

	item, err := fs.store.GetItem(ctx, uuid)
	if err != nil {
		return fmt.Errorf("failed to re-read activated item: %w", err)
	}

	entry := LedgerEntry{Op: "activate", UUID: uuid, Item: &item}
	if err := fs.fileStorage.Append(entry); err != nil {
		return fmt.Errorf("failed to append activation to ledger: %w", err)
	}

	return nil
}

// CreateIssued создаёт новый тег и дописывает событие в журнал
func (fs *FileStore) CreateIssued(ctx context.Context, item model.Item) error {
	if err := fs.store.CreateIssued(ctx, item); err != nil {
		return err
	}

	entry := LedgerEntry{Op: "issue", Item: &item}
	if err := fs.fileStorage.Append(entry); err != nil {
		return fmt.Errorf("failed to append issue to ledger: %w", err)
	}

	return nil
}

// loadFromFile восстанавливает состояние in-memory store из журнала
func (fs *FileStore) loadFromFile() error {
	entries, err := fs.fileStorage.Load()
	if err != nil {
		return err
	}

	items := make(map[string]model.Item)
	aliases := make(map[model.Code]model.Alias)

	for _, entry := range entries {
		switch entry.Op {
		case "issue":
			if entry.Item == nil {
				continue
			}
			items[entry.Item.UUID] = *entry.Item
			if entry.Item.Short != "" {
				aliases[entry.Item.Short] = model.Alias{
					Code:      entry.Item.Short,
					UUID:      entry.Item.UUID,
					CreatedAt: entry.Item.CreatedAt,
				}
			}
		case "alias":
			item, ok := items[entry.UUID]
			if !ok {
				continue
			}
			item.Short = entry.Code
			items[entry.UUID] = item
			aliases[entry.Code] = model.Alias{
				Code: entry.Code,
				UUID: entry.UUID,
			}
		case "activate":
			if entry.Item == nil {
				continue
			}
			items[entry.Item.UUID] = *entry.Item
		}
	}

	fs.store.InitializeWith(items, aliases)

	return nil
}
