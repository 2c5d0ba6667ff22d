package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avc-dev/tag-registry/internal/model"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAliasExists      = errors.New("alias already exists")
	ErrItemExists       = errors.New("item already exists")
	ErrAlreadyActivated = errors.New("item already activated")
	ErrDisabled         = errors.New("item disabled")
)

// Store хранит теги и их алиасы в памяти.
// Единственное разделяемое изменяемое состояние — записи items и aliases;
// все мутации short/status/public_profile проходят только через
// ClaimAlias, Activate и CreateIssued под общим мьютексом — это и есть
// атомарный примитив для однопроцессного варианта.
type Store struct {
	items   map[string]model.Item
	aliases map[model.Code]model.Alias
	mutex   sync.Mutex
}

func NewStore() *Store {
	return &Store{
		items:   make(map[string]model.Item),
		aliases: make(map[model.Code]model.Alias),
	}
}

// GetItem читает тег по каноническому идентификатору
func (s *Store) GetItem(_ context.Context, uuid string) (model.Item, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, ok := s.items[uuid]
	if !ok {
		return model.Item{}, fmt.Errorf("item %s: %w", uuid, ErrNotFound)
	}

	return item, nil
}

// GetAlias читает запись алиаса по короткому коду
func (s *Store) GetAlias(_ context.Context, code model.Code) (model.Alias, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	alias, ok := s.aliases[code]
	if !ok {
		return model.Alias{}, fmt.Errorf("alias %s: %w", code, ErrNotFound)
	}

	return alias, nil
}

// ClaimAlias атомарно закрепляет код за тегом: создаёт запись алиаса и
// устанавливает short у тега как единую операцию.
// Возвращает итоговый код и признак created:
//   - тег уже имеет short (конкурент успел раньше) — возвращаем его код, created=false;
//   - код свободен — закрепляем, created=true;
//   - код занят другим тегом — ErrAliasExists (коллизия, вызывающий повторяет попытку).
func (s *Store) ClaimAlias(_ context.Context, code model.Code, uuid string) (model.Code, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, ok := s.items[uuid]
	if !ok {
		return "", false, fmt.Errorf("item %s: %w", uuid, ErrNotFound)
	}

	// Перечитываем тег внутри критической секции: если другой вызов уже
	// выиграл гонку, возвращаем его код без записи
	if item.Short != "" {
		return item.Short, false, nil
	}

	if _, exists := s.aliases[code]; exists {
		return "", false, fmt.Errorf("alias %s: %w", code, ErrAliasExists)
	}

	s.aliases[code] = model.Alias{
		Code:      code,
		UUID:      uuid,
		CreatedAt: time.Now(),
	}

	item.Short = code
	s.items[uuid] = item

	return code, true, nil
}

// Activate атомарно переводит тег из issued в activated.
// Переход разрешён ровно один раз: конкурирующие вызовы наблюдают смену
// статуса и получают ErrAlreadyActivated, профиль не перезаписывается.
func (s *Store) Activate(_ context.Context, uuid string, profile model.PublicProfile, now time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, ok := s.items[uuid]
	if !ok {
		return fmt.Errorf("item %s: %w", uuid, ErrNotFound)
	}

	switch item.Status {
	case model.StatusIssued:
		// Единственный разрешённый переход
	case model.StatusDisabled:
		return fmt.Errorf("item %s: %w", uuid, ErrDisabled)
	default:
		return fmt.Errorf("item %s: %w", uuid, ErrAlreadyActivated)
	}

	item.Status = model.StatusActivated
	item.ActivatedAt = &now
	item.PublicProfile = &profile
	s.items[uuid] = item

	return nil
}

// CreateIssued атомарно создаёт новый тег в статусе issued вместе с его
// алиасом. Используется административным массовым выпуском.
func (s *Store) CreateIssued(_ context.Context, item model.Item) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.items[item.UUID]; exists {
		return fmt.Errorf("item %s: %w", item.UUID, ErrItemExists)
	}

	if item.Short != "" {
		if _, exists := s.aliases[item.Short]; exists {
			return fmt.Errorf("alias %s: %w", item.Short, ErrAliasExists)
		}
		s.aliases[item.Short] = model.Alias{
			Code:      item.Short,
			UUID:      item.UUID,
			CreatedAt: item.CreatedAt,
		}
	}
	s.items[item.UUID] = item

	return nil
}

// InitializeWith инициализирует хранилище данными (без проверок на
// существование). Используется для массовой загрузки, например, из файла.
func (s *Store) InitializeWith(items map[string]model.Item, aliases map[model.Code]model.Alias) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for uuid, item := range items {
		s.items[uuid] = item
	}
	for code, alias := range aliases {
		s.aliases[code] = alias
	}
}
