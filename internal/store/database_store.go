package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc-dev/tag-registry/internal/config/db"
	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolationCode = "23505"

// DatabaseStore реализует хранилище тегов поверх PostgreSQL.
// Атомарность check-then-act обеспечивается транзакциями с блокировкой
// строки тега (SELECT ... FOR UPDATE) и первичным ключом таблицы алиасов.
type DatabaseStore struct {
	pool *pgxpool.Pool
}

// NewDatabaseStore создает новый DatabaseStore
func NewDatabaseStore(database db.Database) *DatabaseStore {
	adapter, ok := database.(*db.DBAdapter)
	if !ok {
		panic("DatabaseStore requires DBAdapter")
	}

	return &DatabaseStore{
		pool: adapter.Pool,
	}
}

// GetItem читает тег по каноническому идентификатору
func (ds *DatabaseStore) GetItem(ctx context.Context, uuid string) (model.Item, error) {
	query := `
		SELECT uuid, status, COALESCE(short, ''), COALESCE(batch_id, ''),
		       created_at, activated_at, phone, sns, COALESCE(message, '')
		FROM items
		WHERE uuid = $1
	`

	var (
		item    model.Item
		short   string
		phone   *string
		sns     *string
		message string
	)

	err := ds.pool.QueryRow(ctx, query, uuid).Scan(
		&item.UUID, &item.Status, &short, &item.BatchID,
		&item.CreatedAt, &item.ActivatedAt, &phone, &sns, &message,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, fmt.Errorf("item %s: %w", uuid, ErrNotFound)
		}
		return model.Item{}, fmt.Errorf("failed to read item: %w", err)
	}

	item.Short = model.Code(short)
	if item.Status == model.StatusActivated {
		item.PublicProfile = &model.PublicProfile{
			Phone:   phone,
			SNS:     sns,
			Message: message,
		}
	}

	return item, nil
}

// GetAlias читает запись алиаса по короткому коду
func (ds *DatabaseStore) GetAlias(ctx context.Context, code model.Code) (model.Alias, error) {
	query := `
		SELECT code, uuid, created_at
		FROM aliases
		WHERE code = $1
	`

	var alias model.Alias
	err := ds.pool.QueryRow(ctx, query, string(code)).Scan(&alias.Code, &alias.UUID, &alias.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Alias{}, fmt.Errorf("alias %s: %w", code, ErrNotFound)
		}
		return model.Alias{}, fmt.Errorf("failed to read alias: %w", err)
	}

	return alias, nil
}

// ClaimAlias атомарно закрепляет код за тегом в одной транзакции:
// блокирует строку тега, перечитывает short (конкурент мог выиграть гонку),
// вставляет алиас и устанавливает short.
func (ds *DatabaseStore) ClaimAlias(ctx context.Context, code model.Code, uuid string) (model.Code, bool, error) {
	tx, err := ds.pool.Begin(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing *string
	err = tx.QueryRow(ctx, `SELECT short FROM items WHERE uuid = $1 FOR UPDATE`, uuid).Scan(&existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, fmt.Errorf("item %s: %w", uuid, ErrNotFound)
		}
		return "", false, fmt.Errorf("failed to lock item: %w", err)
	}

	if existing != nil && *existing != "" {
		return model.Code(*existing), false, nil
	}

	_, err = tx.Exec(ctx, `INSERT INTO aliases (code, uuid) VALUES ($1, $2)`, string(code), uuid)
	if err != nil {
		if isUniqueViolation(err) {
			return "", false, fmt.Errorf("alias %s: %w", code, ErrAliasExists)
		}
		return "", false, fmt.Errorf("failed to insert alias: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE items SET short = $1 WHERE uuid = $2`, string(code), uuid)
	if err != nil {
		return "", false, fmt.Errorf("failed to set item short: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return code, true, nil
}

// Activate атомарно переводит тег из issued в activated в одной транзакции
// с блокировкой строки: повторная активация невозможна.
func (ds *DatabaseStore) Activate(ctx context.Context, uuid string, profile model.PublicProfile, now time.Time) error {
	tx, err := ds.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status model.Status
	err = tx.QueryRow(ctx, `SELECT status FROM items WHERE uuid = $1 FOR UPDATE`, uuid).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("item %s: %w", uuid, ErrNotFound)
		}
		return fmt.Errorf("failed to lock item: %w", err)
	}

	switch status {
	case model.StatusIssued:
	case model.StatusDisabled:
		return fmt.Errorf("item %s: %w", uuid, ErrDisabled)
	default:
		return fmt.Errorf("item %s: %w", uuid, ErrAlreadyActivated)
	}

	_, err = tx.Exec(ctx, `
		UPDATE items
		SET status = $1, activated_at = $2, phone = $3, sns = $4, message = $5
		WHERE uuid = $6
	`, string(model.StatusActivated), now, profile.Phone, profile.SNS, profile.Message, uuid)
	if err != nil {
		return fmt.Errorf("failed to activate item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CreateIssued атомарно создаёт тег в статусе issued вместе с его алиасом
func (ds *DatabaseStore) CreateIssued(ctx context.Context, item model.Item) error {
	tx, err := ds.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Сначала занимаем код в таблице алиасов: коллизия проявляется здесь
	// как нарушение первичного ключа, до появления самого тега
	_, err = tx.Exec(ctx, `
		INSERT INTO aliases (code, uuid, created_at)
		VALUES ($1, $2, $3)
	`, string(item.Short), item.UUID, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("alias %s: %w", item.Short, ErrAliasExists)
		}
		return fmt.Errorf("failed to insert alias: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO items (uuid, status, short, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, item.UUID, string(item.Status), string(item.Short), item.BatchID, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("item %s: %w", item.UUID, ErrItemExists)
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
