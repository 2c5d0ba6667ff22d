package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedItem(uuid string, short model.Code) model.Item {
	return model.Item{
		UUID:      uuid,
		Status:    model.StatusIssued,
		Short:     short,
		BatchID:   "test-batch",
		CreatedAt: time.Now(),
	}
}

// TestStore_GetItem проверяет чтение тега
func TestStore_GetItem(t *testing.T) {
	// Arrange
	s := NewStore()
	ctx := context.Background()
	item := issuedItem("uuid-1", "CODE0000000001")
	require.NoError(t, s.CreateIssued(ctx, item))

	// Act & Assert
	got, err := s.GetItem(ctx, "uuid-1")
	require.NoError(t, err)
	assert.Equal(t, item.UUID, got.UUID)
	assert.Equal(t, model.StatusIssued, got.Status)

	_, err = s.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestStore_GetAlias проверяет чтение алиаса
func TestStore_GetAlias(t *testing.T) {
	// Arrange
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "CODE0000000001")))

	// Act & Assert
	alias, err := s.GetAlias(ctx, "CODE0000000001")
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", alias.UUID)

	_, err = s.GetAlias(ctx, "MISSING0000001")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestStore_CreateIssued проверяет создание тега и конфликты
func TestStore_CreateIssued(t *testing.T) {
	// Arrange
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "CODE0000000001")))

	// Act & Assert — повторный идентификатор
	err := s.CreateIssued(ctx, issuedItem("uuid-1", "CODE0000000002"))
	assert.ErrorIs(t, err, ErrItemExists)

	// Занятый код
	err = s.CreateIssued(ctx, issuedItem("uuid-2", "CODE0000000001"))
	assert.ErrorIs(t, err, ErrAliasExists)
}

// TestStore_ClaimAlias проверяет семантику check-and-set
func TestStore_ClaimAlias(t *testing.T) {
	ctx := context.Background()

	t.Run("Claims free code", func(t *testing.T) {
		// Arrange — тег без алиаса
		s := NewStore()
		s.InitializeWith(map[string]model.Item{
			"uuid-1": {UUID: "uuid-1", Status: model.StatusIssued},
		}, nil)

		// Act
		code, created, err := s.ClaimAlias(ctx, "NEWCODE0000001", "uuid-1")

		// Assert
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, model.Code("NEWCODE0000001"), code)

		item, err := s.GetItem(ctx, "uuid-1")
		require.NoError(t, err)
		assert.Equal(t, code, item.Short)
	})

	t.Run("Returns existing short without write", func(t *testing.T) {
		// Arrange
		s := NewStore()
		require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "EXISTING000001")))

		// Act
		code, created, err := s.ClaimAlias(ctx, "NEWCODE0000001", "uuid-1")

		// Assert — возвращён прежний код, новый алиас не создан
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, model.Code("EXISTING000001"), code)

		_, err = s.GetAlias(ctx, "NEWCODE0000001")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Collision with foreign code", func(t *testing.T) {
		// Arrange — код занят другим тегом
		s := NewStore()
		require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "TAKEN000000001")))
		s.InitializeWith(map[string]model.Item{
			"uuid-2": {UUID: "uuid-2", Status: model.StatusIssued},
		}, nil)

		// Act
		_, _, err := s.ClaimAlias(ctx, "TAKEN000000001", "uuid-2")

		// Assert
		assert.ErrorIs(t, err, ErrAliasExists)
	})

	t.Run("Unknown item", func(t *testing.T) {
		s := NewStore()

		_, _, err := s.ClaimAlias(ctx, "ANYCODE0000001", "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestStore_Activate проверяет переходы состояний
func TestStore_Activate(t *testing.T) {
	ctx := context.Background()
	phone := "010-1234-5678"
	profile := model.PublicProfile{Phone: &phone, Message: "please call"}

	t.Run("Issued to activated", func(t *testing.T) {
		// Arrange
		s := NewStore()
		require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "CODE0000000001")))
		now := time.Now()

		// Act
		err := s.Activate(ctx, "uuid-1", profile, now)

		// Assert
		require.NoError(t, err)
		item, err := s.GetItem(ctx, "uuid-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusActivated, item.Status)
		require.NotNil(t, item.ActivatedAt)
		assert.Equal(t, now, *item.ActivatedAt)
		require.NotNil(t, item.PublicProfile)
		assert.Equal(t, profile, *item.PublicProfile)
	})

	t.Run("Second activation is rejected and profile untouched", func(t *testing.T) {
		// Arrange
		s := NewStore()
		require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "CODE0000000001")))
		require.NoError(t, s.Activate(ctx, "uuid-1", profile, time.Now()))

		otherPhone := "099-9999-9999"
		other := model.PublicProfile{Phone: &otherPhone}

		// Act
		err := s.Activate(ctx, "uuid-1", other, time.Now())

		// Assert — конфликт, профиль первого победителя не перезаписан
		assert.ErrorIs(t, err, ErrAlreadyActivated)

		item, err := s.GetItem(ctx, "uuid-1")
		require.NoError(t, err)
		assert.Equal(t, profile, *item.PublicProfile)
	})

	t.Run("Disabled item", func(t *testing.T) {
		// Arrange
		s := NewStore()
		s.InitializeWith(map[string]model.Item{
			"uuid-1": {UUID: "uuid-1", Status: model.StatusDisabled},
		}, nil)

		// Act
		err := s.Activate(ctx, "uuid-1", profile, time.Now())

		// Assert
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("Unknown item", func(t *testing.T) {
		s := NewStore()

		err := s.Activate(ctx, "missing", profile, time.Now())

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestStore_ConcurrentActivate проверяет гонку активаций: ровно один
// вызов из N успешен, остальные наблюдают смену статуса
func TestStore_ConcurrentActivate(t *testing.T) {
	// Arrange
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.CreateIssued(ctx, issuedItem("uuid-1", "CODE0000000001")))

	const callers = 20
	errs := make([]error, callers)

	// Act
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			phone := "010-0000-0000"
			errs[i] = s.Activate(ctx, "uuid-1", model.PublicProfile{Phone: &phone}, time.Now())
		}(i)
	}
	wg.Wait()

	// Assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyActivated)
		}
	}
	assert.Equal(t, 1, succeeded, "Exactly one activation must win")
}

// TestStore_ConcurrentClaimAlias проверяет гонку за код между разными
// тегами: код достаётся ровно одному
func TestStore_ConcurrentClaimAlias(t *testing.T) {
	// Arrange — N тегов без алиасов претендуют на один и тот же код
	s := NewStore()
	ctx := context.Background()

	const callers = 20
	items := make(map[string]model.Item, callers)
	uuids := make([]string, callers)
	for i := 0; i < callers; i++ {
		uuid := uuidAt(i)
		uuids[i] = uuid
		items[uuid] = model.Item{UUID: uuid, Status: model.StatusIssued}
	}
	s.InitializeWith(items, nil)

	results := make([]error, callers)

	// Act
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = s.ClaimAlias(ctx, "CONTESTED00001", uuids[i])
		}(i)
	}
	wg.Wait()

	// Assert
	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrAliasExists)
		}
	}
	assert.Equal(t, 1, winners, "Contested code must be claimed exactly once")
}

func uuidAt(i int) string {
	return string(rune('a'+i%26)) + "0000000-0000-4000-8000-000000000000"
}
