package model

import "time"

// Code представляет короткий алиас тега (Base36, верхний регистр)
type Code string

func (c Code) String() string {
	return string(c)
}

// Status представляет состояние жизненного цикла тега
type Status string

const (
	// StatusIssued — тег выпущен, но ещё не зарегистрирован владельцем
	StatusIssued Status = "issued"
	// StatusActivated — тег зарегистрирован, публичный профиль заполнен
	StatusActivated Status = "activated"
	// StatusDisabled — тег отключён администратором
	StatusDisabled Status = "disabled"
)

// PublicProfile содержит контактные данные владельца, видимые нашедшему.
// Заполняется ровно один раз при активации тега.
type PublicProfile struct {
	Phone   *string `json:"phone"`
	SNS     *string `json:"sns"`
	Message string  `json:"message"`
}

// Item представляет один физический тег и его состояние.
// Поле Short, однажды установленное, никогда не меняется.
type Item struct {
	UUID          string         `json:"uuid"`
	Status        Status         `json:"status"`
	Short         Code           `json:"short,omitempty"`
	BatchID       string         `json:"batch_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	ActivatedAt   *time.Time     `json:"activated_at,omitempty"`
	PublicProfile *PublicProfile `json:"public_profile,omitempty"`
}

// Alias представляет вторичный индекс: короткий код -> канонический идентификатор.
// Код, однажды занятый, не переиспользуется.
type Alias struct {
	Code      Code      `json:"code"`
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchRow представляет строку табличного экспорта при массовом выпуске тегов
type BatchRow struct {
	UUID      string
	Short     Code
	PublicURL string
}
