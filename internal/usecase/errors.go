package usecase

import "errors"

var (
	// ErrNotFound — идентификатор не разрешается ни в одну запись
	ErrNotFound = errors.New("tag not found")
	// ErrMissingContact — регистрация без единого контактного канала
	ErrMissingContact = errors.New("at least one contact method is required")
	// ErrAlreadyActivated — попытка повторной регистрации тега
	ErrAlreadyActivated = errors.New("tag already activated")
	// ErrDisabled — тег отключён администратором
	ErrDisabled = errors.New("tag disabled")
	// ErrServiceUnavailable — внутренняя ошибка хранилища или генерации
	ErrServiceUnavailable = errors.New("service unavailable")
)
