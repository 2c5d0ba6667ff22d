package service

import "errors"

var (
	// ErrAliasGenerationExhausted возвращается когда не удалось закрепить
	// уникальный код после максимального количества попыток
	ErrAliasGenerationExhausted = errors.New("alias generation attempts exhausted")

	// ErrNotResolved возвращается когда входная строка не соответствует
	// ни канонической грамматике, ни грамматике короткого кода,
	// либо короткий код никому не выдан
	ErrNotResolved = errors.New("identifier not resolved")
)
