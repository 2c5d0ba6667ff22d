package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/store"
)

var (
	// uuidRe — каноническая грамматика идентификатора (RFC 4122, без учёта регистра)
	uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	// shortRe — грамматика короткого кода: 10-20 символов Base36 в верхнем регистре
	shortRe = regexp.MustCompile(`^[0-9A-Z]{10,20}$`)
)

// IsCanonicalID сообщает, соответствует ли строка канонической грамматике
func IsCanonicalID(raw string) bool {
	return uuidRe.MatchString(strings.ToLower(raw))
}

// IsShortCode сообщает, соответствует ли строка грамматике короткого кода
func IsShortCode(raw string) bool {
	return shortRe.MatchString(raw)
}

// AliasReader определяет доступ резолвера к записям алиасов
type AliasReader interface {
	GetAlias(ctx context.Context, code model.Code) (model.Alias, error)
}

// Resolver преобразует внешний непрозрачный идентификатор (канонический
// или короткий код) в канонический идентификатор тега
type Resolver struct {
	aliases AliasReader
}

// NewResolver создает новый Resolver
func NewResolver(aliases AliasReader) *Resolver {
	return &Resolver{aliases: aliases}
}

// Resolve возвращает канонический идентификатор для внешнего.
// Порядок проверок фиксирован: каноническая форма распознаётся до обращения
// к хранилищу — на типичном пути (полный идентификатор в URL) запрос
// к хранилищу не нужен. Строка, не подходящая ни под одну грамматику,
// отклоняется тоже без обращения к хранилищу.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	decoded = strings.TrimSpace(decoded)

	if IsCanonicalID(decoded) {
		return strings.ToLower(decoded), nil
	}

	up := strings.ToUpper(decoded)
	if !IsShortCode(up) {
		return "", fmt.Errorf("identifier %q: %w", raw, ErrNotResolved)
	}

	alias, err := r.aliases.GetAlias(ctx, model.Code(up))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("short code %s: %w", up, ErrNotResolved)
		}
		return "", fmt.Errorf("failed to resolve short code: %w", err)
	}

	return alias.UUID, nil
}
