package service

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/avc-dev/tag-registry/internal/model"
)

const (
	// AllowedChars — алфавит коротких кодов (Base36)
	AllowedChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// maxAcceptedByte — верхняя граница rejection sampling.
	// 252 = 36 * 7: байты 0..251 дают равномерное распределение по модулю 36,
	// байты 252..255 отбрасываются, иначе символы 0..3 встречались бы чаще.
	maxAcceptedByte = 252
)

// CodeGenerator генерирует случайные короткие коды с равномерным
// распределением символов. Источник байтов инжектируется для тестов.
type CodeGenerator struct {
	random io.Reader
}

// NewCodeGenerator создает генератор на криптографическом источнике
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{random: rand.Reader}
}

// NewCodeGeneratorWithSource создает генератор с заданным источником байтов
func NewCodeGeneratorWithSource(source io.Reader) *CodeGenerator {
	return &CodeGenerator{random: source}
}

// Generate генерирует случайный код заданной длины.
// Байты читаются по одному; принимаются только значения из наибольшего
// поддиапазона 0..255, кратного размеру алфавита, остальные перечитываются.
func (g *CodeGenerator) Generate(length int) (model.Code, error) {
	result := make([]byte, 0, length)
	buf := make([]byte, 1)

	for len(result) < length {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("failed to read random byte: %w", err)
		}

		b := buf[0]
		if b >= maxAcceptedByte {
			continue
		}

		result = append(result, AllowedChars[int(b)%len(AllowedChars)])
	}

	return model.Code(result), nil
}
