package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerate_LengthAndAlphabet проверяет длину кода и допустимые символы
func TestGenerate_LengthAndAlphabet(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "Minimum length", length: 10},
		{name: "Default length", length: 14},
		{name: "Maximum length", length: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			generator := NewCodeGenerator()

			// Act & Assert — генерируем много кодов, каждый проверяем
			for i := 0; i < 100; i++ {
				code, err := generator.Generate(tt.length)
				require.NoError(t, err)
				assert.Equal(t, tt.length, len(code))

				for _, char := range string(code) {
					assert.True(t, strings.ContainsRune(AllowedChars, char),
						"Code %s contains invalid character: %c", code, char)
				}
			}
		})
	}
}

// TestGenerate_RejectionSampling проверяет, что байты 252..255 отбрасываются,
// а принятые байты отображаются в символы по модулю 36
func TestGenerate_RejectionSampling(t *testing.T) {
	tests := []struct {
		name     string
		source   []byte
		length   int
		expected string
	}{
		{
			name:     "Plain bytes map by modulo",
			source:   []byte{0, 1, 35, 36},
			length:   4,
			expected: "01Z0",
		},
		{
			name:     "Bytes above 251 are rejected and redrawn",
			source:   []byte{252, 253, 254, 255, 10, 251},
			length:   2,
			expected: "AZ", // 10%36=10 -> 'A', 251%36=35 -> 'Z'
		},
		{
			name:     "Boundary byte 251 is accepted",
			source:   []byte{251},
			length:   1,
			expected: "Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			generator := NewCodeGeneratorWithSource(bytes.NewReader(tt.source))

			// Act
			code, err := generator.Generate(tt.length)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(code))
		})
	}
}

// TestGenerate_SourceError проверяет проброс ошибки источника байтов
func TestGenerate_SourceError(t *testing.T) {
	// Arrange — источник исчерпывается до набора нужной длины
	generator := NewCodeGeneratorWithSource(bytes.NewReader([]byte{1, 2}))

	// Act
	code, err := generator.Generate(5)

	// Assert
	require.Error(t, err)
	assert.Empty(t, code)
}

// TestGenerate_UniformDistribution проверяет равномерность распределения
// символов критерием хи-квадрат
func TestGenerate_UniformDistribution(t *testing.T) {
	// Arrange
	generator := NewCodeGenerator()
	const samples = 5000
	const length = 14

	counts := make(map[rune]int)

	// Act — собираем частоты символов на большой выборке
	for i := 0; i < samples; i++ {
		code, err := generator.Generate(length)
		require.NoError(t, err)
		for _, char := range string(code) {
			counts[char]++
		}
	}

	// Assert — хи-квадрат против равномерного распределения по 36 символам.
	// 35 степеней свободы: критическое значение ~66.6 при p=0.001,
	// порог 100 исключает ложные срабатывания
	total := samples * length
	expected := float64(total) / float64(len(AllowedChars))

	var chiSquare float64
	for _, char := range AllowedChars {
		observed := float64(counts[char])
		diff := observed - expected
		chiSquare += diff * diff / expected
	}

	assert.Less(t, chiSquare, 100.0,
		"Character distribution is not uniform: chi-square = %f", chiSquare)
	assert.Equal(t, len(AllowedChars), len(counts),
		"Expected every alphabet character to appear in a large sample")
}

// errReader всегда возвращает ошибку чтения
type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("source failure")
}

// TestGenerate_SourceFailure проверяет ошибку на первом же чтении
func TestGenerate_SourceFailure(t *testing.T) {
	generator := NewCodeGeneratorWithSource(errReader{})

	_, err := generator.Generate(14)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read random byte")
}
