package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/avc-dev/tag-registry/internal/model"
)

// LedgerEntry представляет одну строку журнала изменений хранилища.
// Файл — append-only JSON Lines; состояние восстанавливается повторным
// применением записей в порядке следования.
type LedgerEntry struct {
	Op   string      `json:"op"` // "issue" | "alias" | "activate"
	Item *model.Item `json:"item,omitempty"`
	UUID string      `json:"uuid,omitempty"`
	Code model.Code  `json:"code,omitempty"`
}

// FileStorage управляет персистентным журналом тегов в JSON Lines файле
type FileStorage struct {
	filePath string
}

// NewFileStorage создаёт новый FileStorage
func NewFileStorage(filePath string) *FileStorage {
	return &FileStorage{
		filePath: filePath,
	}
}

// Load загружает все записи журнала из файла
func (fs *FileStorage) Load() ([]LedgerEntry, error) {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []LedgerEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer file.Close()

	var entries []LedgerEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry LedgerEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	return entries, nil
}

// Append добавляет одну запись в конец журнала
func (fs *FileStorage) Append(entry LedgerEntry) error {
	file, err := os.OpenFile(fs.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}
