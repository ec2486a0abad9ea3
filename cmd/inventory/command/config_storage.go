package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-inventory/internal/storage"
)

type StorageDriver int

const (
	StorageDriverFile StorageDriver = iota
	StorageDriverSQLite
)

func (sd *StorageDriver) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*sd = StorageDriverFile
	case "sqlite":
		*sd = StorageDriverSQLite
	default:
		return fmt.Errorf("unknown storage driver: %s", text)
	}
	return nil
}

type StorageConfig struct {
	Characters CharacterStoreConfig        `json:"characters"`
	Items      AssetConfig[*game.Template] `json:"items"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Characters.validate())
	el.Add(c.Items.Validate("items"))
	return el.Err()
}

// CharacterStoreConfig selects where character documents are kept. For the
// sqlite driver Path is the database file; for the file driver it is a
// directory.
type CharacterStoreConfig struct {
	Driver StorageDriver `json:"driver"`
	Path   string        `json:"path"`
}

func (c *CharacterStoreConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("characters: path is required")
	}
	if c.Driver == StorageDriverFile {
		if _, err := os.Stat(c.Path); err != nil {
			return fmt.Errorf("characters: invalid path %q: %w", c.Path, err)
		}
	}
	return nil
}

func (c *CharacterStoreConfig) buildStore() (storage.Storer[*game.Character], error) {
	switch c.Driver {
	case StorageDriverFile:
		return storage.NewFileStore[*game.Character](c.Path)
	case StorageDriverSQLite:
		db, err := storage.OpenSQLite(c.Path)
		if err != nil {
			return nil, fmt.Errorf("opening character database: %w", err)
		}
		return storage.NewSQLiteStore[*game.Character](db, "character"), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %v", c.Driver)
	}
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
