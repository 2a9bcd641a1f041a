package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// gormCollection holds the query plumbing shared by the GORM repositories.
// name is used in error messages only.
type gormCollection[T any] struct {
	db   *gorm.DB
	name string
}

func (c gormCollection[T]) all(ctx context.Context, query string, args ...any) ([]T, error) {
	var records []T
	tx := c.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	return records, nil
}

func (c gormCollection[T]) first(ctx context.Context, query string, args ...any) (*T, error) {
	var record T
	if err := c.db.WithContext(ctx).Where(query, args...).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %v: %w", c.name, args, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s %v: %w", c.name, args, err)
	}
	return &record, nil
}

func (c gormCollection[T]) create(ctx context.Context, record *T) error {
	if err := c.db.WithContext(ctx).Create(record).Error; err != nil {
		return c.translate("create", err)
	}
	return nil
}

// update overwrites every column of the row matching the record's primary key.
func (c gormCollection[T]) update(ctx context.Context, record *T, id string) error {
	res := c.db.WithContext(ctx).Model(record).Select("*").Updates(record)
	if res.Error != nil {
		return c.translate("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %s not found for update: %w", c.name, id, ErrNotFound)
	}
	return nil
}

func (c gormCollection[T]) delete(ctx context.Context, id string) error {
	var record T
	res := c.db.WithContext(ctx).Delete(&record, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", c.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %s not found for deletion: %w", c.name, id, ErrNotFound)
	}
	return nil
}

// translate maps unique-index violations onto ErrDuplicate. Dialects that
// implement gorm's error translator report gorm.ErrDuplicatedKey (see the
// TranslateError option in internal/database); the message checks cover
// driver versions that do not.
func (c gormCollection[T]) translate(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to %s %s: %w", op, c.name, ErrDuplicate)
	}
	return fmt.Errorf("failed to %s %s: %w", op, c.name, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}
