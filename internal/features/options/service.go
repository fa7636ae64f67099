package options

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tablecrm/internal/fieldtype"
	"tablecrm/internal/table"
)

var ErrInvalidTable = errors.New("invalid table")

// OptionService is the Option-Set Manager: CRUD over named, ordered option
// lists keyed by (table, column). It is both the data source for the option
// field type and the operator-facing configuration surface.
type OptionService interface {
	List(ctx context.Context, tableName, column string) ([]fieldtype.Option, error)
	ListForTable(ctx context.Context, tableName string) (map[string][]fieldtype.Option, error)
	Replace(ctx context.Context, tableName, column string, opts []fieldtype.Option) error
	Delete(ctx context.Context, optionID int64) error
	Seed(ctx context.Context) error
}

type OptionServiceImpl struct {
	Store  *Store
	Logger *zap.Logger
}

func NewOptionService(store *Store, logger *zap.Logger) OptionService {
	return &OptionServiceImpl{Store: store, Logger: logger}
}

func (s *OptionServiceImpl) List(ctx context.Context, tableName, column string) ([]fieldtype.Option, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}
	return s.Store.List(ctx, tableName, column)
}

func (s *OptionServiceImpl) ListForTable(ctx context.Context, tableName string) (map[string][]fieldtype.Option, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}
	return s.Store.ListForTable(ctx, tableName)
}

func (s *OptionServiceImpl) Replace(ctx context.Context, tableName, column string, opts []fieldtype.Option) error {
	if !table.Valid(tableName) {
		return ErrInvalidTable
	}
	if err := s.Store.ReplaceAll(ctx, tableName, column, opts); err != nil {
		return fmt.Errorf("replace options for %s.%s: %w", tableName, column, err)
	}
	s.Logger.Info("option set replaced",
		zap.String("table", tableName),
		zap.String("column", column),
		zap.Int("count", len(opts)))
	return nil
}

func (s *OptionServiceImpl) Delete(ctx context.Context, optionID int64) error {
	return s.Store.DeleteOption(ctx, optionID)
}

func (s *OptionServiceImpl) Seed(ctx context.Context) error {
	return s.Store.Seed(ctx)
}
