package columns

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tablecrm/internal/features/options"
	"tablecrm/internal/fieldtype"
	"tablecrm/internal/table"
)

var ErrInvalidTable = errors.New("invalid table")

// ColumnService runs the column inference pipeline: raw metadata from the
// store, registered option sets from the option manager, one ColumnFormat
// per column out. Formats are rebuilt on every call, never cached between
// fetches.
type ColumnService interface {
	Metadata(ctx context.Context, tableName string) ([]fieldtype.ColumnMeta, error)
	Formats(ctx context.Context, tableName string) ([]fieldtype.ColumnFormat, error)
}

type ColumnServiceImpl struct {
	Store         *Store
	OptionService options.OptionService
	Logger        *zap.Logger
}

func NewColumnService(store *Store, optionService options.OptionService, logger *zap.Logger) ColumnService {
	return &ColumnServiceImpl{
		Store:         store,
		OptionService: optionService,
		Logger:        logger,
	}
}

func (s *ColumnServiceImpl) Metadata(ctx context.Context, tableName string) ([]fieldtype.ColumnMeta, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}
	return s.Store.Scan(ctx, tableName)
}

func (s *ColumnServiceImpl) Formats(ctx context.Context, tableName string) ([]fieldtype.ColumnFormat, error) {
	metas, err := s.Metadata(ctx, tableName)
	if err != nil {
		return nil, err
	}

	sets, err := s.OptionService.ListForTable(ctx, tableName)
	if err != nil {
		// A broken option lookup degrades to name/storage inference
		// instead of blanking the table.
		s.Logger.Warn("option lookup failed, inferring without option sets",
			zap.String("table", tableName), zap.Error(err))
		sets = nil
	}

	return fieldtype.InferAll(metas, func(column string) []fieldtype.Option {
		return sets[column]
	}), nil
}
