package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio-service/internal/domain/query"
	"portfolio-service/internal/usecase/crud"
	"portfolio-service/pkg/structs"
)

// DocumentRepo implements crud.Repository for entity T stored as model M.
// Ids are UUIDs generated on create.
type DocumentRepo[T crud.Entity, M any] struct {
	db       *gorm.DB
	log      *zap.Logger
	name     string
	toModel  func(T) M
	toEntity func(M) T
	columns  map[string]string // json field name -> column
	readOnly []string          // columns never written by Update
}

// newDocumentRepo builds a repository, resolving column names from the json
// tags of M.
func newDocumentRepo[T crud.Entity, M any](db *gorm.DB, log *zap.Logger, name string, toModel func(T) M, toEntity func(M) T, readOnly ...string) *DocumentRepo[T, M] {
	return &DocumentRepo[T, M]{
		db:       db,
		log:      log,
		name:     name,
		toModel:  toModel,
		toEntity: toEntity,
		columns:  columnsOf[M](db),
		readOnly: readOnly,
	}
}

// columnsOf maps the json tag of every field of M to its column.
func columnsOf[M any](db *gorm.DB) map[string]string {
	columns := map[string]string{}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(M)); err != nil {
		return columns
	}
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		name := f.Tag.Get("json")
		if name == "" || name == "-" {
			continue
		}
		columns[name] = f.DBName
	}
	return columns
}

// Create inserts a new item and returns it with its generated id.
func (r *DocumentRepo[T, M]) Create(ctx context.Context, item T) (T, error) {
	model := r.toModel(item)
	if err := setID(&model, uuid.NewString()); err != nil {
		var zero T
		return zero, err
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create "+r.name+" in db", zap.Error(err))
		var zero T
		return zero, fmt.Errorf("failed to create %s: %w", r.name, err)
	}

	created := r.toEntity(model)
	r.log.Info(r.name+" created in db", zap.String("id", created.GetID()))
	return created, nil
}

// Get lists one page of items whose fields equal the non-zero fields of the filter.
func (r *DocumentRepo[T, M]) Get(ctx context.Context, filters query.Filters[T]) (query.Results[T], error) {
	// No row can match an id that is not a uuid.
	if id := filters.Filters.GetID(); id != "" && uuid.Validate(id) != nil {
		r.log.Debug(r.name+" id filter is not a uuid", zap.String("id", id))
		return query.NewResults[T](nil, filters.Page, filters.Limit, 0), nil
	}

	base := r.db.WithContext(ctx).Model(new(M))
	if hasConstraints(filters.Filters) {
		where := r.toModel(filters.Filters)
		base = base.Where(&where)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		r.log.Error("failed to count "+r.name+" in db", zap.Error(err))
		return query.Results[T]{}, fmt.Errorf("failed to count %s: %w", r.name, err)
	}

	tx := base
	for _, o := range filters.OrderBy {
		column, ok := r.columns[o.Field]
		if !ok {
			continue
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   o.Direction == query.Descending,
		})
	}

	var models []M
	if err := tx.Offset(filters.Offset()).Limit(filters.Limit).Find(&models).Error; err != nil {
		r.log.Error("failed to list "+r.name+" from db", zap.Error(err), zap.Int("page", filters.Page), zap.Int("limit", filters.Limit))
		return query.Results[T]{}, fmt.Errorf("failed to list %s: %w", r.name, err)
	}

	items := make([]T, len(models))
	for i, m := range models {
		items[i] = r.toEntity(m)
	}
	return query.NewResults(items, filters.Page, filters.Limit, total), nil
}

// GetByID returns nil, nil when no item has id.
func (r *DocumentRepo[T, M]) GetByID(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		r.log.Debug(r.name+" id is not a uuid", zap.String("id", id))
		return nil, nil
	}
	return r.first(ctx, "id = ?", id)
}

// Update replaces every writable column of the stored item and returns the
// stored version.
func (r *DocumentRepo[T, M]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	model := r.toModel(item)

	tx := r.db.WithContext(ctx).Model(&model).Select("*").Omit(append([]string{"id"}, r.readOnly...)...).Updates(&model)
	if tx.Error != nil {
		r.log.Error("failed to update "+r.name+" in db", zap.Error(tx.Error), zap.String("id", item.GetID()))
		return zero, fmt.Errorf("failed to update %s: %w", r.name, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return zero, fmt.Errorf("failed to update %s: id=%s not found", r.name, item.GetID())
	}

	updated, err := r.first(ctx, "id = ?", item.GetID())
	if err != nil {
		return zero, err
	}
	if updated == nil {
		return zero, fmt.Errorf("failed to update %s: id=%s vanished", r.name, item.GetID())
	}

	r.log.Info(r.name+" updated in db", zap.String("id", item.GetID()))
	return *updated, nil
}

// Delete removes an item and returns it, or nil when nothing was removed.
func (r *DocumentRepo[T, M]) Delete(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var model M
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(new(M))
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("failed to delete "+r.name+" in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete %s: %w", r.name, err)
	}
	if !deleted {
		return nil, nil
	}

	r.log.Info(r.name+" deleted in db", zap.String("id", id))
	item := r.toEntity(model)
	return &item, nil
}

// first returns the first item matching the condition, or nil, nil.
func (r *DocumentRepo[T, M]) first(ctx context.Context, cond string, args ...any) (*T, error) {
	var model M
	if err := r.db.WithContext(ctx).Where(cond, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug(r.name+" not found", zap.String("condition", cond))
			return nil, nil
		}
		r.log.Error("failed to get "+r.name+" from db", zap.Error(err))
		return nil, fmt.Errorf("failed to get %s: %w", r.name, err)
	}
	item := r.toEntity(model)
	return &item, nil
}

// identified is implemented by every schema pointer.
type identified interface {
	setID(id string)
}

func setID(model any, id string) error {
	m, ok := model.(identified)
	if !ok {
		return fmt.Errorf("model %T has no id", model)
	}
	m.setID(id)
	return nil
}

func hasConstraints(filter any) bool {
	for _, f := range structs.Fields(filter) {
		if !f.IsZero() {
			return true
		}
	}
	return false
}
