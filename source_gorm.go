package goshape

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ColumnMapping maps canonical field paths (see Field.Path) to column names.
// Use it for qualified names when bare column names could be ambiguous, e.g.
// {"ID": "users.id"}.
type ColumnMapping = map[string]string

// GormSource is a deferred Source: predicates and orderings are translated
// into GORM clauses and executed by Collect.
//
// Columns are looked up in the GORM schema of T by the declared names along
// the field path, so fields of embedded structs map to their prefixed
// columns. Query logging is up to the logger configured on the *gorm.DB.
type GormSource[T any] struct {
	db      *gorm.DB
	schemas *sync.Map
	columns ColumnMapping
}

type GormOption func(*gormOptions)

type gormOptions struct {
	schemas *sync.Map
	columns ColumnMapping
}

// WithSchemaCache sets the cache used to parse GORM schemas.
func WithSchemaCache(cache *sync.Map) GormOption {
	return func(o *gormOptions) {
		if cache != nil {
			o.schemas = cache
		}
	}
}

// WithColumns overrides the column of the given field paths.
func WithColumns(mapping ColumnMapping) GormOption {
	return func(o *gormOptions) {
		o.columns = mapping
	}
}

var _defaultSchemaCache = new(sync.Map)

// FromGORM wraps db, which may already carry conditions, joins or a table.
// db itself is never modified. A nil db yields a nil source.
func FromGORM[T any](db *gorm.DB, opts ...GormOption) *GormSource[T] {
	o := gormOptions{schemas: _defaultSchemaCache}
	for _, opt := range opts {
		opt(&o)
	}

	if db == nil {
		return nil
	}

	return &GormSource[T]{
		db:      db.Session(&gorm.Session{}),
		schemas: o.schemas,
		columns: o.columns,
	}
}

// DB returns the composed statement.
func (s *GormSource[T]) DB() *gorm.DB {
	return s.db
}

func (s *GormSource[T]) with(db *gorm.DB) *GormSource[T] {
	return &GormSource[T]{
		db:      db.Session(&gorm.Session{}),
		schemas: s.schemas,
		columns: s.columns,
	}
}

func (s *GormSource[T]) Where(p Predicate) (Source[T], error) {
	if p == nil {
		return nil, invalidArgf("nil predicate")
	}

	col, err := s.column(p.Target())
	if err != nil {
		return nil, err
	}

	return s.with(s.db.Clauses(toGORMExpression(p, col))), nil
}

func (s *GormSource[T]) OrderBy(o Ordering) (Source[T], error) {
	col, err := s.column(o.Field)
	if err != nil {
		return nil, err
	}

	return s.with(s.db.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{toGORMOrderByColumn(o, col)},
	})), nil
}

func (s *GormSource[T]) Skip(n int) Source[T] {
	return s.with(s.db.Offset(n))
}

func (s *GormSource[T]) Take(n int) Source[T] {
	return s.with(s.db.Limit(n))
}

func (s *GormSource[T]) Collect(ctx context.Context) ([]T, error) {
	var ret []T
	if err := s.db.WithContext(ctx).Find(&ret).Error; err != nil {
		return nil, fmt.Errorf("cannot collect '%s': %w", typeName(reflect.TypeFor[T]()), err)
	}

	return ret, nil
}

// Count counts matching rows. Orderings and bounds are not applied.
func (s *GormSource[T]) Count(ctx context.Context) (int64, error) {
	var ret int64
	err := s.db.WithContext(ctx).
		Model(new(T)).
		Offset(-1).
		Limit(-1).
		Count(&ret).Error
	if err != nil {
		return 0, fmt.Errorf("cannot count '%s': %w", typeName(reflect.TypeFor[T]()), err)
	}

	return ret, nil
}

// column maps a resolved field to its column.
func (s *GormSource[T]) column(f *Field) (clause.Column, error) {
	if err := checkField[T](f); err != nil {
		return clause.Column{}, err
	}

	if name, ok := s.columns[f.Path()]; ok {
		return clause.Column{Name: name}, nil
	}

	sch, err := schema.Parse(new(T), s.schemas, s.db.NamingStrategy)
	if err != nil {
		return clause.Column{}, invalidArgf("cannot parse schema of '%s': %v", typeName(f.owner), err)
	}

	sf := sch.FieldsByBindName[strings.Join(f.names, ".")]
	if sf == nil || sf.DBName == "" {
		return clause.Column{}, invalidArgf("field '%s' on '%s' is not mapped to a column of '%s'",
			f.Path(), typeName(f.owner), sch.Table)
	}

	return clause.Column{Name: sf.DBName}, nil
}

var (
	_ Source[struct{}] = (*GormSource[struct{}])(nil)
	_ Counter          = (*GormSource[struct{}])(nil)
)
