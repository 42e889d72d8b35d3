package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"lodge/shared/dto"
)

var (
	errRequiredFilter = errors.New("required filter")
	errDuplicateKey   = errors.New("duplicate primary key")
)

// Store is the in-memory counterpart of the sqlx-backed generic repository.
// It matches rows against the same dto.FilterGroup values the SQL layer turns
// into WHERE clauses, so a domain repository can swap backings without the
// service layer noticing. Rows are matched on their `db` struct tags.
type Store[T any] struct {
	mu            sync.RWMutex
	rows          map[string]T
	order         []string
	entitas       string
	primaryColumn string
}

func NewStore[T any](entitasName, primaryColumn string, seed []T) *Store[T] {
	store := &Store[T]{
		rows:          make(map[string]T),
		entitas:       entitasName,
		primaryColumn: primaryColumn,
	}

	for _, row := range seed {
		key, _ := fieldValue(row, primaryColumn)
		id, _ := key.(string)

		if id == "" {
			continue
		}

		store.rows[id] = row
		store.order = append(store.order, id)
	}

	return store
}

func (s *Store[T]) Insert(_ context.Context, model T) error {
	key, ok := fieldValue(model, s.primaryColumn)
	if !ok {
		return fmt.Errorf("failed to insert data (%s): missing primary column %s", s.entitas, s.primaryColumn)
	}

	id, _ := key.(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[id]; exists {
		return fmt.Errorf("failed to insert data (%s): %w", s.entitas, errDuplicateKey)
	}

	s.rows[id] = model
	s.order = append(s.order, id)

	return nil
}

// Get returns the zero value when no row matches, mirroring how the SQL
// repository swallows sql.ErrNoRows.
func (s *Store[T]) Get(_ context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		row := s.rows[id]
		if matchGroup(row, filter) {
			return row, nil
		}
	}

	var zero T

	return zero, nil
}

func (s *Store[T]) GetAll(_ context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	s.mu.RLock()

	var models []T

	for _, id := range s.order {
		row := s.rows[id]
		if matchGroup(row, filter) {
			models = append(models, row)
		}
	}
	s.mu.RUnlock()

	if params.SortBy != "" && params.SortDir != "" {
		desc := strings.EqualFold(params.SortDir, dto.SortDirDesc)

		sort.SliceStable(models, func(i, j int) bool {
			left, _ := fieldValue(models[i], params.SortBy)
			right, _ := fieldValue(models[j], params.SortBy)

			cmp := compare(left, right)
			if desc {
				return cmp > 0
			}

			return cmp < 0
		})
	}

	page := params.Page
	limit := params.Limit

	if page > 0 && limit > 0 {
		offset := (page - 1) * limit
		if offset >= len(models) {
			return nil, nil
		}

		models = models[offset:]
	}

	if limit > 0 && len(models) > limit {
		models = models[:limit]
	}

	return models, nil
}

func (s *Store[T]) Exist(_ context.Context, filter dto.FilterGroup) (bool, error) {
	if len(filter.Filters) == 0 {
		return false, errRequiredFilter
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if matchGroup(row, filter) {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store[T]) Count(_ context.Context, filter dto.FilterGroup) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0

	for _, row := range s.rows {
		if matchGroup(row, filter) {
			count++
		}
	}

	return count, nil
}

func (s *Store[T]) Update(_ context.Context, fields map[string]any, filter dto.FilterGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.rows {
		if !matchGroup(row, filter) {
			continue
		}

		updated, err := setFields(row, fields)
		if err != nil {
			return fmt.Errorf("failed to update data (%s): %w", s.entitas, err)
		}

		s.rows[id] = updated
	}

	return nil
}

func (s *Store[T]) Delete(_ context.Context, filter dto.FilterGroup) error {
	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]

	for _, id := range s.order {
		if matchGroup(s.rows[id], filter) {
			delete(s.rows, id)

			continue
		}

		kept = append(kept, id)
	}

	s.order = kept

	return nil
}

func matchGroup(row any, group dto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	or := group.Operator == dto.FilterGroupOperatorOr

	for _, filter := range group.Filters {
		matched := false

		switch fill := filter.(type) {
		case dto.Filter:
			matched = matchFilter(row, fill)
		case dto.FilterGroup:
			matched = matchGroup(row, fill)
		}

		if or && matched {
			return true
		}

		if !or && !matched {
			return false
		}
	}

	return !or
}

func matchFilter(row any, filter dto.Filter) bool {
	value, ok := fieldValue(row, filter.Field)
	if !ok {
		return false
	}

	switch filter.Operator {
	case dto.FilterOperatorEq:
		return compare(value, filter.Value) == 0
	case dto.FilterOperatorNotEq:
		return compare(value, filter.Value) != 0
	case dto.FilterOperatorLessEq:
		return compare(value, filter.Value) <= 0
	case dto.FilterOperatorGreaterEq:
		return compare(value, filter.Value) >= 0
	case dto.FilterOperatorLike:
		target := fmt.Sprintf("%v", filter.Value)

		return strings.Contains(strings.ToLower(fmt.Sprintf("%v", value)), strings.ToLower(target))
	case dto.FilterOperatorIn:
		candidates := reflect.ValueOf(filter.Value)
		if candidates.Kind() != reflect.Slice && candidates.Kind() != reflect.Array {
			return false
		}

		for i := range candidates.Len() {
			if compare(value, candidates.Index(i).Interface()) == 0 {
				return true
			}
		}

		return false
	case dto.FilterOperatorNotIn:
		candidates := reflect.ValueOf(filter.Value)
		if candidates.Kind() != reflect.Slice && candidates.Kind() != reflect.Array {
			return false
		}

		for i := range candidates.Len() {
			if compare(value, candidates.Index(i).Interface()) == 0 {
				return false
			}
		}

		return true
	case dto.FilterIsNull:
		return isZero(value)
	case dto.FilterIsNotNull:
		return !isZero(value)
	default:
		return false
	}
}

// fieldValue resolves a db-tagged struct field, walking embedded structs the
// same way the SQL repository collects its columns. Pointers are dereferenced.
func fieldValue(row any, dbTag string) (any, bool) {
	value := reflect.ValueOf(row)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil, false
	}

	reflectType := value.Type()

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if nested, ok := fieldValue(value.Field(i).Interface(), dbTag); ok {
				return nested, true
			}

			continue
		}

		if field.Tag.Get("db") != dbTag {
			continue
		}

		fieldVal := value.Field(i)
		if fieldVal.Kind() == reflect.Pointer {
			if fieldVal.IsNil() {
				return nil, true
			}

			fieldVal = fieldVal.Elem()
		}

		return fieldVal.Interface(), true
	}

	return nil, false
}

func setFields[T any](row T, fields map[string]any) (T, error) {
	value := reflect.ValueOf(&row).Elem()

	for col, newValue := range fields {
		if !setField(value, col, newValue) {
			return row, fmt.Errorf("unknown column %s", col)
		}
	}

	return row, nil
}

func setField(value reflect.Value, dbTag string, newValue any) bool {
	reflectType := value.Type()

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if setField(value.Field(i), dbTag, newValue) {
				return true
			}

			continue
		}

		if field.Tag.Get("db") != dbTag {
			continue
		}

		fieldVal := value.Field(i)
		incoming := reflect.ValueOf(newValue)

		if incoming.Type().ConvertibleTo(fieldVal.Type()) {
			fieldVal.Set(incoming.Convert(fieldVal.Type()))

			return true
		}

		return false
	}

	return false
}

func compare(left, right any) int {
	if leftTime, ok := toTime(left); ok {
		if rightTime, ok := toTime(right); ok {
			return leftTime.Compare(rightTime)
		}
	}

	if leftNum, ok := toFloat(left); ok {
		if rightNum, ok := toFloat(right); ok {
			switch {
			case leftNum < rightNum:
				return -1
			case leftNum > rightNum:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(fmt.Sprintf("%v", left), fmt.Sprintf("%v", right))
}

func toTime(value any) (time.Time, bool) {
	t, ok := value.(time.Time)

	return t, ok
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

func isZero(value any) bool {
	if value == nil {
		return true
	}

	return reflect.ValueOf(value).IsZero()
}
