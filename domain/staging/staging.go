// Package staging 管理每句话未确认的实体与关系标注。
package staging

import (
	"context"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/repository/kvstore"
	"corpus-annotator-backend/utils"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

type Kind int

const (
	KindEntity Kind = iota
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

const relationKeySuffix = "_relations"

// StorageKey 实体暂存在 lineID 下，关系暂存在 lineID + "_relations" 下。
func StorageKey(lineID string, kind Kind) string {
	if kind == KindRelation {
		return lineID + relationKeySuffix
	}
	return lineID
}

type State int

const (
	NoPending State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "no_pending"
}

/*
Store 是暂存区，每次修改都整体替换某句某类的暂存数组。

存储中的 JSON 无法解析时按无暂存处理。
*/
type Store struct {
	kv     kvstore.Store
	logger *logrus.Logger
}

func New(kv kvstore.Store, logger *logrus.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

func get[T any](s *Store, ctx context.Context, lineID string, kind Kind) ([]T, error) {
	key := StorageKey(lineID, kind)

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, utils.WrapErrorf(err, "read staged %s of line [%s] fail", kind, lineID)
	}
	if !ok {
		return []T{}, nil
	}

	var ret []T
	if err := json.Unmarshal([]byte(raw), &ret); err != nil {
		s.logger.WithError(err).Warnf("staged %s of line [%s] is malformed, treated as empty: %#v", kind, lineID, raw)
		return []T{}, nil
	}
	if ret == nil {
		ret = []T{}
	}

	return ret, nil
}

func put[T any](s *Store, ctx context.Context, lineID string, kind Kind, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return utils.WrapErrorf(err, "marshal staged %s of line [%s] fail", kind, lineID)
	}

	err = s.kv.Set(ctx, StorageKey(lineID, kind), string(data))
	return utils.WrapErrorf(err, "write staged %s of line [%s] fail", kind, lineID)
}

func stage[T any](s *Store, ctx context.Context, lineID string, kind Kind, item T) error {
	items, err := get[T](s, ctx, lineID, kind)
	if err != nil {
		return err
	}

	return put(s, ctx, lineID, kind, append(items, item))
}

func (s *Store) Entities(ctx context.Context, lineID string) ([]corpus.Entity, error) {
	return get[corpus.Entity](s, ctx, lineID, KindEntity)
}

func (s *Store) Relations(ctx context.Context, lineID string) ([]corpus.Relation, error) {
	return get[corpus.Relation](s, ctx, lineID, KindRelation)
}

func (s *Store) PutEntities(ctx context.Context, lineID string, entities []corpus.Entity) error {
	return put(s, ctx, lineID, KindEntity, entities)
}

func (s *Store) PutRelations(ctx context.Context, lineID string, relations []corpus.Relation) error {
	return put(s, ctx, lineID, KindRelation, relations)
}

// StageEntity 在已暂存的实体后追加 entity，不去重。
func (s *Store) StageEntity(ctx context.Context, lineID string, entity corpus.Entity) error {
	return stage(s, ctx, lineID, KindEntity, entity)
}

func (s *Store) StageRelation(ctx context.Context, lineID string, relation corpus.Relation) error {
	return stage(s, ctx, lineID, KindRelation, relation)
}

func (s *Store) Clear(ctx context.Context, lineID string, kind Kind) error {
	err := s.kv.Delete(ctx, StorageKey(lineID, kind))
	return utils.WrapErrorf(err, "clear staged %s of line [%s] fail", kind, lineID)
}

func (s *Store) ClearAll(ctx context.Context, lineID string) error {
	if err := s.Clear(ctx, lineID, KindEntity); err != nil {
		return err
	}
	return s.Clear(ctx, lineID, KindRelation)
}

// State 任一类暂存非空即为 Pending。
func (s *Store) State(ctx context.Context, lineID string) (State, error) {
	entities, err := s.Entities(ctx, lineID)
	if err != nil {
		return NoPending, err
	}

	relations, err := s.Relations(ctx, lineID)
	if err != nil {
		return NoPending, err
	}

	if len(entities) == 0 && len(relations) == 0 {
		return NoPending, nil
	}
	return Pending, nil
}
