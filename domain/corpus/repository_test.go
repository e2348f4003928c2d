package corpus

import (
	"context"
	"corpus-annotator-backend/logging"
	"corpus-annotator-backend/repository/metadata"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSetting(t *testing.T) *Setting {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))

	database, err := metadata.CreateDatabase(metadata.GenerateTestConfig())
	require.Nil(t, err)

	return &Setting{
		GetMetadataDatabase: func() *gorm.DB {
			return database
		},
		Logger: logging.NewLogger(),
	}
}

func sampleLines() []Line {
	return []Line{
		{
			LineID: "L1",
			Analysis: []Word{
				{Original: "rāmaḥ", Root: "rāma", IsNoun: true, Details: &WordDetails{Gender: "m", Case: "1", Form: "sg"}},
				{Original: "gacchati", Root: "gam"},
			},
			Entity: []Entity{{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"}},
		},
		{
			LineID:   "L2",
			Analysis: []Word{{Original: "vanam", Root: "vana", IsNoun: true}},
		},
	}
}

func TestUpsertAndLoad(t *testing.T) {
	setting := newTestSetting(t)
	ctx := context.Background()

	require.Nil(t, upsert(setting, ctx, sampleLines()))

	lines, err := loadAll(setting, ctx)
	require.Nil(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "L1", lines[0].LineID)
	assert.Equal(t, "L2", lines[1].LineID)
	assert.Equal(t, sampleLines()[0].Analysis, lines[0].Analysis)
	assert.Equal(t, []Entity{{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"}}, lines[0].Entity)
	assert.Len(t, lines[1].Entity, 0)
	assert.Nil(t, lines[1].Analysis[0].Details)

	// 再次导入只更新分析结果，不覆盖已确认标注
	again := sampleLines()
	again[0].Entity = nil
	again[0].Analysis = again[0].Analysis[:1]
	require.Nil(t, upsert(setting, ctx, again))

	line, err := find(setting, ctx, "L1")
	require.Nil(t, err)
	assert.Len(t, line.Analysis, 1)
	assert.Len(t, line.Entity, 1)

	lines, err = loadAll(setting, ctx)
	require.Nil(t, err)
	assert.Len(t, lines, 2)
}

func TestUpsert_RejectsInvalidAnnotations(t *testing.T) {
	setting := newTestSetting(t)
	ctx := context.Background()

	withDelimiter := sampleLines()
	withDelimiter[0].Entity = []Entity{{Occurrence: "a$b", Root: "rāma", Type: "PERSON"}}
	assert.ErrorIs(t, upsert(setting, ctx, withDelimiter), ErrDelimiterInField)

	withEmpty := sampleLines()
	withEmpty[1].Relation = []Relation{{Source: "vana", Label: " ", Target: "rāma"}}
	assert.ErrorIs(t, upsert(setting, ctx, withEmpty), ErrEmptyField)

	// 整批回滚
	lines, err := loadAll(setting, ctx)
	require.Nil(t, err)
	assert.Len(t, lines, 0)

	padded := sampleLines()
	padded[0].Entity = []Entity{{Occurrence: " rāmaḥ ", Root: "ra\u0304ma", Type: "PERSON"}}
	require.Nil(t, upsert(setting, ctx, padded))

	line, err := find(setting, ctx, "L1")
	require.Nil(t, err)
	assert.Equal(t, []Entity{{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"}}, line.Entity)
}

func TestFind_NotFound(t *testing.T) {
	setting := newTestSetting(t)

	_, err := find(setting, context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCommit_ReplacesConfirmed(t *testing.T) {
	setting := newTestSetting(t)
	ctx := context.Background()
	require.Nil(t, upsert(setting, ctx, sampleLines()))

	entities := []Entity{
		{Occurrence: "vanam", Root: "vana", Type: "PLACE"},
		{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"},
	}
	relations := []Relation{{Source: "rāma", Label: "karma", Target: "vana"}}

	require.Nil(t, commit(setting, ctx, "L1", "alice", entities, relations))

	line, err := find(setting, ctx, "L1")
	require.Nil(t, err)
	assert.Equal(t, entities, line.Entity)
	assert.Equal(t, relations, line.Relation)

	// 全部拒绝
	require.Nil(t, commit(setting, ctx, "L1", "alice", nil, nil))
	line, err = find(setting, ctx, "L1")
	require.Nil(t, err)
	assert.Len(t, line.Entity, 0)
	assert.Len(t, line.Relation, 0)

	assert.ErrorIs(t, commit(setting, ctx, "missing", "alice", entities, nil), ErrLineNotFound)
}
