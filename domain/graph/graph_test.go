package graph

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/logging"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransLinesToCSV(t *testing.T) {
	entityCSV, relationCSV, err := TransLinesToCSV([]corpus.Line{
		{
			LineID:   "L1",
			Entity:   []corpus.Entity{{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"}},
			Relation: []corpus.Relation{{Source: "rāma", Label: "kartā, agent", Target: "gam"}},
		},
		{LineID: "L2"},
	})
	require.Nil(t, err)

	assert.Equal(t, "line_id,occurrence,root,type\nL1,rāmaḥ,rāma,PERSON\n", string(entityCSV))
	assert.Equal(t, "line_id,source,label,target\nL1,rāma,\"kartā, agent\",gam\n", string(relationCSV))
}

type recordedCall struct {
	cypher string
	params map[string]interface{}
}

func TestExportConfirmed(t *testing.T) {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))

	var calls []recordedCall
	setting := &KGSetting{
		Logger:  logging.NewLogger(),
		Enabled: func() bool { return true },
		Execute: func(cypher string, params map[string]interface{}) error {
			calls = append(calls, recordedCall{cypher: cypher, params: params})
			return nil
		},
	}

	err := exportConfirmed(setting, "L1",
		[]corpus.Entity{{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"}},
		[]corpus.Relation{{Source: "rāma", Label: "kartā", Target: "gam"}},
	)
	require.Nil(t, err)
	require.Len(t, calls, 4)

	assert.Equal(t, deleteLineCypher, calls[0].cypher)
	assert.Equal(t, "L1", calls[0].params["line_id"])
	assert.Equal(t, deleteFormsCypher, calls[1].cypher)
	assert.Equal(t, "L1", calls[1].params["line_id"])
	assert.Equal(t, entityCypher, calls[2].cypher)
	assert.Equal(t, []map[string]interface{}{{"occurrence": "rāmaḥ", "root": "rāma", "type": "PERSON"}}, calls[2].params["entities"])
	assert.Equal(t, relationCypher, calls[3].cypher)
	assert.Contains(t, entityCypher, "set e.type = ent.type")
	assert.NotContains(t, entityCypher, "on create")

	// 再次确认且不保留实体时，之前导出的 FormOf 边也被删除
	calls = nil
	require.Nil(t, exportConfirmed(setting, "L1", nil, nil))
	require.Len(t, calls, 2)
	assert.Equal(t, deleteLineCypher, calls[0].cypher)
	assert.Equal(t, deleteFormsCypher, calls[1].cypher)
}

func TestExportConfirmed_DisabledOrFailing(t *testing.T) {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))
	boom := errors.New("boom")

	disabled := &KGSetting{
		Logger:  logging.NewLogger(),
		Enabled: func() bool { return false },
		Execute: func(string, map[string]interface{}) error { return boom },
	}
	assert.Nil(t, exportConfirmed(disabled, "L1", nil, nil))

	failing := &KGSetting{
		Logger:  logging.NewLogger(),
		Enabled: func() bool { return true },
		Execute: func(string, map[string]interface{}) error { return boom },
	}
	assert.ErrorIs(t, exportConfirmed(failing, "L1", nil, nil), boom)
}
