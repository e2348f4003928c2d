package server

import (
	"bytes"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/logging"
	"corpus-annotator-backend/repository/kvstore"
	"corpus-annotator-backend/repository/metadata"
	"corpus-annotator-backend/server/common"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))
	gin.SetMode(gin.TestMode)

	metadata.Init(metadata.GenerateTestConfig())
	corpus.Init(&corpus.Setting{
		GetMetadataDatabase: metadata.DatabaseRaw,
		Logger:              logging.NewLogger(),
	})
	kv := kvstore.NewGormStore(metadata.DatabaseRaw)
	workbench.Init(&workbench.Setting{
		Logger:     logging.NewLogger(),
		GetKVStore: func() kvstore.Store { return kv },
	})

	return New(&Config{DebugMode: true, CorpusTitle: "Test Corpus"}).Handler()
}

type testResp struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) (int, *testResp) {
	return doJSONAs(t, h, method, path, body, nil)
}

func doJSONAs(t *testing.T, h http.Handler, method, path string, body interface{}, header map[string]string) (int, *testResp) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.Nil(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp testResp
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, &resp
}

func decode[T any](t *testing.T, resp *testResp) T {
	var ret T
	require.Nil(t, json.Unmarshal(resp.Data, &ret))
	return ret
}

func testLines() []corpus.Line {
	return []corpus.Line{
		{
			LineID: "L1",
			Analysis: []corpus.Word{
				{Original: "rāmaḥ", Root: "rāma", IsNoun: true, Details: &corpus.WordDetails{Gender: "m", Case: "1", Form: "sg"}},
				{Original: "gacchati", Root: "gam"},
			},
			Entity: []corpus.Entity{{Occurrence: "rāmaḥ", Root: "rāma", Type: "PERSON"}},
		},
		{
			LineID:   "L2",
			Analysis: []corpus.Word{{Original: "vanam", Root: "vana", IsNoun: true}},
		},
	}
}

type corpusData struct {
	Title       string        `json:"title"`
	Rows        []corpus.Line `json:"rows"`
	Occurrences []string      `json:"occurrences"`
	Roots       []string      `json:"roots"`
}

type confirmData struct {
	Selection workbench.Selection `json:"selection"`
	View      workbench.View      `json:"view"`
}

func TestAnnotateFlow(t *testing.T) {
	h := newTestServer(t)

	code, resp := doJSON(t, h, http.MethodPost, "/admin/lines", testLines())
	require.Equal(t, http.StatusOK, code, resp.Msg)

	code, resp = doJSON(t, h, http.MethodGet, "/corpus", nil)
	require.Equal(t, http.StatusOK, code)
	data := decode[corpusData](t, resp)
	assert.Equal(t, "Test Corpus", data.Title)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"rāma"}, data.Roots)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/check", map[string]string{"line_id": "L2"})
	require.Equal(t, http.StatusOK, code, resp.Msg)
	view := decode[workbench.View](t, resp)
	assert.Equal(t, "L2", view.LineID)
	assert.Equal(t, []string{"vanam", "rāmaḥ"}, view.Suggestions.Occurrences)
	assert.Equal(t, "no_pending", view.PendingState)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/entity", map[string]string{
		"line_id": "L2", "occurrence": "vanam", "root": "vana", "type": "PLACE",
	})
	require.Equal(t, http.StatusOK, code, resp.Msg)
	view = decode[workbench.View](t, resp)
	assert.Equal(t, "pending", view.PendingState)
	assert.Contains(t, view.EntityListHTML, `value="vanam$vana$PLACE"`)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/entity", map[string]string{
		"line_id": "L2", "occurrence": "va$nam", "root": "vana", "type": "PLACE",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, common.CodeBadRequest, resp.Code)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/confirm", map[string]interface{}{
		"line_id": "L2",
		"entity":  []string{"vanam$vana$PLACE", "vanam$vana$PLACE"},
	})
	require.Equal(t, http.StatusOK, code, resp.Msg)
	confirmed := decode[confirmData](t, resp)
	assert.Equal(t, []corpus.Entity{{Occurrence: "vanam", Root: "vana", Type: "PLACE"}}, confirmed.Selection.Entities)
	assert.Equal(t, "no_pending", confirmed.View.PendingState)

	code, resp = doJSON(t, h, http.MethodGet, "/corpus", nil)
	require.Equal(t, http.StatusOK, code)
	data = decode[corpusData](t, resp)
	assert.Equal(t, []string{"rāma", "vana"}, data.Roots)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/collapse", nil)
	require.Equal(t, http.StatusOK, code)
	form := decode[workbench.Form](t, resp)
	assert.Empty(t, form.LineID)
	assert.Empty(t, form.EntityOccurrence)
}

func TestAnnotateErrors(t *testing.T) {
	h := newTestServer(t)

	code, _ := doJSON(t, h, http.MethodPost, "/admin/lines", testLines())
	require.Equal(t, http.StatusOK, code)

	// 未展开任何句子
	code, resp := doJSON(t, h, http.MethodPost, "/annotate/relation", map[string]string{
		"line_id": "L1", "source": "rāma", "label": "kartā", "target": "gam",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, common.CodeBadRequest, resp.Code)

	code, _ = doJSON(t, h, http.MethodPost, "/annotate/expand", map[string]string{"line_id": "missing"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, h, http.MethodPost, "/annotate/expand", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, h, http.MethodPost, "/annotate/expand", map[string]string{"line_id": "L1"})
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, h, http.MethodPost, "/annotate/relation", map[string]string{
		"line_id": "L1", "source": "rāma", "label": "kartā", "target": "gam",
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, h, http.MethodPost, "/annotate/confirm", map[string]interface{}{
		"line_id":  "L1",
		"relation": []string{"rāma$kartā"},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	// 确认失败时暂存区不变，丢弃后才清空
	code, resp = doJSON(t, h, http.MethodPost, "/annotate/expand", map[string]string{"line_id": "L1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending", decode[workbench.View](t, resp).PendingState)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/discard", map[string]string{"line_id": "L1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "no_pending", decode[workbench.View](t, resp).PendingState)
}

func TestExport(t *testing.T) {
	h := newTestServer(t)

	code, _ := doJSON(t, h, http.MethodPost, "/admin/lines", testLines())
	require.Equal(t, http.StatusOK, code)

	req := httptest.NewRequest(http.MethodGet, "/admin/export?kind=entity", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "line_id,occurrence,root,type\nL1,rāmaḥ,rāma,PERSON\n", w.Body.String())

	code, _ = doJSON(t, h, http.MethodGet, "/admin/export?kind=nothing", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFormSync(t *testing.T) {
	h := newTestServer(t)

	code, resp := doJSON(t, h, http.MethodPost, "/annotate/form", map[string]string{
		"entity_type": "PERSON", "relation_label": "kartā",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "PERSON", decode[workbench.Form](t, resp).EntityType)

	code, resp = doJSON(t, h, http.MethodPost, "/annotate/page", nil)
	require.Equal(t, http.StatusOK, code)
	form := decode[workbench.Form](t, resp)
	assert.Equal(t, "PERSON", form.EntityType)
	assert.Empty(t, form.RelationLabel)

	code, resp = doJSON(t, h, http.MethodGet, "/annotate/form", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, form, decode[workbench.Form](t, resp))
}

func TestIngestRejectsInvalidAnnotations(t *testing.T) {
	h := newTestServer(t)

	lines := testLines()
	lines[0].Entity = []corpus.Entity{{Occurrence: "a$b", Root: "rāma", Type: "PERSON"}}
	code, resp := doJSON(t, h, http.MethodPost, "/admin/lines", lines)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, common.CodeBadRequest, resp.Code)

	code, resp = doJSON(t, h, http.MethodGet, "/corpus", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[corpusData](t, resp).Rows, 0)
}

func TestAdminRequiresRole(t *testing.T) {
	h := newTestServer(t)

	member := map[string]string{common.HeaderUserName: "bob", common.HeaderUserRoles: common.RoleMember}
	code, resp := doJSONAs(t, h, http.MethodPost, "/admin/lines", testLines(), member)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, common.CodeForbidden, resp.Code)

	code, _ = doJSONAs(t, h, http.MethodGet, "/admin/export?kind=entity", nil, member)
	assert.Equal(t, http.StatusForbidden, code)

	admin := map[string]string{common.HeaderUserName: "alice", common.HeaderUserRoles: "member,admin"}
	code, resp = doJSONAs(t, h, http.MethodPost, "/admin/lines", testLines(), admin)
	require.Equal(t, http.StatusOK, code, resp.Msg)

	// 普通标注人仍可标注
	code, _ = doJSONAs(t, h, http.MethodPost, "/annotate/check", map[string]string{"line_id": "L1"}, member)
	assert.Equal(t, http.StatusOK, code)
}

func TestDiscardAfterRestart(t *testing.T) {
	h := newTestServer(t)

	code, _ := doJSON(t, h, http.MethodPost, "/admin/lines", testLines())
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, h, http.MethodPost, "/annotate/expand", map[string]string{"line_id": "L1"})
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, h, http.MethodPost, "/annotate/relation", map[string]string{
		"line_id": "L1", "source": "rāma", "label": "kartā", "target": "gam",
	})
	require.Equal(t, http.StatusOK, code)

	// 重建注册表，相当于服务重启，暂存区仍在数据库中
	kv := kvstore.NewGormStore(metadata.DatabaseRaw)
	workbench.Init(&workbench.Setting{
		Logger:     logging.NewLogger(),
		GetKVStore: func() kvstore.Store { return kv },
	})

	code, resp := doJSON(t, h, http.MethodPost, "/annotate/discard", map[string]string{"line_id": "L1"})
	require.Equal(t, http.StatusOK, code, resp.Msg)
	view := decode[*workbench.View](t, resp)
	require.NotNil(t, view)
	assert.Equal(t, "L1", view.LineID)
	assert.Equal(t, "no_pending", view.PendingState)
}
