package render

import (
	"corpus-annotator-backend/domain/corpus"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityList_ConfirmedThenPending(t *testing.T) {
	r := MustNew()

	html, err := r.EntityList(
		[]corpus.Entity{{Occurrence: "Rāma", Root: "rāma", Type: "PERSON"}},
		[]corpus.Entity{{Occurrence: "vanam", Root: "vana", Type: "PLACE"}},
	)
	require.Nil(t, err)

	items := strings.Split(html, "</li>")
	require.Len(t, items, 3)
	assert.Contains(t, items[0], `<li class="list-group-item">`)
	assert.Contains(t, items[0], `value="Rāma$rāma$PERSON"`)
	assert.Contains(t, items[1], `<li class="list-group-item list-group-item-warning">`)
	assert.Contains(t, items[1], `value="vanam$vana$PLACE"`)

	assert.Equal(t, 2, strings.Count(html, ` checked>`))
	assert.Equal(t, 2, strings.Count(html, `name="entity"`))
	assert.Equal(t, 2, strings.Count(html, `data-toggle="toggle"`))
}

func TestRelationList(t *testing.T) {
	r := MustNew()

	html, err := r.RelationList(nil, []corpus.Relation{{Source: "rāma", Label: "kartā", Target: "gam"}})
	require.Nil(t, err)

	assert.Contains(t, html, `(rāma) <span class="text-muted">⊢ [kartā] →</span> (gam)`)
	assert.Contains(t, html, `name="relation" value="rāma$kartā$gam"`)
	assert.Contains(t, html, `list-group-item-warning`)
}

func TestEntityList_Empty(t *testing.T) {
	html, err := MustNew().EntityList(nil, nil)
	require.Nil(t, err)
	assert.Equal(t, "", html)
}

func TestEntityList_Escapes(t *testing.T) {
	html, err := MustNew().EntityList([]corpus.Entity{{Occurrence: `<script>alert(1)</script>`, Root: `"x"`, Type: "T"}}, nil)
	require.Nil(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, `value=""x"`)
}

func TestOptions(t *testing.T) {
	html, err := MustNew().Options([]string{"rāma", "a<b"})
	require.Nil(t, err)
	assert.Equal(t, "<option>rāma</option><option>a&lt;b</option>", html)
}

func TestLineDetail_MissingDetails(t *testing.T) {
	html, err := MustNew().LineDetail(corpus.Line{
		LineID: "L1",
		Analysis: []corpus.Word{
			{Original: "rāmaḥ", Root: "rāma", IsNoun: true, Details: &corpus.WordDetails{Gender: "m", Case: "1", Form: "sg"}},
			{Original: "gacchati", Root: "gam"},
		},
	})
	require.Nil(t, err)

	assert.Contains(t, html, `<tr><th scope="row">Word</th><td>rāmaḥ</td><td>gacchati</td></tr>`)
	assert.Contains(t, html, `<tr><th scope="row">Gender</th><td>m</td><td></td></tr>`)
	assert.Contains(t, html, `<tr><th scope="row">Noun?</th><td>true</td><td>false</td></tr>`)
}
