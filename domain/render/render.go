// Package render 生成标注页面中插入的 HTML 片段。所有字段都经过 html/template 转义。
package render

import (
	"bytes"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/utils"
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	ToggleNameEntity   = "entity"
	ToggleNameRelation = "relation"
)

// ToggleSelectors 重新渲染列表后需要重新初始化的开关控件
var ToggleSelectors = []string{
	`[name="` + ToggleNameEntity + `"]`,
	`[name="` + ToggleNameRelation + `"]`,
}

// toggle 总是以打开状态渲染，表示该项会被确认
type toggle struct {
	Name  string
	Value string
}

type entityItem struct {
	Entity  corpus.Entity
	Pending bool
	Toggle  toggle
}

type relationItem struct {
	Relation corpus.Relation
	Pending  bool
	Toggle   toggle
}

type detailRow struct {
	Header string
	Cells  []string
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, utils.WrapError(err, "parse templates fail")
	}
	return &Renderer{tmpl: tmpl}, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", utils.WrapErrorf(err, "execute template [%s] fail", name)
	}
	return buf.String(), nil
}

/*
EntityList 先渲染已确认的实体，再渲染暂存的实体（带 warning 样式）。每一项的开关默认打开。
*/
func (r *Renderer) EntityList(confirmed, pending []corpus.Entity) (string, error) {
	items := make([]entityItem, 0, len(confirmed)+len(pending))
	for _, e := range confirmed {
		items = append(items, entityItem{Entity: e, Toggle: toggle{Name: ToggleNameEntity, Value: e.Value()}})
	}
	for _, e := range pending {
		items = append(items, entityItem{Entity: e, Pending: true, Toggle: toggle{Name: ToggleNameEntity, Value: e.Value()}})
	}
	return r.execute("entity_list", items)
}

func (r *Renderer) RelationList(confirmed, pending []corpus.Relation) (string, error) {
	items := make([]relationItem, 0, len(confirmed)+len(pending))
	for _, rel := range confirmed {
		items = append(items, relationItem{Relation: rel, Toggle: toggle{Name: ToggleNameRelation, Value: rel.Value()}})
	}
	for _, rel := range pending {
		items = append(items, relationItem{Relation: rel, Pending: true, Toggle: toggle{Name: ToggleNameRelation, Value: rel.Value()}})
	}
	return r.execute("relation_list", items)
}

// Options 渲染 datalist 的 <option> 列表
func (r *Renderer) Options(values []string) (string, error) {
	return r.execute("options", values)
}

// LineDetail 渲染逐词分析表，缺少 details 的词对应的格子为空。
func (r *Renderer) LineDetail(line corpus.Line) (string, error) {
	n := len(line.Analysis)
	words := make([]string, 0, n)
	roots := make([]string, 0, n)
	genders := make([]string, 0, n)
	cases := make([]string, 0, n)
	forms := make([]string, 0, n)
	nouns := make([]string, 0, n)

	for _, word := range line.Analysis {
		words = append(words, word.Original)
		roots = append(roots, word.Root)
		if word.Details != nil {
			genders = append(genders, word.Details.Gender)
			cases = append(cases, word.Details.Case)
			forms = append(forms, word.Details.Form)
		} else {
			genders = append(genders, "")
			cases = append(cases, "")
			forms = append(forms, "")
		}
		nouns = append(nouns, strconv.FormatBool(word.IsNoun))
	}

	return r.execute("line_detail", []detailRow{
		{Header: "Word", Cells: words},
		{Header: "Root", Cells: roots},
		{Header: "Gender", Cells: genders},
		{Header: "Case", Cells: cases},
		{Header: "Number", Cells: forms},
		{Header: "Noun?", Cells: nouns},
	})
}
