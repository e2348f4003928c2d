package workbench

import (
	"context"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/render"
	"corpus-annotator-backend/domain/staging"
	"corpus-annotator-backend/domain/suggestion"
	"corpus-annotator-backend/utils"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrLineNotLoaded = errors.New("line is not in the loaded dataset")
	ErrNoActiveLine  = errors.New("no line is expanded")
	ErrStaleLine     = errors.New("line_id does not match the expanded line")
)

/*
Form 是标注表单的状态。

	LineID 当前展开的句子，实体表单和关系表单共用；
	EntityType 实体类型选择框，重置表单时保留；
	其余五个为自由输入框；
*/
type Form struct {
	LineID           string `json:"line_id"`
	EntityOccurrence string `json:"entity_occurrence"`
	EntityRoot       string `json:"entity_root"`
	EntityType       string `json:"entity_type"`
	RelationSource   string `json:"relation_source"`
	RelationLabel    string `json:"relation_label"`
	RelationTarget   string `json:"relation_target"`
}

// Inputs 是浏览器同步过来的输入框内容
type Inputs struct {
	EntityOccurrence string `json:"entity_occurrence"`
	EntityRoot       string `json:"entity_root"`
	EntityType       string `json:"entity_type"`
	RelationSource   string `json:"relation_source"`
	RelationLabel    string `json:"relation_label"`
	RelationTarget   string `json:"relation_target"`
}

type Datalists struct {
	Occurrence string `json:"occurrence"`
	Root       string `json:"root"`
	Source     string `json:"source"`
	Target     string `json:"target"`
}

// View 是展开一句话时页面需要替换的内容
type View struct {
	LineID           string         `json:"line_id"`
	Suggestions      suggestion.Row `json:"suggestions"`
	Datalists        Datalists      `json:"datalists"`
	EntityListHTML   string         `json:"entity_list_html"`
	RelationListHTML string         `json:"relation_list_html"`
	DetailHTML       string         `json:"detail_html"`
	PendingState     string         `json:"pending_state"`
	RefreshToggles   []string       `json:"refresh_toggles"`
	Form             Form           `json:"form"`
}

// Selection 是确认时被勾选的标注
type Selection struct {
	Entities  []corpus.Entity   `json:"entities"`
	Relations []corpus.Relation `json:"relations"`
}

// CommitFunc 把确认的标注提交到语料，返回错误时暂存区保持不变。
type CommitFunc func(ctx context.Context, lineID string, selection *Selection) error

/*
Workbench 是一个标注人的工作台，响应表格控件的加载、勾选、展开、收起、翻页事件。

所有方法持有同一把锁，同一标注人的事件依次执行。
*/
type Workbench struct {
	mu sync.Mutex

	staging  *staging.Store
	renderer *render.Renderer
	logger   *logrus.Logger

	index *suggestion.Index
	order []string
	lines map[string]corpus.Line
	form  Form
}

func New(store *staging.Store, renderer *render.Renderer, logger *logrus.Logger) *Workbench {
	return &Workbench{
		staging:  store,
		renderer: renderer,
		logger:   logger,
		lines:    make(map[string]corpus.Line),
	}
}

////////////// 表格事件 ///////////////

// DatasetLoaded 用新加载的语料重建候选词索引。
func (w *Workbench) DatasetLoaded(lines []corpus.Line) *suggestion.Index {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.index = suggestion.Build(lines)
	w.order = make([]string, 0, len(lines))
	w.lines = make(map[string]corpus.Line, len(lines))
	for _, line := range lines {
		w.order = append(w.order, line.LineID)
		w.lines[line.LineID] = line
	}

	w.logger.Debugf("dataset loaded: %d lines, %d roots", len(lines), len(w.index.Roots()))
	return w.index
}

func (w *Workbench) Index() *suggestion.Index {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.index
}

// RowChecked 收起所有行，然后展开被勾选的行。
func (w *Workbench) RowChecked(ctx context.Context, lineID string) (*View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetInputFields()
	return w.expand(ctx, lineID)
}

func (w *Workbench) RowExpanded(ctx context.Context, lineID string) (*View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.expand(ctx, lineID)
}

func (w *Workbench) RowCollapsed() Form {
	return w.ResetInputFields()
}

func (w *Workbench) PageChanged() Form {
	return w.ResetInputFields()
}

// ResetInputFields 清空五个输入框并解除当前句子的绑定。
func (w *Workbench) ResetInputFields() Form {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetInputFields()
	return w.form
}

func (w *Workbench) resetInputFields() {
	w.form.LineID = ""
	w.form.EntityOccurrence = ""
	w.form.EntityRoot = ""
	w.form.RelationSource = ""
	w.form.RelationLabel = ""
	w.form.RelationTarget = ""
}

func (w *Workbench) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.form
}

// UpdateInputs 保存输入框内容，不改变当前句子的绑定。
func (w *Workbench) UpdateInputs(in Inputs) Form {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.form.EntityOccurrence = in.EntityOccurrence
	w.form.EntityRoot = in.EntityRoot
	w.form.EntityType = in.EntityType
	w.form.RelationSource = in.RelationSource
	w.form.RelationLabel = in.RelationLabel
	w.form.RelationTarget = in.RelationTarget
	return w.form
}

func (w *Workbench) expand(ctx context.Context, lineID string) (*View, error) {
	line, ok := w.lines[lineID]
	if !ok {
		return nil, utils.WrapErrorf(ErrLineNotLoaded, "line_id=%#v", lineID)
	}

	w.form.LineID = lineID
	w.form.EntityOccurrence = ""
	w.form.EntityRoot = ""
	w.form.RelationSource = ""
	w.form.RelationTarget = ""

	return w.render(ctx, line)
}

// rebuildIndex 用当前快照重建索引，使刚确认的实体立即出现在候选词中。
func (w *Workbench) rebuildIndex() {
	lines := make([]corpus.Line, 0, len(w.order))
	for _, id := range w.order {
		lines = append(lines, w.lines[id])
	}
	w.index = suggestion.Build(lines)
}

////////////// 渲染 ///////////////

func (w *Workbench) render(ctx context.Context, line corpus.Line) (*View, error) {
	row := w.index.ForLine(line)

	occurrenceOptions, err := w.renderer.Options(row.Occurrences)
	if err != nil {
		return nil, err
	}
	rootOptions, err := w.renderer.Options(row.Roots)
	if err != nil {
		return nil, err
	}

	pendingEntities, err := w.staging.Entities(ctx, line.LineID)
	if err != nil {
		return nil, utils.WrapError(err, "read staged entities fail")
	}
	pendingRelations, err := w.staging.Relations(ctx, line.LineID)
	if err != nil {
		return nil, utils.WrapError(err, "read staged relations fail")
	}

	entityList, err := w.renderer.EntityList(line.Entity, pendingEntities)
	if err != nil {
		return nil, err
	}
	relationList, err := w.renderer.RelationList(line.Relation, pendingRelations)
	if err != nil {
		return nil, err
	}
	detail, err := w.renderer.LineDetail(line)
	if err != nil {
		return nil, err
	}

	state := staging.NoPending
	if len(pendingEntities) != 0 || len(pendingRelations) != 0 {
		state = staging.Pending
	}

	return &View{
		LineID:      line.LineID,
		Suggestions: row,
		Datalists: Datalists{
			Occurrence: occurrenceOptions,
			Root:       rootOptions,
			Source:     rootOptions,
			Target:     rootOptions,
		},
		EntityListHTML:   entityList,
		RelationListHTML: relationList,
		DetailHTML:       detail,
		PendingState:     state.String(),
		RefreshToggles:   render.ToggleSelectors,
		Form:             w.form,
	}, nil
}

////////////// 暂存与确认 ///////////////

func (w *Workbench) checkActive(lineID string) error {
	if len(w.form.LineID) == 0 {
		return ErrNoActiveLine
	}
	if w.form.LineID != lineID {
		return utils.WrapErrorf(ErrStaleLine, "expanded=%#v, submitted=%#v", w.form.LineID, lineID)
	}
	return nil
}

// StageEntity 暂存一个实体并重新渲染当前句子。
func (w *Workbench) StageEntity(ctx context.Context, lineID string, entity corpus.Entity) (*View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkActive(lineID); err != nil {
		return nil, err
	}

	entity = entity.Normalize()
	if err := entity.Validate(); err != nil {
		return nil, utils.WrapError(err, "invalid entity")
	}

	if err := w.staging.StageEntity(ctx, lineID, entity); err != nil {
		return nil, err
	}

	w.form.EntityOccurrence = ""
	w.form.EntityRoot = ""
	w.form.EntityType = entity.Type

	return w.render(ctx, w.lines[lineID])
}

func (w *Workbench) StageRelation(ctx context.Context, lineID string, relation corpus.Relation) (*View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkActive(lineID); err != nil {
		return nil, err
	}

	relation = relation.Normalize()
	if err := relation.Validate(); err != nil {
		return nil, utils.WrapError(err, "invalid relation")
	}

	if err := w.staging.StageRelation(ctx, lineID, relation); err != nil {
		return nil, err
	}

	w.form.RelationSource = ""
	w.form.RelationTarget = ""

	return w.render(ctx, w.lines[lineID])
}

// DiscardPending 丢弃一句话的全部暂存标注。句子已加载时返回重新渲染的结果。
func (w *Workbench) DiscardPending(ctx context.Context, lineID string) (*View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.staging.ClearAll(ctx, lineID); err != nil {
		return nil, err
	}

	line, ok := w.lines[lineID]
	if !ok {
		return nil, nil
	}
	return w.render(ctx, line)
}

func parseSelection(entityValues, relationValues []string) (*Selection, error) {
	selection := &Selection{
		Entities:  make([]corpus.Entity, 0, len(entityValues)),
		Relations: make([]corpus.Relation, 0, len(relationValues)),
	}

	seen := make(map[string]struct{}, len(entityValues)+len(relationValues))

	for _, value := range entityValues {
		entity, err := corpus.ParseEntity(value)
		if err == nil {
			err = entity.Validate()
		}
		if err != nil {
			return nil, utils.WrapErrorf(err, "entity value %#v", value)
		}

		if _, ok := seen["e"+value]; ok {
			continue
		}
		seen["e"+value] = struct{}{}
		selection.Entities = append(selection.Entities, entity)
	}

	for _, value := range relationValues {
		relation, err := corpus.ParseRelation(value)
		if err == nil {
			err = relation.Validate()
		}
		if err != nil {
			return nil, utils.WrapErrorf(err, "relation value %#v", value)
		}

		if _, ok := seen["r"+value]; ok {
			continue
		}
		seen["r"+value] = struct{}{}
		selection.Relations = append(selection.Relations, relation)
	}

	return selection, nil
}

/*
ConfirmSelected 确认勾选的标注。

entityValues 和 relationValues 是列表中处于打开状态的开关的 value，未勾选的项不在其中，视为拒绝。
重复的项只保留第一次出现。commit 成功后清空该句的暂存区；任一 value 非法或 commit 失败时不做任何修改。
*/
func (w *Workbench) ConfirmSelected(ctx context.Context, lineID string, entityValues, relationValues []string, commit CommitFunc) (*Selection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkActive(lineID); err != nil {
		return nil, err
	}

	selection, err := parseSelection(entityValues, relationValues)
	if err != nil {
		return nil, utils.WrapError(err, "parse checked values fail")
	}

	if err := commit(ctx, lineID, selection); err != nil {
		return nil, utils.WrapErrorf(err, "commit line [%s] fail", lineID)
	}

	if err := w.staging.ClearAll(ctx, lineID); err != nil {
		return nil, utils.WrapError(err, "clear staged annotations fail")
	}

	line := w.lines[lineID]
	line.Entity = selection.Entities
	line.Relation = selection.Relations
	w.lines[lineID] = line
	w.rebuildIndex()

	w.logger.Infof("line [%s] confirmed: %d entities, %d relations", lineID, len(selection.Entities), len(selection.Relations))
	return selection, nil
}
