// Package suggestion 汇总实体输入框的候选词（datalist）。
package suggestion

import "corpus-annotator-backend/domain/corpus"

// orderedSet 按首次插入顺序保存不重复的字符串
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		items: make([]string, 0, capacity),
		seen:  make(map[string]struct{}, capacity),
	}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

func (s *orderedSet) addAll(items []string) {
	for _, item := range items {
		s.add(item)
	}
}

func (s *orderedSet) contains(item string) bool {
	_, ok := s.seen[item]
	return ok
}

/*
Index 是一份语料快照中所有已确认实体的 occurrence 与 root 集合。

Index 创建后不再修改，重新加载语料时用 Build 生成新的 Index。
*/
type Index struct {
	occurrences *orderedSet
	roots       *orderedSet
}

// Build 收集 lines 中每个已确认实体的 occurrence 和 root。
func Build(lines []corpus.Line) *Index {
	index := &Index{
		occurrences: newOrderedSet(len(lines)),
		roots:       newOrderedSet(len(lines)),
	}

	for _, line := range lines {
		for _, entity := range line.Entity {
			index.occurrences.add(entity.Occurrence)
			index.roots.add(entity.Root)
		}
	}

	return index
}

func (i *Index) Occurrences() []string {
	if i == nil {
		return []string{}
	}
	return append([]string(nil), i.occurrences.items...)
}

func (i *Index) Roots() []string {
	if i == nil {
		return []string{}
	}
	return append([]string(nil), i.roots.items...)
}

func (i *Index) HasOccurrence(occurrence string) bool {
	return i != nil && i.occurrences.contains(occurrence)
}

func (i *Index) HasRoot(root string) bool {
	return i != nil && i.roots.contains(root)
}

// Row 是展开某一句时的候选词，顺序只用于展示。
type Row struct {
	Occurrences []string `json:"occurrences"`
	Roots       []string `json:"roots"`
}

/*
ForLine 先放入句中名词的 original 和 root，再并入全局集合。

句中名词总会出现在结果中，即使 Index 是在该句确认之前构建的；i 为 nil 时只返回句中名词。
*/
func (i *Index) ForLine(line corpus.Line) Row {
	occurrences := newOrderedSet(len(line.Analysis))
	roots := newOrderedSet(len(line.Analysis))

	for _, word := range line.Nouns() {
		occurrences.add(word.Original)
		roots.add(word.Root)
	}

	if i != nil {
		occurrences.addAll(i.occurrences.items)
		roots.addAll(i.roots.items)
	}

	return Row{
		Occurrences: occurrences.items,
		Roots:       roots.items,
	}
}
