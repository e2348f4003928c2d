package corpus

type WordDetails struct {
	Gender string `json:"gender"`
	Case   string `json:"case"`
	Form   string `json:"form"`
}

// Word 是外部分析器给出的逐词分析结果，Details 可以缺省。
type Word struct {
	Original string       `json:"original"`
	Root     string       `json:"root"`
	IsNoun   bool         `json:"is_noun"`
	Details  *WordDetails `json:"details,omitempty"`
}

// Entity 是一个名词实体标注。
type Entity struct {
	Occurrence string `json:"occurrence"`
	Root       string `json:"root"`
	Type       string `json:"type"`
}

// Relation 是两个词根之间有向、带标签的边。
type Relation struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Line 是语料中的一句话，LineID 在语料内唯一。
type Line struct {
	LineID   string     `json:"line_id"`
	Analysis []Word     `json:"analysis"`
	Entity   []Entity   `json:"entity"`
	Relation []Relation `json:"relation"`
}

// Nouns 返回 Analysis 中 IsNoun 为 true 的词，保持原顺序。
func (l *Line) Nouns() []Word {
	ret := make([]Word, 0, len(l.Analysis))
	for _, word := range l.Analysis {
		if word.IsNoun {
			ret = append(ret, word)
		}
	}
	return ret
}
