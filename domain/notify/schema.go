package notify

import "corpus-annotator-backend/domain/corpus"

// ConfirmedSchema 是 annotation_confirmed 队列的消息
type ConfirmedSchema struct {
	LineID      string            `json:"line_id"`
	User        string            `json:"user"`
	ConfirmedAt int64             `json:"confirmed_at"`
	Entities    []corpus.Entity   `json:"entities"`
	Relations   []corpus.Relation `json:"relations"`
}

// CorpusLinesSchema 是外部分析器发到 corpus_lines 队列的消息
type CorpusLinesSchema struct {
	Lines []corpus.Line `json:"lines"`
}
