package graph

import (
	"bytes"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/utils"
	"encoding/csv"
)

func transLinesToCSV(lines []corpus.Line) ([]byte, []byte, error) {
	builder := &csvBuilder{}

	if err := builder.buildCSV(lines); err != nil {
		return nil, nil, utils.WrapError(err, "build csv fail")
	}

	return builder.entityCSV.Bytes(), builder.relationCSV.Bytes(), nil
}

type csvBuilder struct {
	// output
	entityCSV   bytes.Buffer
	relationCSV bytes.Buffer
}

func (b *csvBuilder) buildCSV(lines []corpus.Line) error {
	entityWriter := csv.NewWriter(&b.entityCSV)
	relationWriter := csv.NewWriter(&b.relationCSV)

	// 写文件头
	if err := entityWriter.Write([]string{"line_id", "occurrence", "root", "type"}); err != nil {
		return utils.WrapError(err, "write entity header fail")
	}
	if err := relationWriter.Write([]string{"line_id", "source", "label", "target"}); err != nil {
		return utils.WrapError(err, "write relation header fail")
	}

	for _, line := range lines {
		for _, e := range line.Entity {
			if err := entityWriter.Write([]string{line.LineID, e.Occurrence, e.Root, e.Type}); err != nil {
				return utils.WrapErrorf(err, "record entity [%#v] of line [%s] fail", e.Value(), line.LineID)
			}
		}

		for _, r := range line.Relation {
			if err := relationWriter.Write([]string{line.LineID, r.Source, r.Label, r.Target}); err != nil {
				return utils.WrapErrorf(err, "record relation [%#v] of line [%s] fail", r.Value(), line.LineID)
			}
		}
	}

	entityWriter.Flush()
	relationWriter.Flush()

	if err := entityWriter.Error(); err != nil {
		return utils.WrapError(err, "flush entity csv fail")
	}
	return utils.WrapError(relationWriter.Error(), "flush relation csv fail")
}
