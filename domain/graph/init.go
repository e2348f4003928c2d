package graph

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/repository/neograph"

	"github.com/sirupsen/logrus"
)

type KGSetting struct {
	Logger  *logrus.Logger
	Enabled func() bool
	Execute func(cypher string, params map[string]interface{}) error
}

var globalSetting = KGSetting{
	Logger:  logrus.StandardLogger(),
	Enabled: neograph.Enabled,
	Execute: func(cypher string, params map[string]interface{}) error {
		_, err := neograph.Execute(cypher, params)
		return err
	},
}

func Init(setting *KGSetting) {
	globalSetting = *setting
}

func ExportConfirmed(lineID string, entities []corpus.Entity, relations []corpus.Relation) error {
	return exportConfirmed(&globalSetting, lineID, entities, relations)
}

func TransLinesToCSV(lines []corpus.Line) ([]byte, []byte, error) {
	return transLinesToCSV(lines)
}
