package notify

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/utils"
	"time"
)

// PublishConfirmed 把确认的标注发布到 annotation_confirmed 队列，未配置 RabbitMQ 时什么也不做。
func PublishConfirmed(lineID, user string, entities []corpus.Entity, relations []corpus.Relation) error {
	if globalMQManager == nil {
		return nil
	}

	err := globalMQManager.SendObjectByJSON(QueueAnnotationConfirmed, ConfirmedSchema{
		LineID:      lineID,
		User:        user,
		ConfirmedAt: time.Now().Unix(),
		Entities:    entities,
		Relations:   relations,
	})
	return utils.WrapErrorf(err, "publish confirmation of line [%s] fail", lineID)
}
