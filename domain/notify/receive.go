package notify

import (
	"context"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/utils"
	"encoding/json"
	"errors"

	"github.com/streadway/amqp"
)

var errEmptyBody = errors.New("message body is empty")

func buildReceive(saveLines func(ctx context.Context, lines []corpus.Line) error) func(msg *amqp.Delivery) error {
	return func(msg *amqp.Delivery) error {
		if len(msg.Body) == 0 {
			return utils.WrapError(errEmptyBody, "msg.Body is empty")
		}

		var data CorpusLinesSchema
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			return utils.WrapErrorf(err, "json unmarshal fail with[%#v]", string(msg.Body))
		}

		if len(data.Lines) == 0 {
			return nil
		}

		if err := saveLines(context.Background(), data.Lines); err != nil {
			return utils.WrapError(err, "save lines to db fail")
		}

		return nil
	}
}
