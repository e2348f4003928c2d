package notify

import (
	"context"
	"corpus-annotator-backend/domain/corpus"

	"github.com/sirupsen/logrus"
)

type Config struct {
	RabbitMQConfig MQConnectionConfig
	Logger         *logrus.Logger
	// SaveLines 保存从 corpus_lines 队列收到的句子
	SaveLines func(ctx context.Context, lines []corpus.Line) error
}

var (
	globalMQManager *rabbitMQManager
	globalLogger    = logrus.StandardLogger()
)

const (
	QueueAnnotationConfirmed = "annotation_confirmed"
	QueueCorpusLines         = "corpus_lines"
)

// Init 连接 RabbitMQ 并开始消费 corpus_lines。未配置 RabbitMQ 时只记录 logger。
func Init(config *Config) {
	if config.Logger != nil {
		globalLogger = config.Logger
	}

	if !config.RabbitMQConfig.Enabled() {
		globalLogger.Warnf("rabbit mq is not configured, confirmed annotations are not published")
		return
	}

	var err error
	globalMQManager, err = newRabbitMQManager(config.RabbitMQConfig.ToURL(), []string{
		QueueAnnotationConfirmed,
		QueueCorpusLines,
	})
	if err != nil {
		panic(err)
	}

	err = globalMQManager.ListenOn(QueueCorpusLines, buildReceive(config.SaveLines))
	if err != nil {
		panic(err)
	}
}

func Close() {
	if globalMQManager != nil {
		err := globalMQManager.Close()
		if err != nil {
			globalMQManager.logger.WithError(err).Errorf("globalMQManager close fail with err:\n%v", err)
		}
	}
}
