package config

// 非 DEBUG 模式下从以下环境变量读取配置
const (
	EnvKeyServerHost = "ANNOTATOR_SERVER_HOST"
	EnvKeyServerPort = "ANNOTATOR_SERVER_PORT"
	EnvKeyLogDir     = "ANNOTATOR_LOG_DIR"

	EnvKeyMySQLUser     = "ANNOTATOR_MYSQL_USER"
	EnvKeyMySQLPassword = "ANNOTATOR_MYSQL_PASSWORD"
	EnvKeyMySQLHost     = "ANNOTATOR_MYSQL_HOST"
	EnvKeyMySQLDatabase = "ANNOTATOR_MYSQL_DATABASE"

	EnvKeyRabbitMQUser = "ANNOTATOR_RABBITMQ_USER"
	EnvKeyRabbitMQPwd  = "ANNOTATOR_RABBITMQ_PWD"
	EnvKeyRabbitMQHost = "ANNOTATOR_RABBITMQ_HOST"
	EnvKeyRabbitMQPort = "ANNOTATOR_RABBITMQ_PORT"

	EnvKeyNeo4jHost = "ANNOTATOR_NEO4J_HOST"
	EnvKeyNeo4jPort = "ANNOTATOR_NEO4J_PORT"
	EnvKeyNeo4jUser = "ANNOTATOR_NEO4J_USER"
	EnvKeyNeo4jPwd  = "ANNOTATOR_NEO4J_PWD"

	EnvKeyEmailSMTPSenderName = "ANNOTATOR_SMTP_SENDER_NAME"
	EnvKeyEmailSMTPHost       = "ANNOTATOR_SMTP_HOST"
	EnvKeyEmailSMTPPort       = "ANNOTATOR_SMTP_PORT"
	EnvKeyEmailSMTPUserName   = "ANNOTATOR_SMTP_USER"
	EnvKeyEmailSMTPPassword   = "ANNOTATOR_SMTP_PASSWORD"

	EnvKeyCorpusTitle = "ANNOTATOR_CORPUS_TITLE"
)
