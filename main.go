package main

import (
	"corpus-annotator-backend/config"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/graph"
	"corpus-annotator-backend/domain/notify"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/logging"
	"corpus-annotator-backend/repository/kvstore"
	"corpus-annotator-backend/repository/metadata"
	"corpus-annotator-backend/repository/neograph"
	"corpus-annotator-backend/server"
	"corpus-annotator-backend/utils"
	"corpus-annotator-backend/utils/email"
	"os"

	"github.com/sirupsen/logrus"
)

const DEBUG = true

func loggingConf() *logging.Config {
	dir := "logs"
	if !DEBUG && len(os.Getenv(config.EnvKeyLogDir)) != 0 {
		dir = os.Getenv(config.EnvKeyLogDir)
	}

	return &logging.Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   logrus.InfoLevel,
		FileDir:        dir,
		DisableConsole: false,
	}
}

func emailConf() *email.Config {
	if DEBUG {
		return email.GenerateTestConfig()
	}

	return &email.Config{SMTP: email.SMTPConfig{
		SenderName: os.Getenv(config.EnvKeyEmailSMTPSenderName),
		Host:       os.Getenv(config.EnvKeyEmailSMTPHost),
		Port:       utils.AtoiOr(os.Getenv(config.EnvKeyEmailSMTPPort), 465),
		UserName:   os.Getenv(config.EnvKeyEmailSMTPUserName),
		Password:   os.Getenv(config.EnvKeyEmailSMTPPassword),
	}}
}

func metadataConf() *metadata.Config {
	if DEBUG {
		return &metadata.Config{
			SQLitePath:     "annotator.db",
			CheckMigration: true,
		}
	}

	return &metadata.Config{
		MySQL: metadata.MySQLConfig{
			User:     os.Getenv(config.EnvKeyMySQLUser),
			Password: os.Getenv(config.EnvKeyMySQLPassword),
			Host:     os.Getenv(config.EnvKeyMySQLHost),
			Database: os.Getenv(config.EnvKeyMySQLDatabase),
		},
		CheckMigration: true,
	}
}

func corpusConf() *corpus.Setting {
	return &corpus.Setting{
		GetMetadataDatabase: metadata.DatabaseRaw,
		Logger:              logging.NewLogger(),
	}
}

func workbenchConf() *workbench.Setting {
	store := kvstore.NewGormStore(metadata.DatabaseRaw)
	return &workbench.Setting{
		Logger:     logging.NewLogger(),
		GetKVStore: func() kvstore.Store { return store },
	}
}

func notifyConf() *notify.Config {
	if DEBUG {
		return &notify.Config{
			RabbitMQConfig: notify.MQConnectionConfig{},
			Logger:         logging.NewLogger(),
			SaveLines:      corpus.Upsert,
		}
	}

	return &notify.Config{
		RabbitMQConfig: notify.MQConnectionConfig{
			User: os.Getenv(config.EnvKeyRabbitMQUser),
			Pwd:  os.Getenv(config.EnvKeyRabbitMQPwd),
			Host: os.Getenv(config.EnvKeyRabbitMQHost),
			Port: os.Getenv(config.EnvKeyRabbitMQPort),
		},
		Logger:    logging.NewLogger(),
		SaveLines: corpus.Upsert,
	}
}

func neographConf() *neograph.Config {
	if DEBUG {
		return neograph.GenerateTestConfig()
	}

	return &neograph.Config{Neo4j: neograph.Neo4jConfig{
		Host: os.Getenv(config.EnvKeyNeo4jHost),
		Port: utils.AtoiOr(os.Getenv(config.EnvKeyNeo4jPort), 7687),
		User: os.Getenv(config.EnvKeyNeo4jUser),
		Pwd:  os.Getenv(config.EnvKeyNeo4jPwd),
	}}
}

func graphConf() *graph.KGSetting {
	return &graph.KGSetting{
		Logger:  logging.NewLogger(),
		Enabled: neograph.Enabled,
		Execute: func(cypher string, params map[string]interface{}) error {
			_, err := neograph.Execute(cypher, params)
			return err
		},
	}
}

func serverConf() *server.Config {
	conf := &server.Config{
		Host:        "",
		Port:        8003,
		DebugMode:   DEBUG,
		CorpusTitle: "Corpus Annotation",
	}

	if DEBUG {
		return conf
	}

	conf.Host = os.Getenv(config.EnvKeyServerHost)
	conf.Port = utils.AtoiOr(os.Getenv(config.EnvKeyServerPort), conf.Port)
	if title := os.Getenv(config.EnvKeyCorpusTitle); len(title) != 0 {
		conf.CorpusTitle = title
	}
	return conf
}

func main() {
	logging.SetDefaultConfig(loggingConf())
	logger := logging.NewLogger()

	email.Init(emailConf())

	metadata.Init(metadataConf())

	corpus.Init(corpusConf())

	workbench.Init(workbenchConf())

	notify.Init(notifyConf())
	defer notify.Close()

	neograph.Init(neographConf())
	defer neograph.Close()

	graph.Init(graphConf())

	s := server.New(serverConf())
	err := s.RunServer()
	if err != nil {
		logger.WithError(err).Errorf("run server error=\n%v", err)
	}
}
