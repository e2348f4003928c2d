package metadata

import (
	"corpus-annotator-backend/logging"
	"corpus-annotator-backend/utils"
	"fmt"
	"sync/atomic"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Database string
}

func (c *MySQLConfig) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Database)
}

/*
Config 描述元信息数据库。

	MySQL 生产环境使用的 MySQL；
	SQLitePath 非空时使用 SQLite 代替 MySQL，用于 DEBUG 和测试；
	CheckMigration 启动时执行 AutoMigrate；
*/
type Config struct {
	MySQL          MySQLConfig
	SQLitePath     string
	CheckMigration bool
}

var testDatabaseSeq int64

// GenerateTestConfig 每次调用返回一个独立的内存 SQLite 数据库。
func GenerateTestConfig() *Config {
	seq := atomic.AddInt64(&testDatabaseSeq, 1)
	return &Config{
		SQLitePath:     fmt.Sprintf("file:metadata_test_%d?mode=memory&cache=shared", seq),
		CheckMigration: true,
	}
}

var db *gorm.DB

func (c *Config) dialector() gorm.Dialector {
	if len(c.SQLitePath) != 0 {
		return sqlite.Open(c.SQLitePath)
	}
	return mysql.Open(c.MySQL.dsn())
}

func CreateDatabase(config *Config) (*gorm.DB, error) {
	database, err := gorm.Open(config.dialector(), &gorm.Config{
		Logger: logger.New(&sqlLogger{logger: logging.NewLogger()}, logger.Config{LogLevel: logger.Info}),
	})
	if err != nil {
		return nil, utils.WrapError(err, "db connection fail")
	}

	if config.CheckMigration {
		err = migration(database, len(config.SQLitePath) == 0)
		if err != nil {
			return nil, utils.WrapError(err, "migration fail")
		}
	}

	return database, nil
}

func migration(db *gorm.DB, isMySQL bool) error {
	tables := []interface{}{
		&Line{}, &Entity{}, &Relation{}, &StagingEntry{},
	}

	if isMySQL {
		db = db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci")
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return utils.WrapError(err, "AutoMigrate fail")
	}

	return nil
}

func Init(config *Config) {
	database, err := CreateDatabase(config)
	if err != nil {
		panic(err)
	}

	db = database
}

func DatabaseRaw() *gorm.DB {
	return db
}
