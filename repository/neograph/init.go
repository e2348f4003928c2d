package neograph

import (
	"corpus-annotator-backend/utils"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
)

type Neo4jConfig struct {
	Host string
	Port int
	User string
	Pwd  string
}

func (c *Neo4jConfig) uri() string {
	return fmt.Sprintf("neo4j://%s:%d", c.Host, c.Port)
}

type Config struct {
	Neo4j Neo4jConfig
}

// Enabled 未配置 Host 时不连接 Neo4j
func (c *Config) Enabled() bool {
	return len(c.Neo4j.Host) != 0
}

func GenerateTestConfig() *Config {
	return &Config{Neo4j: Neo4jConfig{
		Host: "",
		Port: 7687,
		User: "neo4j",
		Pwd:  "neo4j",
	}}
}

var driver neo4j.Driver

func Init(config *Config) {
	if !config.Enabled() {
		return
	}

	d, err := neo4j.NewDriver(config.Neo4j.uri(), neo4j.BasicAuth(config.Neo4j.User, config.Neo4j.Pwd, ""))
	if err != nil {
		panic(utils.WrapErrorf(err, "create neo4j driver for [%s] fail", config.Neo4j.uri()))
	}

	if err := d.VerifyConnectivity(); err != nil {
		panic(utils.WrapErrorf(err, "connect neo4j [%s] fail", config.Neo4j.uri()))
	}

	driver = d
}

func Enabled() bool {
	return driver != nil
}

func Close() {
	if driver != nil {
		_ = driver.Close()
		driver = nil
	}
}
