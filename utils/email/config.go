package email

type SMTPConfig struct {
	// 发件人显示名
	SenderName string
	Host       string
	Port       int
	UserName   string
	Password   string
}

type Config struct {
	SMTP SMTPConfig
}

// Enabled 在未配置 SMTP 服务器时为 false，此时不发送任何邮件。
func (c *Config) Enabled() bool {
	return len(c.SMTP.Host) != 0
}

var globalConfig = Config{}

func Init(config *Config) {
	globalConfig = *config
}

func Enabled() bool {
	return globalConfig.Enabled()
}

func GenerateTestConfig() *Config {
	return &Config{SMTP: SMTPConfig{
		SenderName: "Corpus Annotator",
		Host:       "",
		Port:       587,
	}}
}
