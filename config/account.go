package config

// Account 账号相关配置
type Account struct {
	MainRole          string `json:"main_role" yaml:"main_role"`
	AdminRole         string `json:"admin_role" yaml:"admin_role"`
	EmailVerification bool   `json:"email_verification" yaml:"email_verification" env:"ACCOUNT_EMAIL_VERIFICATION"`
}

func ProvideAccountConfig(cfg *Config) *Account {
	return &cfg.Account
}
