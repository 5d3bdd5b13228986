package config

import "fmt"

// MySQL 数据库配置
type MySQL struct {
	Host     string `json:"host" yaml:"host" env:"MYSQL_HOST"`
	Port     int    `json:"port" yaml:"port" env:"MYSQL_PORT"`
	Username string `json:"username" yaml:"username" env:"MYSQL_USERNAME"`
	Password string `json:"password" yaml:"password" env:"MYSQL_PASSWORD"`
	Database string `json:"database" yaml:"database" env:"MYSQL_DATABASE"`
	Charset  string `json:"charset" yaml:"charset"`
}

func (m *MySQL) Dsn() string {
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		m.Username, m.Password, m.Host, m.Port, m.Database, charset)
}

// SQLite 本地开发用，配置了 Path 时优先于 MySQL
type SQLite struct {
	Path string `json:"path" yaml:"path" env:"SQLITE_PATH"`
}
