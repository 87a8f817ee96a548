package config

import (
	"fmt"
	"log"

	"github.com/aviroopjana/versa/utils"

	"github.com/spf13/viper"
)

type Config struct { //全局配置句柄
	App struct {
		Name    string
		Port    string
		BaseURL string
	}
	Database struct {
		Dsn                  string
		MaxIdleConns         int
		MaxOpenConns         int
		ConnMaxLifetimeHours int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	Security struct {
		JwtSecret        string
		EncryptionSecret string
	}
	Email struct {
		ResendKey string
		From      string
	}
	OAuth struct {
		Google struct {
			ClientID     string
			ClientSecret string
		}
		Github struct {
			ClientID     string
			ClientSecret string
		}
	}
	Upload struct {
		Dir       string
		MaxSizeMB int64
	}
}

var AppConfig *Config //配置指针全局可用并且避免拷贝

// 使用viper读取配置文件，敏感项可用环境变量覆盖
func InitConfig() {
	viper.SetConfigName("config") //无extension
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")
	// secrets不进配置仓库
	viper.BindEnv("security.jwtsecret", "JWT_SECRET")
	viper.BindEnv("security.encryptionsecret", "ENCRYPTION_SECRET")
	viper.BindEnv("email.resendkey", "RESEND_API_KEY")
	viper.BindEnv("oauth.google.clientid", "GOOGLE_CLIENT_ID")
	viper.BindEnv("oauth.google.clientsecret", "GOOGLE_CLIENT_SECRET")
	viper.BindEnv("oauth.github.clientid", "GITHUB_ID")
	viper.BindEnv("oauth.github.clientsecret", "GITHUB_SECRET")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Error unmarshalling config file: %v", err)
	}
	utils.SetJWTSecret(AppConfig.Security.JwtSecret)
	utils.SetEncryptionSecret(AppConfig.Security.EncryptionSecret)
	initDB()
	initRedis()
	runMigrations()
	initUserCache(1024)
	printURL()
}

func GetPort() string {
	if AppConfig == nil || AppConfig.App.Port == "" {
		log.Println("Warning: Port is not set in config file, using default port 8080")
		return ":8080"
	}
	port := AppConfig.App.Port
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

// BaseURL OAuth回调等场景需要完整的对外地址
func BaseURL() string {
	if AppConfig != nil && AppConfig.App.BaseURL != "" {
		return AppConfig.App.BaseURL
	}
	return "http://localhost" + GetPort()
}

func printURL() {
	fmt.Printf("Versa API:http://localhost%s/api\n", GetPort())
}
