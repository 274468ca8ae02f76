// @title PathGenius 后端 API
// @version 1.0
// @description PathGenius 个性化学习路径平台的后端服务器。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /

package main

import (
	"log"

	"pathgenius_backend/internal/app"
	"pathgenius_backend/internal/config"
	"pathgenius_backend/pkg/configwatcher"
	"pathgenius_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置文件热更新
	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
