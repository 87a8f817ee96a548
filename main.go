package main

import (
	"github.com/aviroopjana/versa/config"
	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/router"
)

// @title       Versa API
// @version     0.1.0
// @description 法律文本AI转换服务的接口文档
// @BasePath    /api
func main() {
	// 初始化日志
	if err := log.Init(false); err != nil { // false 表示开发模式
		panic(err)
	}
	defer log.Sync()
	log.L().Info("The versa app has runned!")
	//配置初始化
	config.InitConfig() // 数据库/redis/缓存都在这里面建好
	r := router.SetupRouter()
	port := config.GetPort()
	r.Run(port) // 监听端口并启动服务
}
