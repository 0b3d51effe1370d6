// Package server 实现演示用 HTTP 服务器，把快速 JSON 渲染器与解析器接入 fiber。
//
// 所有 c.JSON / c.BodyParser 调用都经过同一个编解码后端；响应格式根据 Accept 头协商，
// text/html 或带 indent 参数的 application/json 会得到缩进输出。
package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/CyrilPeng/fiber-fastjson/internal/config"
	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/log"
	"github.com/CyrilPeng/fiber-fastjson/pkg/parser"
	"github.com/CyrilPeng/fiber-fastjson/pkg/renderer"
)

const (
	// Version 是 fastjson 服务器的当前版本
	Version = "1.0.0"
)

// New 创建并配置 fiber 应用，不监听端口
func New(cfg *config.Config) *fiber.App {
	h := &handlers{
		cfg:      cfg,
		renderer: renderer.New(cfg.Settings()),
		parser:   parser.New(cfg.ParserSettings()),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ServerHeader:          "Fiber-FastJSON",
		AppName:               "Fiber FastJSON v" + Version,
		JSONEncoder:           h.renderer.Marshal,
		JSONDecoder:           h.parser.Unmarshal,
		ErrorHandler:          h.errorHandler,
	})

	// 中间件
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
	}))

	// 仅在启用简单日志模式时启用 HTTP 日志记录
	if cfg.SimpleLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get(constants.EndpointHealth, h.health)
	app.Get("/", h.info)
	app.Post(constants.EndpointEcho, h.echo)
	app.Get(constants.EndpointSample, h.sample)

	return app
}

// Start 初始化并启动 HTTP 服务器，阻塞直到关闭
// onShutdown 在收到中断信号后、关闭服务器前调用，可为 nil
func Start(cfg *config.Config, onShutdown func()) error {
	app := New(cfg)

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Server.Info().Msg("shutting down")
		if onShutdown != nil {
			onShutdown()
		}
		_ = app.Shutdown()
	}()

	fmt.Printf("✅ 服务器运行于 http://localhost:%s\n", cfg.Port)
	fmt.Printf("   编解码后端: %s\n", cfg.Codec)
	fmt.Printf("   十进制转字符串: %v\n", cfg.CoerceDecimalToString)
	if cfg.Indent > 0 {
		fmt.Printf("   默认缩进: %d\n", cfg.Indent)
	}

	log.Server.Info().
		Str("addr", cfg.Addr()).
		Str("codec", cfg.Codec).
		Str("config", cfg.Source).
		Msg("server starting")

	return app.Listen(cfg.Addr())
}
