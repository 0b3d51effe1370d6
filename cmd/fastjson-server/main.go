package main

import (
	"fmt"
	"os"

	"github.com/CyrilPeng/fiber-fastjson/internal/config"
	"github.com/CyrilPeng/fiber-fastjson/internal/daemon"
	"github.com/CyrilPeng/fiber-fastjson/internal/server"
	"github.com/CyrilPeng/fiber-fastjson/pkg/log"
)

func main() {
	// 解析命令和标志
	debug := false
	simpleLog := false
	enableLog := false
	jsonLog := false
	command := ""

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-d", "--debug":
			debug = true
		case "-s", "--simple":
			simpleLog = true
		case "-l", "--log":
			enableLog = true
		case "-j", "--json-log":
			jsonLog = true
		case "stop", "status", "version", "help", "-h", "--help":
			command = arg
		}
	}

	switch command {
	case "version":
		fmt.Println("fastjson-server v" + server.Version)
		return
	case "help", "-h", "--help":
		printHelp()
		return
	}

	// 加载配置（带调试模式）
	cfg, err := config.LoadWithDebug(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	d := daemon.New("", cfg.Port)

	switch command {
	case "stop":
		if err := d.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("✅ 服务器已停止")
		return
	case "status":
		fmt.Println(d.Status())
		return
	}

	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志级别无效: %v\n", err)
		os.Exit(1)
	}
	if debug {
		cfg.LogLevel = "debug"
		level, _ = log.ParseLogLevel(cfg.LogLevel)
		fmt.Println("🐛 调试模式已启用 - 请求体与编码路径日志已激活")
	}
	logType := log.ConsoleLogger
	if jsonLog {
		logType = log.JSONLogger
	}
	log.Init(log.Options{LogLevel: level, Type: logType})

	// 如果请求，启用简单日志记录
	if simpleLog {
		cfg.SimpleLog = true
		fmt.Println("📊 简单日志模式已启用 - 每个请求一行摘要")
	}

	if cfg.Source != "" {
		fmt.Printf("📁 已从以下位置加载配置: %s\n", cfg.Source)
	}

	if err := d.Start(enableLog); err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}

	// 启动 HTTP 服务器（阻塞）
	if err := server.Start(cfg, d.Cleanup); err != nil {
		d.Cleanup()
		fmt.Fprintf(os.Stderr, "启动服务器失败: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`Fiber FastJSON - 基于快速 JSON 编解码器的 fiber 渲染器/解析器演示服务

用法:
  fastjson-server [-d|--debug] [-s|--simple] [-l|--log] [-j|--json-log]  启动服务器
  fastjson-server stop                                               停止服务器
  fastjson-server status                                             检查服务器是否正在运行
  fastjson-server version                                            显示版本
  fastjson-server help                                               显示此帮助

标志:
  -d, --debug     启用调试模式（记录请求体与编码路径）
  -s, --simple    启用简单日志模式（每个请求一行摘要）
  -l, --log       启用日志文件记录（默认不记录日志文件）
  -j, --json-log  以 JSON 格式输出日志（默认控制台格式）

配置:
  配置文件位置（按顺序检查）:
    1. ./.env
    2. ~/.config/fastjson/fastjson.env

  可选:
    HOST                       服务器主机（默认: 0.0.0.0）
    PORT                       服务器端口（默认: 8090）
    FASTJSON_CODEC             编解码后端: goccy、sonic、jsoniter、segmentio（默认: goccy）
    COERCE_DECIMAL_TO_STRING   十进制数序列化为字符串（默认: true）
    FASTJSON_INDENT            默认缩进宽度，0 表示紧凑输出（默认: 0）
    FASTJSON_PRECISE_TIME      缩进输出保留微秒精度（默认: false，截断到毫秒）
    DEFAULT_CHARSET            请求体默认字符集（默认: utf-8）
    LOG_LEVEL                  日志级别（默认: info）

示例:
  # 启动服务器
  fastjson-server -s

  # 紧凑输出
  curl http://localhost:8090/v1/sample

  # 缩进输出
  curl -H 'Accept: application/json; indent=4' http://localhost:8090/v1/sample`)
}
