// Package config 处理从环境变量和 .env 文件加载配置。
//
// 它支持多个配置文件位置（./.env、~/.config/fastjson/fastjson.env），
// 并把编解码相关的设置转换为 renderer.Settings 与 parser.Settings。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
	"github.com/CyrilPeng/fiber-fastjson/pkg/parser"
	"github.com/CyrilPeng/fiber-fastjson/pkg/renderer"
)

// Config 保存所有服务配置
type Config struct {
	// 服务器设置
	Host string
	Port string

	// 编解码设置
	Codec                 string
	CoerceDecimalToString bool
	Indent                int
	PreciseTime           bool
	DefaultCharset        string

	// 日志级别（debug、info、warn、error）
	LogLevel string

	// 调试日志
	Debug bool

	// 简单日志 - 每个请求一行摘要
	SimpleLog bool

	// 实际加载的配置文件，未加载任何文件时为空
	Source string
}

// DefaultLocations 返回按优先级排列的配置文件位置
func DefaultLocations() []string {
	return []string{
		".env",
		filepath.Join(os.Getenv("HOME"), ".config", "fastjson", "fastjson.env"),
	}
}

// Load 从环境变量读取配置
// 尝试多个位置：./.env、~/.config/fastjson/fastjson.env
func Load() (*Config, error) {
	return LoadFrom(DefaultLocations()...)
}

// LoadFrom 从第一个存在的配置文件加载环境变量，然后构建配置
func LoadFrom(locations ...string) (*Config, error) {
	var source string
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			// 文件存在，加载它（overload 以覆盖现有环境变量）
			if err := godotenv.Overload(loc); err == nil {
				source = loc
				break
			}
		}
	}

	indent, err := getEnvAsIntOrDefault(constants.EnvIndent, 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host: getEnvOrDefault(constants.EnvHost, "0.0.0.0"),
		Port: getEnvOrDefault(constants.EnvPort, "8090"),

		Codec:                 strings.ToLower(getEnvOrDefault(constants.EnvCodec, json.BackendGoccy)),
		CoerceDecimalToString: getEnvAsBoolOrDefault(constants.EnvCoerceDecimalToString, true),
		Indent:                indent,
		PreciseTime:           getEnvAsBoolOrDefault(constants.EnvPreciseTime, false),
		DefaultCharset:        getEnvOrDefault(constants.EnvDefaultCharset, constants.DefaultCharset),

		LogLevel: getEnvOrDefault(constants.EnvLogLevel, "info"),
		Source:   source,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDebug 加载配置并设置调试模式
func LoadWithDebug(debug bool) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	cfg.Debug = debug
	return cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if !slices.Contains(json.Names(), c.Codec) {
		return fmt.Errorf("%s 无效: %q（可选: %s）",
			constants.EnvCodec, c.Codec, strings.Join(json.Names(), ", "))
	}
	if c.Indent < 0 {
		return fmt.Errorf("%s 不能为负数: %d", constants.EnvIndent, c.Indent)
	}
	if _, err := htmlindex.Get(c.DefaultCharset); err != nil {
		return fmt.Errorf("%s 无效: %q", constants.EnvDefaultCharset, c.DefaultCharset)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("%s 无效: %q", constants.EnvPort, c.Port)
	}
	return nil
}

// Addr 返回监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Settings 返回渲染器配置
func (c *Config) Settings() renderer.Settings {
	return renderer.Settings{
		Codec:                 c.Codec,
		CoerceDecimalToString: c.CoerceDecimalToString,
		Indent:                c.Indent,
		PreciseTime:           c.PreciseTime,
	}
}

// ParserSettings 返回解析器配置
func (c *Config) ParserSettings() parser.Settings {
	return parser.Settings{
		Codec:          c.Codec,
		DefaultCharset: c.DefaultCharset,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		value = strings.ToLower(value)
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s 必须是整数: %q", key, value)
	}
	return n, nil
}
