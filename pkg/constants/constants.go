// Package constants 定义项目中使用的所有常量。
// 将魔法字符串集中管理，提高代码可维护性和一致性。
package constants

// MIME 类型值
const (
	// MIMETypeJSON JSON 内容类型（快速路径）
	MIMETypeJSON = "application/json"
	// MIMETypeHTML HTML 内容类型（可浏览 API，触发缩进输出）
	MIMETypeHTML = "text/html"
)

// 媒体类型参数
const (
	// MediaParamIndent Accept 头中的缩进参数，例如 application/json; indent=4
	MediaParamIndent = "indent"
	// MediaParamCharset 字符集参数
	MediaParamCharset = "charset"
)

// 默认值
const (
	// DefaultCharset 默认请求体字符集
	DefaultCharset = "utf-8"
	// DefaultHTMLIndent text/html 请求时的缩进宽度
	DefaultHTMLIndent = 2
	// MaxDefaultDepth 回退函数的最大嵌套调用次数
	MaxDefaultDepth = 254
)

// 环境变量名称
const (
	// EnvHost 服务器主机
	EnvHost = "HOST"
	// EnvPort 服务器端口
	EnvPort = "PORT"
	// EnvCodec 快速编解码后端名称
	EnvCodec = "FASTJSON_CODEC"
	// EnvCoerceDecimalToString 十进制数是否序列化为字符串
	EnvCoerceDecimalToString = "COERCE_DECIMAL_TO_STRING"
	// EnvIndent 默认缩进宽度（0 表示不缩进）
	EnvIndent = "FASTJSON_INDENT"
	// EnvPreciseTime 兼容编码器是否保留完整的亚秒精度
	EnvPreciseTime = "FASTJSON_PRECISE_TIME"
	// EnvDefaultCharset 请求体默认字符集
	EnvDefaultCharset = "DEFAULT_CHARSET"
	// EnvLogLevel 日志级别
	EnvLogLevel = "LOG_LEVEL"
)

// API 端点路径
const (
	// EndpointHealth 健康检查端点
	EndpointHealth = "/health"
	// EndpointEcho 解析请求体并原样渲染
	EndpointEcho = "/v1/echo"
	// EndpointSample 渲染包含各类需回退转换值的示例数据
	EndpointSample = "/v1/sample"
)
