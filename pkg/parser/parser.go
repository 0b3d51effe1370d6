// Package parser 把请求体解析为原生值树，并提供 fiber JSONDecoder 适配。
package parser

import (
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/errors"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
	"github.com/CyrilPeng/fiber-fastjson/pkg/log"
)

var errInvalidUTF8 = stderrors.New("invalid utf-8 in request body")

// Settings 保存解析器配置
type Settings struct {
	// Codec 快速后端名称，见 json.Names()
	Codec string
	// DefaultCharset 请求未声明字符集时使用，默认 utf-8
	DefaultCharset string
}

// Context 是单次解析的附加信息
type Context struct {
	// Encoding 请求体字符集，为空时依次使用媒体类型中的 charset 参数和默认字符集
	Encoding string
}

// Parser 解析 JSON 请求体，构造后不可变，可并发使用
type Parser struct {
	api     json.API
	charset string
}

// New 根据配置创建解析器
func New(settings Settings) *Parser {
	charset := settings.DefaultCharset
	if charset == "" {
		charset = constants.DefaultCharset
	}
	return &Parser{
		api:     json.New(settings.Codec),
		charset: charset,
	}
}

// Default 返回使用 goccy 后端与 utf-8 的解析器
func Default() *Parser {
	return New(Settings{})
}

// MediaType 返回解析器处理的媒体类型
func (p *Parser) MediaType() string {
	return constants.MIMETypeJSON
}

// Parse 读取 r 的全部内容，按字符集解码后反序列化。
// 数字解析为 float64，对象为 map[string]any，数组为 []any。
func (p *Parser) Parse(r io.Reader, mediaType string, ctx *Context) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewParseError(err).WithMediaType(mediaType)
	}

	text, err := p.decode(raw, p.encodingFor(mediaType, ctx))
	if err != nil {
		return nil, errors.NewParseError(err).WithMediaType(mediaType)
	}

	var out any
	if err := p.api.Unmarshal(text, &out); err != nil {
		log.Codec.Debug().Err(err).Str("media_type", mediaType).Msg("parse failed")
		return nil, errors.NewParseError(err).WithMediaType(mediaType)
	}
	return out, nil
}

// Unmarshal 具有 fiber JSONDecoder 的签名，可直接用于 fiber.Config
func (p *Parser) Unmarshal(data []byte, v interface{}) error {
	if !utf8.Valid(data) {
		return errors.NewParseError(errInvalidUTF8).WithMediaType(constants.MIMETypeJSON)
	}
	if err := p.api.Unmarshal(data, v); err != nil {
		return errors.NewParseError(err).WithMediaType(constants.MIMETypeJSON)
	}
	return nil
}

func (p *Parser) encodingFor(mediaType string, ctx *Context) string {
	if ctx != nil && ctx.Encoding != "" {
		return ctx.Encoding
	}
	if mediaType != "" {
		if _, params, err := mime.ParseMediaType(mediaType); err == nil {
			if charset := params[constants.MediaParamCharset]; charset != "" {
				return charset
			}
		}
	}
	return p.charset
}

// decode 将 raw 从 charset 转为 UTF-8
// 对 utf-8 只做校验，不替换非法字节
func (p *Parser) decode(raw []byte, charset string) ([]byte, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(charset))
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", charset)
	}

	if name, _ := htmlindex.Name(enc); name == constants.DefaultCharset {
		if !utf8.Valid(raw) {
			return nil, errInvalidUTF8
		}
		return raw, nil
	}

	text, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", charset, err)
	}
	return text, nil
}
