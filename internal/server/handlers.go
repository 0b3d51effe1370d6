package server

import (
	"bytes"
	stderrors "errors"
	"mime"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CyrilPeng/fiber-fastjson/internal/config"
	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/converter"
	"github.com/CyrilPeng/fiber-fastjson/pkg/errors"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
	"github.com/CyrilPeng/fiber-fastjson/pkg/log"
	"github.com/CyrilPeng/fiber-fastjson/pkg/parser"
	"github.com/CyrilPeng/fiber-fastjson/pkg/renderer"
)

// sampleID 是示例数据中固定的 UUID
var sampleID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/CyrilPeng/fiber-fastjson"))

type handlers struct {
	cfg      *config.Config
	renderer *renderer.Renderer
	parser   *parser.Parser
}

// health 健康检查
func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// info 返回当前编解码配置
func (h *handlers) info(c *fiber.Ctx) error {
	return h.renderer.Respond(c, fiber.StatusOK, fiber.Map{
		"message": "Fiber FastJSON",
		"version": Version,
		"status":  "running",
		"config": fiber.Map{
			"codec":                    h.renderer.Codec(),
			"codecs":                   json.Names(),
			"coerce_decimal_to_string": h.cfg.CoerceDecimalToString,
			"indent":                   h.cfg.Indent,
			"precise_time":             h.cfg.PreciseTime,
			"default_charset":          h.cfg.DefaultCharset,
		},
		"endpoints": fiber.Map{
			"health": constants.EndpointHealth,
			"echo":   constants.EndpointEcho,
			"sample": constants.EndpointSample,
		},
	})
}

// echo 解析请求体并按协商的格式渲染回去
func (h *handlers) echo(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if !isJSON(contentType) {
		return errors.NewUnsupportedMediaTypeError(contentType)
	}

	if h.cfg.Debug {
		log.Server.Debug().Bytes("body", c.Body()).Msg("echo request")
	}

	data, err := h.parser.Parse(bytes.NewReader(c.Body()), contentType, nil)
	if err != nil {
		return err
	}
	return h.renderer.Respond(c, fiber.StatusOK, data)
}

// sample 渲染包含各类需回退转换值的示例数据
func (h *handlers) sample(c *fiber.Ctx) error {
	created := time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC)

	return h.renderer.Respond(c, fiber.StatusOK, map[string]any{
		"id":         sampleID,
		"price":      decimal.RequireFromString("19.90"),
		"created_at": created,
		"ttl":        90 * time.Second,
		"label":      converter.Lazy(func() string { return "fast " + h.renderer.Codec() }),
		"tags":       converter.ReturnList{Items: []any{"json", "fiber"}, Source: "sample"},
		"counts":     iterSeq(3),
		"errors":     []any{converter.ErrorDetail{Message: "This field is required.", Code: "required"}},
	})
}

// errorHandler 把 FastJSONError 映射到对应状态码，并用渲染器输出错误体
func (h *handlers) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	body := map[string]interface{}{
		"type":   "error",
		"detail": err.Error(),
	}

	var fiberErr *fiber.Error
	if fe, ok := errors.As(err); ok {
		status = fe.StatusCode
		body = fe.ToResponse()
		log.Server.Warn().
			Err(fe.Cause).
			Str("type", string(fe.Type)).
			Str("media_type", fe.MediaType).
			Str("path", c.Path()).
			Msg(fe.Message)
	} else if stderrors.As(err, &fiberErr) {
		status = fiberErr.Code
		body["detail"] = fiberErr.Message
	} else {
		log.Server.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	out, renderErr := h.renderer.Render(body, constants.MIMETypeJSON, renderer.WithIndent(0))
	if renderErr != nil {
		return c.Status(status).SendString(err.Error())
	}
	c.Set(fiber.HeaderContentType, constants.MIMETypeJSON)
	return c.Status(status).Send(out)
}

// isJSON 判断请求内容类型是否为 JSON，缺省视为 JSON
func isJSON(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return base == constants.MIMETypeJSON || strings.HasSuffix(base, "+json")
}

// iterSeq 产出 1..n
func iterSeq(n int) func(func(any) bool) {
	return func(yield func(any) bool) {
		for i := 1; i <= n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
