package renderer

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
)

// Respond 根据 Accept 头协商输出格式，渲染 data 并写入响应。
// data 为 nil 时响应体为空。
func (r *Renderer) Respond(c *fiber.Ctx, status int, data any, opts ...Option) error {
	mediaType := negotiate(c.Get(fiber.HeaderAccept))

	body, err := r.Render(data, mediaType, opts...)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, constants.MIMETypeJSON)
	return c.Status(status).Send(body)
}

// Config 返回接入本渲染器的 fiber 配置片段
// 调用方可在此基础上设置其余字段
func (r *Renderer) Config(decoder func(data []byte, v interface{}) error) fiber.Config {
	return fiber.Config{
		JSONEncoder: r.Marshal,
		JSONDecoder: decoder,
	}
}
