package renderer

import (
	"mime"
	"strconv"
	"strings"

	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
)

// maxIndent 缩进宽度上限
const maxIndent = 8

// mediaTypeIndent 从媒体类型中推导缩进宽度。
// indent 参数优先；text/html 使用默认宽度 2。
func mediaTypeIndent(mediaType string) (int, bool) {
	if mediaType == "" {
		return 0, false
	}

	base, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		if strings.Contains(mediaType, constants.MIMETypeHTML) {
			return constants.DefaultHTMLIndent, true
		}
		return 0, false
	}

	if raw, ok := params[constants.MediaParamIndent]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return clampIndent(n), true
		}
	}
	if base == constants.MIMETypeHTML {
		return constants.DefaultHTMLIndent, true
	}
	return 0, false
}

func clampIndent(n int) int {
	return max(min(n, maxIndent), 0)
}

// negotiate 根据 Accept 头在 application/json 与 text/html 之间选择，
// 保留 application/json 上的参数（例如 indent）。无法匹配时回退到 application/json。
func negotiate(accept string) string {
	if strings.TrimSpace(accept) == "" {
		return constants.MIMETypeJSON
	}

	best, bestQ := "", -1.0
	for _, part := range strings.Split(accept, ",") {
		base, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
			delete(params, "q")
		}
		if q <= 0 {
			continue
		}

		var candidate string
		switch base {
		case constants.MIMETypeJSON:
			candidate = mime.FormatMediaType(base, params)
		case constants.MIMETypeHTML:
			candidate = constants.MIMETypeHTML
		case "application/*", "*/*":
			candidate = constants.MIMETypeJSON
		default:
			continue
		}

		if q > bestQ {
			best, bestQ = candidate, q
		}
	}

	if best == "" {
		return constants.MIMETypeJSON
	}
	return best
}
