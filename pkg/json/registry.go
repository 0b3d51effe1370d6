package json

import (
	"sort"
	"strings"
	"sync"
)

// 内置后端名称
const (
	BackendGoccy     = "goccy"
	BackendSonic     = "sonic"
	BackendJSONIter  = "jsoniter"
	BackendSegmentio = "segmentio"
)

// Registry 后端注册表，按名称管理编解码后端实例
type Registry struct {
	mu       sync.RWMutex
	backends map[string]API
}

// NewRegistry 创建包含全部内置后端的注册表
func NewRegistry() *Registry {
	r := &Registry{backends: make(map[string]API)}
	r.Register(goccyAPI{})
	r.Register(newSonicAPI())
	r.Register(newIterAPI())
	r.Register(segmentioAPI{})
	return r
}

// Register 注册（或替换）后端
// api 为 nil 或名称为空时 panic
func (r *Registry) Register(api API) {
	if api == nil {
		panic("json: Register backend is nil")
	}
	name := strings.ToLower(api.Name())
	if name == "" {
		panic("json: Register backend name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = api
}

// Lookup 按名称查找后端，名称不区分大小写
func (r *Registry) Lookup(name string) (API, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	api, ok := r.backends[strings.ToLower(strings.TrimSpace(name))]
	return api, ok
}

// Get 获取指定名称的后端，不存在时回退到 goccy
func (r *Registry) Get(name string) API {
	if api, ok := r.Lookup(name); ok {
		return api
	}
	return goccyAPI{}
}

// Names 返回已注册的后端名称（已排序）
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// New 根据名称返回内置后端，未知名称回退到 goccy
// 这是获取后端的推荐方式
func New(name string) API {
	return defaultRegistry.Get(name)
}

// Default 返回默认后端（goccy）
func Default() API {
	return goccyAPI{}
}

// Names 返回全部内置后端名称
func Names() []string {
	return defaultRegistry.Names()
}
