package public

import "github.com/hashhost/billing/internal/provider"

// Handler 账单页接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建账单页处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
