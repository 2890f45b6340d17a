package public

import "github.com/portrait-next/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：该处理器仅用于学校下单与订单门户 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
