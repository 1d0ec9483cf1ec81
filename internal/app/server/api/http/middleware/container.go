package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Func — сигнатура мидлвари huma
type Func = func(ctx huma.Context, next func(huma.Context))

// Container собирает цепочки мидлварей для групп операций.
// Общие мидлвари идут первыми в каждой цепочке.
type Container struct {
	common  huma.Middlewares
	current huma.Middlewares
}

// NewContainer создает контейнер с общими мидлварями
func NewContainer(common ...Func) *Container {
	return &Container{common: append(huma.Middlewares{}, common...)}
}

// Add добавляет мидлвари в текущую цепочку
func (c *Container) Add(mws ...Func) *Container {
	c.current = append(c.current, mws...)
	return c
}

// GetAllAndClear возвращает общие и текущие мидлвари и очищает текущую цепочку
func (c *Container) GetAllAndClear() huma.Middlewares {
	result := make(huma.Middlewares, 0, len(c.common)+len(c.current))
	result = append(result, c.common...)
	result = append(result, c.current...)
	c.current = nil
	return result
}
