package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer(t *testing.T) {
	var order []string
	named := func(name string) Func {
		return func(ctx huma.Context, next func(huma.Context)) {
			order = append(order, name)
			next(ctx)
		}
	}

	c := NewContainer(named("logger"))

	protected := c.Add(named("auth")).GetAllAndClear()
	public := c.GetAllAndClear()

	assert.Len(t, protected, 2)
	assert.Len(t, public, 1)

	protected.Handler(func(huma.Context) { order = append(order, "handler") })(nil)
	assert.Equal(t, []string{"logger", "auth", "handler"}, order)
}
