package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repos resolve against Tx when present so callers can compose multi-repo
// writes inside one transaction without changing repo signatures.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the transaction handle if one is set, otherwise the fallback,
// both scoped to the request context.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	t := c.Tx
	if t == nil {
		t = fallback
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return t.WithContext(ctx)
}

// Background is a convenience for jobs that run outside any request.
func Background() Context {
	return Context{Ctx: context.Background()}
}
