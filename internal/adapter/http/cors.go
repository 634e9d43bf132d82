package httpadapter

import (
	"context"
	"slices"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const corsAllowMethods = "GET,POST,OPTIONS"
const corsAllowHeaders = "Content-Type,X-User-ID"

// applyCORSHeaders allows any origin when allowed is empty, otherwise only
// listed origins get the allow-origin header.
func applyCORSHeaders(ctx *app.RequestContext, allowed []string) {
	origin := "*"
	if len(allowed) > 0 {
		origin = string(ctx.Request.Header.Peek("Origin"))
		if !slices.Contains(allowed, origin) {
			return
		}
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMiddleware(allowed []string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, allowed)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
