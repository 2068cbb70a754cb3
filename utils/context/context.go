package context

import (
	"context"

	"github.com/yogapit/eshop/constant"
)

func GetAdminID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.AdminIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, constant.ClientIPKey, ip)
}

func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(constant.ClientIPKey).(string)
	if ip == "" {
		return "unknown"
	}
	return ip
}
