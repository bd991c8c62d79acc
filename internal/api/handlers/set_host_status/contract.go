package set_host_status

import "context"

type RequestEngine interface {
	SetOnline(ctx context.Context, online bool) bool
	Online() bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
