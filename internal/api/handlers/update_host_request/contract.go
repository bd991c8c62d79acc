package update_host_request

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type RequestEngine interface {
	Accept(ctx context.Context, id string) (domain.HostRequest, bool)
	Reject(ctx context.Context, id string) (domain.HostRequest, bool)
	Recover(ctx context.Context, id string) (domain.HostRequest, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
