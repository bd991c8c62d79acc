package get_host_requests

import "github.com/m04kA/SMC-ParkingService/internal/domain"

type RequestEngine interface {
	Online() bool
	Requests() []domain.HostRequest
	History() []domain.HostRequest
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
