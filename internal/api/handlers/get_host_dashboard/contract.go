package get_host_dashboard

import getHostDashboard "github.com/m04kA/SMC-ParkingService/internal/usecase/get_host_dashboard"

type GetHostDashboardUseCase interface {
	Execute(req *getHostDashboard.Request) *getHostDashboard.Response
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
