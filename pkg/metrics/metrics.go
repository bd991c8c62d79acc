package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены в конфиге)
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec

	requestTransitions    *prometheus.CounterVec
	reservationOperations *prometheus.CounterVec
	snapshots             *prometheus.CounterVec
	transactions          *prometheus.CounterVec
	hostBalance           prometheus.Gauge
	freeSpaces            *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в стандартном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}, []string{"db"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}, []string{"db"}),
		requestTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "host_request_transitions_total",
			Help:        "Host request lifecycle transitions",
			ConstLabels: labels,
		}, []string{"transition"}),
		reservationOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_operations_total",
			Help:        "Driver reservation operations",
			ConstLabels: labels,
		}, []string{"operation"}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sync_snapshots_total",
			Help:        "Replicated snapshots by key and direction",
			ConstLabels: labels,
		}, []string{"key", "direction"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "host_transactions_total",
			Help:        "Host ledger transactions by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		hostBalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "host_balance",
			Help:        "Current host balance",
			ConstLabels: labels,
		}),
		freeSpaces: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "listing_free_spaces",
			Help:        "Free spaces per listing",
			ConstLabels: labels,
		}, []string{"listing"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.requestTransitions,
		m.reservationOperations,
		m.snapshots,
		m.transactions,
		m.hostBalance,
		m.freeSpaces,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(db string, open, inUse int) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(db).Set(float64(open))
	m.dbInUseConns.WithLabelValues(db).Set(float64(inUse))
}

// IncRequestTransition считает переходы заявок (generated, accepted, rejected, ...)
func (m *Metrics) IncRequestTransition(transition string) {
	if m == nil {
		return
	}
	m.requestTransitions.WithLabelValues(transition).Inc()
}

// IncReservationOperation считает операции с бронированиями водителя
func (m *Metrics) IncReservationOperation(operation string) {
	if m == nil {
		return
	}
	m.reservationOperations.WithLabelValues(operation).Inc()
}

// IncSnapshot считает опубликованные и применённые снимки состояния
func (m *Metrics) IncSnapshot(key, direction string) {
	if m == nil {
		return
	}
	m.snapshots.WithLabelValues(key, direction).Inc()
}

// IncTransaction считает записи в журнале транзакций
func (m *Metrics) IncTransaction(kind string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(kind).Inc()
}

// SetHostBalance обновляет текущий баланс
func (m *Metrics) SetHostBalance(balance float64) {
	if m == nil {
		return
	}
	m.hostBalance.Set(balance)
}

// SetFreeSpaces обновляет количество свободных мест на парковке
func (m *Metrics) SetFreeSpaces(listingID string, free int) {
	if m == nil {
		return
	}
	m.freeSpaces.WithLabelValues(listingID).Set(float64(free))
}

// DeleteFreeSpaces удаляет серию удалённой парковки
func (m *Metrics) DeleteFreeSpaces(listingID string) {
	if m == nil {
		return
	}
	m.freeSpaces.DeleteLabelValues(listingID)
}
