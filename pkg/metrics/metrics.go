// Package metrics 基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP请求：请求数、耗时、处理中的请求数（由HTTP中间件记录）
//   - 目录维护：删除次数、删除行数、被解除关联的图书数（由应用层记录）
//   - 事件发布：发布结果、熔断器状态（由事件发布器记录）
//
// 命名规范：
//   - Counter以_total结尾
//   - Histogram以单位结尾（_seconds）
//   - 标签只使用有限取值（method、resource、mode），不要用id做标签
//
// 使用示例：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.CatalogDeletesTotal, map[string]string{
//	    "resource": "category",
//	    "mode":     "single",
//	})
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// once 防止重复注册（重复注册promauto会panic）
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 目录维护指标

	// CatalogDeletesTotal 删除操作次数
	// 标签：resource（book/category/publisher/user）、mode（single/many/all）
	CatalogDeletesTotal *prometheus.CounterVec

	// CatalogRowsDeleted 实际删除的行数
	CatalogRowsDeleted *prometheus.CounterVec

	// BooksDetachedTotal 因分类/出版社被删除而置空外键的图书数
	// 标签：reference（categoryId/publisherId）
	BooksDetachedTotal *prometheus.CounterVec

	// 事件发布指标

	// EventsPublishedTotal 目录事件发布结果
	// 标签：routing_key、result（success/failure/rejected）
	EventsPublishedTotal *prometheus.CounterVec

	// EventBreakerState 事件发布熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	EventBreakerState prometheus.Gauge
)

// InitMetrics 注册所有指标到默认Registry，可重复调用
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CatalogDeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_deletes_total",
			Help: "目录删除操作次数",
		},
		[]string{"resource", "mode"},
	)

	CatalogRowsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_deleted_total",
			Help: "目录删除的记录数",
		},
		[]string{"resource"},
	)

	BooksDetachedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_books_detached_total",
			Help: "外键被置空的图书数",
		},
		[]string{"reference"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_events_published_total",
			Help: "目录事件发布次数",
		},
		[]string{"routing_key", "result"},
	)

	EventBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_event_breaker_state",
			Help: "事件发布熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
	)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// AddCounterVec CounterVec增加指定值，value<=0时忽略
func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, value float64) {
	if value <= 0 {
		return
	}
	counter.With(labels).Add(value)
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// RecordDelete 记录一次删除操作及其影响的行数
func RecordDelete(resource, mode string, rows int64) {
	InitMetrics()
	IncCounterVec(CatalogDeletesTotal, map[string]string{"resource": resource, "mode": mode})
	AddCounterVec(CatalogRowsDeleted, map[string]string{"resource": resource}, float64(rows))
}

// RecordDetached 记录被解除关联的图书数
func RecordDetached(reference string, books int64) {
	InitMetrics()
	AddCounterVec(BooksDetachedTotal, map[string]string{"reference": reference}, float64(books))
}
