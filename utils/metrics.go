package utils

import (
	"sync"
	"time"
)

// Операции, которые учитываются в метриках
const (
	OpCardCreate        = "card_create"
	OpCardActivate      = "card_activate"
	OpCardDelete        = "card_delete"
	OpUserRegister      = "user_register"
	OpUserActivate      = "user_activate"
	OpApplicationSubmit = "application_submit"
	OpApplicationDelete = "application_delete"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики предметной области
	Operations      map[string]int64
	LastOperation   time.Time
	ErrorCount      int64
	LastErrorTime   time.Time
	ErrorOperations map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// NewMetrics создает пустой набор метрик
func NewMetrics() *Metrics {
	return &Metrics{
		Operations:      make(map[string]int64),
		ErrorOperations: make(map[string]int64),
	}
}

// GetMetrics возвращает экземпляр метрик процесса
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = NewMetrics()
	})
	return metrics
}

// RecordRequest записывает метрики запроса. failed означает ответ 5xx
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordOperation записывает результат бизнес-операции
func (m *Metrics) RecordOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastOperation = time.Now()
	if err != nil {
		m.recordErrorLocked(operation)
		return
	}
	m.Operations[operation]++
}

func (m *Metrics) recordErrorLocked(operation string) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()
	m.ErrorOperations[operation]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	operations := make(map[string]int64, len(m.Operations))
	for k, v := range m.Operations {
		operations[k] = v
	}
	errorOperations := make(map[string]int64, len(m.ErrorOperations))
	for k, v := range m.ErrorOperations {
		errorOperations[k] = v
	}

	return map[string]interface{}{
		"total_requests":   m.TotalRequests,
		"failed_requests":  m.FailedRequests,
		"average_latency":  m.AverageLatency.String(),
		"operations":       operations,
		"error_count":      m.ErrorCount,
		"error_operations": errorOperations,
		"last_error_time":  m.LastErrorTime,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.ErrorCount = 0
	m.Operations = make(map[string]int64)
	m.ErrorOperations = make(map[string]int64)
}
