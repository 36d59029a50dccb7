package session

import (
	"sync/atomic"
)

type Metrics struct {
	datagramsReceived int64
	searchesAnswered  int64
	hostsDiscovered   int64
	decodeErrors      int64
	messagesIgnored   int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordDatagram() {
	atomic.AddInt64(&m.datagramsReceived, 1)
}

func (m *Metrics) RecordSearchAnswered() {
	atomic.AddInt64(&m.searchesAnswered, 1)
}

func (m *Metrics) RecordHostDiscovered() {
	atomic.AddInt64(&m.hostsDiscovered, 1)
}

func (m *Metrics) RecordDecodeError() {
	atomic.AddInt64(&m.decodeErrors, 1)
}

func (m *Metrics) RecordIgnored() {
	atomic.AddInt64(&m.messagesIgnored, 1)
}

func (m *Metrics) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"datagrams_received": atomic.LoadInt64(&m.datagramsReceived),
		"searches_answered":  atomic.LoadInt64(&m.searchesAnswered),
		"hosts_discovered":   atomic.LoadInt64(&m.hostsDiscovered),
		"decode_errors":      atomic.LoadInt64(&m.decodeErrors),
		"messages_ignored":   atomic.LoadInt64(&m.messagesIgnored),
	}
}
