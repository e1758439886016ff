package mocks

import "sync"

// FlushQueueMock implements jobs.FlushQueue and records how often each flush
// kind was requested.
type FlushQueueMock struct {
	mu          sync.Mutex
	cardFlushes int
	userFlushes int
}

func NewFlushQueueMock() *FlushQueueMock {
	return &FlushQueueMock{}
}

func (m *FlushQueueMock) EnqueueCardFlush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cardFlushes++
}

func (m *FlushQueueMock) EnqueueUserFlush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userFlushes++
}

func (m *FlushQueueMock) CardFlushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cardFlushes
}

func (m *FlushQueueMock) UserFlushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userFlushes
}
