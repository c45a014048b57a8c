package scheduler

import (
	"sync"
	"time"
)

// ComponentStatus is the recorded health of one component.
type ComponentStatus struct {
	Healthy     bool
	LastCheck   time.Time
	LastSuccess time.Time
	LastError   error
	Message     string
}

// Health tracks component health across cycles.
type Health struct {
	mu         sync.RWMutex
	components map[string]*ComponentStatus
}

// NewHealth creates a health tracker.
func NewHealth() *Health {
	return &Health{components: make(map[string]*ComponentStatus)}
}

// SetHealthy marks a component healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.status(component)
	now := time.Now()
	status.Healthy = true
	status.LastCheck = now
	status.LastSuccess = now
	status.LastError = nil
	status.Message = message
}

// SetUnhealthy marks a component unhealthy.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.status(component)
	status.Healthy = false
	status.LastCheck = time.Now()
	status.LastError = err
	status.Message = err.Error()
}

// Status returns a copy of one component's status, or nil if unknown.
func (h *Health) Status(component string) *ComponentStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status, ok := h.components[component]
	if !ok {
		return nil
	}
	copied := *status
	return &copied
}

// AllStatuses returns copies of every component status.
func (h *Health) AllStatuses() map[string]*ComponentStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]*ComponentStatus, len(h.components))
	for name, status := range h.components {
		copied := *status
		out[name] = &copied
	}
	return out
}

// Healthy reports whether every tracked component is healthy.
func (h *Health) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, status := range h.components {
		if !status.Healthy {
			return false
		}
	}
	return true
}

// status returns the mutable entry for a component. Callers hold h.mu.
func (h *Health) status(component string) *ComponentStatus {
	if _, ok := h.components[component]; !ok {
		h.components[component] = &ComponentStatus{}
	}
	return h.components[component]
}
