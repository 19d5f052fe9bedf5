package api

import (
	"context"
	"sync"

	"github.com/damyar/vetchat/internal/models"
)

// MockGenerator is a mock ContentGenerator for testing
type MockGenerator struct {
	// Mock return values
	Text string
	Err  error

	// Call recorders
	mu          sync.Mutex
	Calls       int
	LastRequest *models.GenerateRequest
}

// Ensure MockGenerator implements ContentGenerator
var _ ContentGenerator = (*MockGenerator)(nil)

func (m *MockGenerator) GenerateContent(ctx context.Context, request *models.GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastRequest = request
	return m.Text, m.Err
}

// CallCount returns the number of calls made
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
