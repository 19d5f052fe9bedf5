package api

import (
	"bytes"
	"io"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockHttpClient is a mock HTTPDoer for testing
type MockHttpClient struct {
	StatusCode int
	Body       string
	Err        error

	mu       sync.Mutex
	Requests []*fhttp.Request
	Bodies   [][]byte
}

// Do records the request and returns the canned response
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.Bodies = append(m.Bodies, data)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	status := m.StatusCode
	if status == 0 {
		status = fhttp.StatusOK
	}
	return &fhttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(m.Body)),
		Header:     make(fhttp.Header),
	}, nil
}

func (m *MockHttpClient) lastRequest() *fhttp.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}

func (m *MockHttpClient) lastBody() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Bodies) == 0 {
		return nil
	}
	return m.Bodies[len(m.Bodies)-1]
}
