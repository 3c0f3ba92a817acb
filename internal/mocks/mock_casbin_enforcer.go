package mocks

import (
	"fmt"
	"sync"
)

// MockCasbinEnforcer implements domain.CasbinEnforcer for testing. The
// default matcher requires an exact (role, resource, action) policy.
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error

	mu       sync.Mutex
	policies [][]string
	saves    int
}

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func toStrings(params []interface{}) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, fmt.Sprint(p))
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddPolicy stores a policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rule := toStrings(params)
	for _, p := range m.policies {
		if equal(p, rule) {
			return false, nil
		}
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy deletes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rule := toStrings(params)
	for i, p := range m.policies {
		if equal(p, rule) {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Enforce checks the request against stored policies
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	req := toStrings(rvals)
	for _, p := range m.policies {
		if equal(p, req) {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all stored policy rules
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.policies))
	copy(out, m.policies)
	return out, nil
}

// SavePolicy records that a save happened
func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return nil
}

// SaveCount reports how many times SavePolicy ran
func (m *MockCasbinEnforcer) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
