package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaungsithu202/Tide-Focus/domain"
	"github.com/kaungsithu202/Tide-Focus/internal/mocks"
	"github.com/kaungsithu202/Tide-Focus/internal/services"
)

func TestPolicyAddRemove(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	svc := services.NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.AddPolicy(domain.RoleAdmin, "/api/admin/policies", "GET"))
	policies, err := svc.GetPolicies()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{domain.RoleAdmin, "/api/admin/policies", "GET"}}, policies)

	allowed, err := enforcer.Enforce(domain.RoleAdmin, "/api/admin/policies", "GET")
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, svc.RemovePolicy(domain.RoleAdmin, "/api/admin/policies", "GET"))
	policies, err = svc.GetPolicies()
	require.NoError(t, err)
	assert.Empty(t, policies)

	// every mutation persists the policy set
	assert.Equal(t, 2, enforcer.SaveCount())
}

func TestGetPoliciesPropagatesEnforcerError(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return nil, errors.New("adapter: connection refused")
	}
	svc := services.NewPolicyServiceWithEnforcer(enforcer)

	_, err := svc.GetPolicies()
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestPolicyEnforceDenies(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	svc := services.NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.AddPolicy(domain.RoleAdmin, "/api/admin/policies", "GET"))

	allowed, err := enforcer.Enforce(domain.RoleUser, "/api/admin/policies", "GET")
	require.NoError(t, err)
	assert.False(t, allowed)
}
