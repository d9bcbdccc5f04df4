package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecificCustomersScopeEmptyMeansAll(t *testing.T) {
	assert.True(t, SpecificCustomersScope(nil).AllCustomers)
	assert.True(t, SpecificCustomersScope([]string{}).AllCustomers)

	scoped := SpecificCustomersScope([]string{"cust-1"})
	assert.False(t, scoped.AllCustomers)
	assert.Equal(t, []string{"cust-1"}, scoped.CustomerIDs)
}

func TestCoverageScopeCovers(t *testing.T) {
	assert.True(t, AllCustomersScope().Covers("anything"))

	scoped := SpecificCustomersScope([]string{"cust-1", "cust-2"})
	assert.True(t, scoped.Covers("cust-2"))
	assert.False(t, scoped.Covers("cust-3"))
}
