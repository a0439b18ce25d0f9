package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGuard(t *testing.T) {
	// Deduplication needs both the policy flag and an address; either one
	// alone leaves the guard off.
	assert.Nil(t, BuildGuard(false, "localhost:6379", ""))
	assert.Nil(t, BuildGuard(true, "", ""))
	assert.Nil(t, BuildGuard(false, "", ""))

	guard := BuildGuard(true, "localhost:6379", "secret")
	assert.NotNil(t, guard)
	assert.NoError(t, guard.Close())
}
