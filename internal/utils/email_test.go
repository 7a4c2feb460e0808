package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@x.com", NormalizeEmail("Alice@X.com"))
	assert.Equal(t, "alice@x.com", NormalizeEmail("  alice@x.com\t"))
	assert.Equal(t, "alice@x.com", NormalizeEmail(" Alice@X.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
