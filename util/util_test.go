package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInSlice(t *testing.T) {
	assert.True(t, InSlice("users", []string{"users", "orders"}))
	assert.False(t, InSlice("missing", []string{"users", "orders"}))
	assert.False(t, InSlice("users", nil))
}

func TestEncloseStringArray(t *testing.T) {
	assert.Equal(t, []string{"`id`", "`name`"}, EncloseStringArray([]string{"id", "name"}, "`"))
	assert.Equal(t, []string{`"id"`}, EncloseStringArray([]string{"id"}, `"`))
}
