package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain_Version(t *testing.T) {
	assert.Equal(t, 0, Main([]string{"namsor", "-v"}))
	assert.Contains(t, Commands, "predict")
	assert.Contains(t, Commands, "credentials test")
}
