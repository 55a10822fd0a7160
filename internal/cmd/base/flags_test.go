package base

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSet_Help(t *testing.T) {
	var (
		name    string
		enabled bool
	)
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringVar(&name, "name", "default", "The `value` to use.")
	f.BoolVar(&enabled, "enabled", false, "Turn it on.")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-name=<value>")
	assert.Contains(t, help, "(default: default)")
	assert.Contains(t, help, "-enabled\n      Turn it on.")

	require.Error(t, f.Parse([]string{"-unknown"}))
}
