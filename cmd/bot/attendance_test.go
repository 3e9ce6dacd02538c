package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceCloseCommand_RequiresChat(t *testing.T) {
	rootCmd.SetArgs([]string{"attendance", "close"})

	err := rootCmd.Execute()

	assert.EqualError(t, err, "--chat is required")
}
