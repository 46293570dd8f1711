package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_RequiresTerminal(t *testing.T) {
	setupTestServices(t, detailService())
	original := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = original })

	_, err := runCommand(t, "tui")

	assert.ErrorIs(t, err, errNotTerminal)
	assert.Contains(t, err.Error(), "tierdeck tiers")
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "tui", "extra")

	assert.Error(t, err)
}
