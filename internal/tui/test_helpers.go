package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertShowsTitle(t *testing.T, view string) {
	t.Helper()
	assert.Contains(t, view, "WHEELSPIN", "View should contain title")
}

func AssertShowsWinner(t *testing.T, view, label string) {
	t.Helper()
	assert.Contains(t, view, "★ "+label, "View should show winner banner for: %s", label)
}

func AssertNoWinner(t *testing.T, view string) {
	t.Helper()
	assert.NotContains(t, view, "★ ", "View should not show a winner banner")
}

func AssertShowsNotice(t *testing.T, view, text string) {
	t.Helper()
	assert.Contains(t, view, "NOTICE", "View should show a notice box")
	assert.Contains(t, view, text, "Notice should mention: %s", text)
}

// AssertTargetMarked checks that the ring marks label as the target.
func AssertTargetMarked(t *testing.T, view, label string) {
	t.Helper()
	assert.Contains(t, view, label+targetMarker, "View should mark %s as the target", label)
}
