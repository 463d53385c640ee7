package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashCollectsAndDrains(t *testing.T) {
	f := NewFlash(Toast{Kind: ToastSuccess, Message: "carried"})
	f.NotifyError("Something went wrong. Please try again.")

	assert.Len(t, f.Pending(), 2)
	assert.Equal(t, []Toast{
		{Kind: ToastSuccess, Message: "carried"},
		{Kind: ToastError, Message: "Something went wrong. Please try again."},
	}, f.Drain())
	assert.Empty(t, f.Drain())
}

func TestNewFlashCopiesPending(t *testing.T) {
	pending := []Toast{{Kind: ToastSuccess, Message: "a"}}
	f := NewFlash(pending...)
	f.NotifySuccess("b")

	assert.Len(t, pending, 1)
	assert.Len(t, f.Pending(), 2)
}
