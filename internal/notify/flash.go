package notify

import "sync"

// ToastKind selects the styling of a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient message shown once.
type Toast struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Flash collects toasts raised while handling one request. It is stored with
// the session until the next page render drains it.
type Flash struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewFlash seeds a flash with toasts carried over from the session.
func NewFlash(pending ...Toast) *Flash {
	return &Flash{toasts: append([]Toast(nil), pending...)}
}

func (f *Flash) NotifySuccess(msg string) { f.add(ToastSuccess, msg) }

func (f *Flash) NotifyError(msg string) { f.add(ToastError, msg) }

func (f *Flash) add(kind ToastKind, msg string) {
	f.mu.Lock()
	f.toasts = append(f.toasts, Toast{Kind: kind, Message: msg})
	f.mu.Unlock()
}

// Pending returns a copy of the queued toasts without clearing them.
func (f *Flash) Pending() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Toast(nil), f.toasts...)
}

// Drain returns the queued toasts and empties the flash.
func (f *Flash) Drain() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.toasts
	f.toasts = nil
	return out
}
