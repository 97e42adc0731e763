package settings

import (
	"context"
	"sync"

	"github.com/printdesk/printdesk/internal/models"
)

// ChangeFunc observes field-level edits. Subscribers get the field name that
// changed and a snapshot of the whole settings value.
type ChangeFunc func(field string, s models.InvoiceSettings)

// Editor holds the in-memory InvoiceSettings for one editing session. The
// renderer preview re-reads Current after every change notification; nothing
// here is persisted until Save is called.
type Editor struct {
	store *Store

	mu   sync.Mutex
	cur  models.InvoiceSettings
	subs []ChangeFunc
}

func NewEditor(store *Store, initial models.InvoiceSettings) *Editor {
	return &Editor{store: store, cur: initial}
}

// Current returns a snapshot of the session's settings.
func (e *Editor) Current() models.InvoiceSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur
}

// OnChange registers an observer. Registration order is notification order.
func (e *Editor) OnChange(fn ChangeFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Update applies one field-level mutation and notifies observers with the
// field name. Mutations run under the session lock; observers are called with
// a copy and may not re-enter the editor from the callback.
func (e *Editor) Update(field string, mutate func(*models.InvoiceSettings)) {
	e.mu.Lock()
	mutate(&e.cur)
	snapshot := e.cur
	subs := make([]ChangeFunc, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(field, snapshot)
	}
}

// Save persists the session's settings through the façade.
func (e *Editor) Save(ctx context.Context, name string, isDefault bool) (*models.InvoiceSettingRecord, error) {
	return e.store.Save(ctx, e.Current(), name, isDefault)
}
