package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/cache"
	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/notify"
)

const (
	transactionsKey = "gastos_transactions"
	settingsKey     = "gastos_settings"
)

// Store owns the two durable collections. Reads go through a per-collection
// cache slot that every successful write replaces; mutations follow the
// read-all, mutate, save-all pattern, which keeps every write immediately
// durable and immediately visible to subsequent reads.
//
// Single-threaded UI-style usage is assumed; the internal mutex only keeps
// the read-modify-write helpers self-consistent, it is not a transactional
// boundary across calls.
type Store struct {
	kv       KV
	notifier *notify.Notifier
	log      *log.Logger

	mu       sync.Mutex
	txCache  cache.Slot[[]core.Transaction]
	setCache cache.Slot[core.Settings]
}

func New(kv KV, notifier *notify.Notifier, logger *log.Logger) *Store {
	return &Store{kv: kv, notifier: notifier, log: logger}
}

// Transactions returns the stored transactions in insertion order. Read
// failures and corruption degrade to an empty list; they are recovered
// here, never propagated.
func (s *Store) Transactions(ctx context.Context) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTransactions(s.loadTransactionsLocked(ctx))
}

func (s *Store) loadTransactionsLocked(ctx context.Context) []core.Transaction {
	if cached, ok := s.txCache.Get(); ok {
		return cached
	}

	list := []core.Transaction{}
	raw, ok, err := s.kv.Get(ctx, transactionsKey)
	switch {
	case err != nil:
		s.log.WarnContext(ctx, "loading transactions failed, starting empty", "error", err)
	case ok:
		list = ValidateTransactions(unwrapEnvelope(raw))
	}
	s.txCache.Set(list)
	return list
}

// SaveTransactions atomically replaces the whole collection. On success the
// cache is refreshed and one save event is published; on failure the cache
// keeps its previous content.
func (s *Store) SaveTransactions(ctx context.Context, list []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveTransactionsLocked(ctx, list)
}

func (s *Store) saveTransactionsLocked(ctx context.Context, list []core.Transaction) error {
	payload, err := wrapEnvelope(list)
	if err != nil {
		return &PersistenceError{Op: "encode transactions", Err: err}
	}
	if err := s.kv.Set(ctx, transactionsKey, payload); err != nil {
		return &PersistenceError{Op: "save transactions", Err: err}
	}

	s.txCache.Set(cloneTransactions(list))
	s.log.InfoContext(ctx, "transactions saved", "count", len(list))
	s.notifier.Publish(notify.KindTransactions)
	return nil
}

func (s *Store) AddTransaction(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := cloneTransactions(s.loadTransactionsLocked(ctx))
	list = append(list, t)
	return s.saveTransactionsLocked(ctx, list)
}

// TransactionPatch holds optional field updates for UpdateTransaction; nil
// fields keep their stored value.
type TransactionPatch struct {
	Description  *string
	Amount       *decimal.Decimal
	Category     *string
	Date         *string
	IsCreditCard *bool
}

// UpdateTransaction applies the patch to the transaction with the given id.
// An unknown id is a silent no-op: nothing is written and no event fires.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := cloneTransactions(s.loadTransactionsLocked(ctx))
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if patch.Description != nil {
			list[i].Description = *patch.Description
		}
		if patch.Amount != nil {
			list[i].Amount = *patch.Amount
		}
		if patch.Category != nil {
			list[i].Category = *patch.Category
		}
		if patch.Date != nil {
			list[i].Date = *patch.Date
		}
		if patch.IsCreditCard != nil {
			list[i].IsCreditCard = *patch.IsCreditCard
		}
		return s.saveTransactionsLocked(ctx, list)
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.loadTransactionsLocked(ctx)
	filtered := make([]core.Transaction, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	return s.saveTransactionsLocked(ctx, filtered)
}

// Settings returns the stored settings with every missing or invalid field
// backfilled with its default. Like Transactions, read failures degrade to
// defaults rather than erroring.
func (s *Store) Settings(ctx context.Context) core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSettings(s.loadSettingsLocked(ctx))
}

func (s *Store) loadSettingsLocked(ctx context.Context) core.Settings {
	if cached, ok := s.setCache.Get(); ok {
		return cached
	}

	settings := core.DefaultSettings()
	raw, ok, err := s.kv.Get(ctx, settingsKey)
	switch {
	case err != nil:
		s.log.WarnContext(ctx, "loading settings failed, using defaults", "error", err)
	case ok:
		settings = ValidateSettings(unwrapEnvelope(raw))
	}
	s.setCache.Set(settings)
	return settings
}

func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSettingsLocked(ctx, settings)
}

func (s *Store) saveSettingsLocked(ctx context.Context, settings core.Settings) error {
	payload, err := wrapEnvelope(settings)
	if err != nil {
		return &PersistenceError{Op: "encode settings", Err: err}
	}
	if err := s.kv.Set(ctx, settingsKey, payload); err != nil {
		return &PersistenceError{Op: "save settings", Err: err}
	}

	s.setCache.Set(cloneSettings(settings))
	s.log.InfoContext(ctx, "settings saved", "categories", len(settings.Categories))
	s.notifier.Publish(notify.KindSettings)
	return nil
}

func (s *Store) Categories(ctx context.Context) []core.Category {
	return s.Settings(ctx).Categories
}

func (s *Store) AddCategory(ctx context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := cloneSettings(s.loadSettingsLocked(ctx))
	settings.Categories = append(settings.Categories, c)
	return s.saveSettingsLocked(ctx, settings)
}

// CategoryPatch holds optional field updates for UpdateCategory.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// UpdateCategory renames or recolors a category by id. Transactions keep
// referencing categories by name, so a rename does not cascade to them.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := cloneSettings(s.loadSettingsLocked(ctx))
	for i := range settings.Categories {
		if settings.Categories[i].ID != id {
			continue
		}
		if patch.Name != nil {
			settings.Categories[i].Name = *patch.Name
		}
		if patch.Color != nil {
			settings.Categories[i].Color = *patch.Color
		}
		return s.saveSettingsLocked(ctx, settings)
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := cloneSettings(s.loadSettingsLocked(ctx))
	filtered := make([]core.Category, 0, len(settings.Categories))
	for _, c := range settings.Categories {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	settings.Categories = filtered
	return s.saveSettingsLocked(ctx, settings)
}

// exportDocument is the backup file format.
type exportDocument struct {
	Version      string             `json:"version"`
	Timestamp    time.Time          `json:"timestamp"`
	Transactions []core.Transaction `json:"transactions"`
	Settings     core.Settings      `json:"settings"`
}

// ExportData serializes both collections into a single snapshot document.
func (s *Store) ExportData(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := exportDocument{
		Version:      SchemaVersion,
		Timestamp:    time.Now(),
		Transactions: s.loadTransactionsLocked(ctx),
		Settings:     s.loadSettingsLocked(ctx),
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &PersistenceError{Op: "export data", Err: err}
	}
	return out, nil
}

// ImportData replaces both collections with the snapshot's content. Only
// the top-level shape is checked here; individual records pass through the
// validation layer on the next read. A shape failure returns
// ErrInvalidImport and leaves the stored data untouched.
func (s *Store) ImportData(ctx context.Context, data []byte) error {
	var doc struct {
		Transactions json.RawMessage `json:"transactions"`
		Settings     json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ErrInvalidImport
	}

	var txs []json.RawMessage
	if doc.Transactions == nil || json.Unmarshal(doc.Transactions, &txs) != nil {
		return ErrInvalidImport
	}
	var obj map[string]json.RawMessage
	if doc.Settings == nil || json.Unmarshal(doc.Settings, &obj) != nil {
		return ErrInvalidImport
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txPayload, err := wrapEnvelope(doc.Transactions)
	if err != nil {
		return &PersistenceError{Op: "encode imported transactions", Err: err}
	}
	if err := s.kv.Set(ctx, transactionsKey, txPayload); err != nil {
		return &PersistenceError{Op: "import transactions", Err: err}
	}
	s.txCache.Invalidate()
	s.notifier.Publish(notify.KindTransactions)

	setPayload, err := wrapEnvelope(doc.Settings)
	if err != nil {
		return &PersistenceError{Op: "encode imported settings", Err: err}
	}
	if err := s.kv.Set(ctx, settingsKey, setPayload); err != nil {
		return &PersistenceError{Op: "import settings", Err: err}
	}
	s.setCache.Invalidate()
	s.notifier.Publish(notify.KindSettings)

	s.log.InfoContext(ctx, "data imported", "transactions", len(txs))
	return nil
}

// ClearAllData deletes both backing-store entries and drops the caches.
func (s *Store) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, transactionsKey); err != nil {
		return &PersistenceError{Op: "clear transactions", Err: err}
	}
	if err := s.kv.Delete(ctx, settingsKey); err != nil {
		return &PersistenceError{Op: "clear settings", Err: err}
	}
	s.txCache.Invalidate()
	s.setCache.Invalidate()
	s.log.InfoContext(ctx, "all data cleared")
	return nil
}

// HasData reports whether anything beyond the factory state is stored.
func (s *Store) HasData(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.loadTransactionsLocked(ctx)) > 0 {
		return true
	}
	settings := s.loadSettingsLocked(ctx)
	return settings.HasSalary() || len(settings.Categories) > core.DefaultCategoryCount
}

// Stats summarizes the stored data for display.
type Stats struct {
	Transactions int
	Categories   int
	LastUpdate   *time.Time
}

func (s *Store) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.loadTransactionsLocked(ctx)
	settings := s.loadSettingsLocked(ctx)

	stats := Stats{
		Transactions: len(list),
		Categories:   len(settings.Categories),
	}
	for _, t := range list {
		if stats.LastUpdate == nil || t.CreatedAt.After(*stats.LastUpdate) {
			created := t.CreatedAt
			stats.LastUpdate = &created
		}
	}
	return stats
}

func cloneTransactions(list []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(list))
	copy(out, list)
	return out
}

func cloneSettings(s core.Settings) core.Settings {
	out := s
	out.Categories = append([]core.Category(nil), s.Categories...)
	return out
}
