// Package services holds the reconciliation logic that keeps derived
// records consistent with the configuration, most importantly the monthly
// salary transaction.
package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/storage"
)

// Salary keeps the recurring salary transaction in step with the settings.
// SyncWithSettings is an idempotent reconciliation loop: safe to run on
// every app entry and on every settings save without creating duplicates
// or drifting dates.
type Salary struct {
	store *storage.Store
	log   *log.Logger
	now   func() time.Time
}

func NewSalary(store *storage.Store, logger *log.Logger) *Salary {
	return &Salary{store: store, log: logger, now: time.Now}
}

// IsPresent reports whether any salary-tagged transaction falls in the
// given month.
func (s *Salary) IsPresent(ctx context.Context, month string) bool {
	return s.findMonthSalary(ctx, month) != nil
}

func (s *Salary) findMonthSalary(ctx context.Context, month string) *core.Transaction {
	for _, t := range s.store.Transactions(ctx) {
		if t.IsSalary() && t.InMonth(month) {
			found := t
			return &found
		}
	}
	return nil
}

// Deduplicate removes accidental salary duplicates across all months,
// keeping the most recently created one per month. It must run before any
// presence check: a stale duplicate would otherwise mask the row that
// should be updated. Returns how many rows were removed.
func (s *Salary) Deduplicate(ctx context.Context) (int, error) {
	byMonth := make(map[string][]core.Transaction)
	for _, t := range s.store.Transactions(ctx) {
		if t.IsSalary() {
			key := t.MonthKey()
			byMonth[key] = append(byMonth[key], t)
		}
	}

	removed := 0
	for month, rows := range byMonth {
		if len(rows) < 2 {
			continue
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		})
		for _, stale := range rows[1:] {
			if err := s.store.DeleteTransaction(ctx, stale.ID); err != nil {
				return removed, err
			}
			removed++
		}
		s.log.InfoContext(ctx, "removed duplicate salaries", "month", month, "removed", len(rows)-1)
	}
	return removed, nil
}

// EnsureCategory creates the "Salário" category when it is missing.
func (s *Salary) EnsureCategory(ctx context.Context) error {
	for _, c := range s.store.Categories(ctx) {
		if c.Name == core.SalaryCategoryName {
			return nil
		}
	}
	return s.store.AddCategory(ctx, core.Category{
		ID:    uuid.NewString(),
		Name:  core.SalaryCategoryName,
		Color: core.SalaryCategoryColor,
	})
}

// SyncWithSettings reconciles the current month's salary transaction with
// the settings and reports whether anything was mutated.
//
// No salary configured: every salary row of the current month is removed.
// Otherwise: duplicates are cleaned first, then the existing row is
// patched in place only when its amount or date differ from the
// settings-derived values, or a fresh row is created when none exists.
func (s *Salary) SyncWithSettings(ctx context.Context) (bool, error) {
	settings := s.store.Settings(ctx)
	month := core.CurrentMonthKey(s.now())

	if !settings.HasSalary() {
		removed, err := s.removeMonthSalaries(ctx, month)
		if err != nil {
			return false, err
		}
		if removed > 0 {
			s.log.InfoContext(ctx, "salary unconfigured, removed current month salaries", "removed", removed)
		}
		return false, nil
	}

	if _, err := s.Deduplicate(ctx); err != nil {
		return false, err
	}

	now := s.now()
	wantDate := core.SalaryDate(settings.SalaryDay, now.Year(), int(now.Month()))

	if existing := s.findMonthSalary(ctx, month); existing != nil {
		if existing.Amount.Equal(settings.Salary) && existing.Date == wantDate {
			return false, nil
		}
		patch := storage.TransactionPatch{Amount: &settings.Salary, Date: &wantDate}
		if err := s.store.UpdateTransaction(ctx, existing.ID, patch); err != nil {
			return false, err
		}
		s.log.InfoContext(ctx, "salary updated", "date", wantDate, "amount", settings.Salary)
		return true, nil
	}

	if err := s.EnsureCategory(ctx); err != nil {
		return false, err
	}
	t := core.Transaction{
		ID:           uuid.NewString(),
		Description:  core.SalaryCategoryName,
		Amount:       settings.Salary,
		Category:     core.SalaryCategoryName,
		Date:         wantDate,
		IsCreditCard: false,
		CreatedAt:    s.now(),
	}
	if err := s.store.AddTransaction(ctx, t); err != nil {
		return false, err
	}
	s.log.InfoContext(ctx, "salary created", "date", wantDate, "amount", settings.Salary)
	return true, nil
}

func (s *Salary) removeMonthSalaries(ctx context.Context, month string) (int, error) {
	removed := 0
	for _, t := range s.store.Transactions(ctx) {
		if t.IsSalary() && t.InMonth(month) {
			if err := s.store.DeleteTransaction(ctx, t.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// NextSalary describes the next expected salary occurrence.
type NextSalary struct {
	Date      time.Time
	DaysUntil int
}

// NextInfo returns when the next salary lands, or nil when no salary is
// configured.
func (s *Salary) NextInfo(ctx context.Context) *NextSalary {
	settings := s.store.Settings(ctx)
	if !settings.HasSalary() || settings.SalaryDay < 1 {
		return nil
	}

	now := s.now()
	next := salaryTimeIn(now.Year(), int(now.Month()), settings.SalaryDay)
	if !next.After(now) {
		next = salaryTimeIn(now.Year(), int(now.Month())+1, settings.SalaryDay)
	}

	daysUntil := int(math.Ceil(next.Sub(now).Hours() / 24))
	return &NextSalary{Date: next, DaysUntil: daysUntil}
}

func salaryTimeIn(year, month, day int) time.Time {
	if last := core.LastDay(year, month); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// NormalizeLegacyDates repairs data written before salary dates were
// centralized: it derives the intended pay day from the most recent salary
// transaction, aligns the configured salaryDay with it, and rewrites every
// salary row whose date disagrees (clamped per month). Reports whether
// anything changed.
func (s *Salary) NormalizeLegacyDates(ctx context.Context) (bool, error) {
	transactions := s.store.Transactions(ctx)
	settings := s.store.Settings(ctx)

	var latest *core.Transaction
	for i, t := range transactions {
		if !t.IsSalary() {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			latest = &transactions[i]
		}
	}
	if latest == nil {
		return false, nil
	}

	day := core.DayOf(latest.Date)
	if day == 0 {
		return false, nil
	}

	changed := false
	if settings.SalaryDay != day {
		settings.SalaryDay = day
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return false, err
		}
		s.log.InfoContext(ctx, "salary day aligned with latest transaction", "day", day)
		changed = true
	}

	rewritten := false
	for i, t := range transactions {
		if !t.IsSalary() {
			continue
		}
		year, month, err := core.ParseMonthKey(t.MonthKey())
		if err != nil {
			continue
		}
		want := core.SalaryDate(day, year, month)
		if t.Date != want {
			transactions[i].Date = want
			rewritten = true
		}
	}
	if rewritten {
		if err := s.store.SaveTransactions(ctx, transactions); err != nil {
			return changed, err
		}
		s.log.InfoContext(ctx, "salary dates normalized", "day", day)
		changed = true
	}
	return changed, nil
}
