package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InsertTender stores a new tender record and returns the stored row.
func (s *Store) InsertTender(ctx context.Context, tender Tender) (Tender, error) {
	if strings.TrimSpace(tender.ID) == "" {
		tender.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tender.CreatedAt.IsZero() {
		tender.CreatedAt = now
	}
	tender.UpdatedAt = now
	if strings.TrimSpace(tender.Status) == "" {
		tender.Status = "draft"
	}
	const query = `INSERT INTO tenders
                (id, title, budget, deadline, status, value,
                 technical_score, commercial_score, compliance_score, risk_score,
                 auto_title, auto_budget, auto_location, auto_deadline, auto_insights,
                 created_at, updated_at)
                VALUES (:id, :title, :budget, :deadline, :status, :value,
                 :technical_score, :commercial_score, :compliance_score, :risk_score,
                 :auto_title, :auto_budget, :auto_location, :auto_deadline, :auto_insights,
                 :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, query, tender); err != nil {
		return Tender{}, fmt.Errorf("insert tender: %w", err)
	}
	return tender, nil
}

// FindTender fetches a single tender by id. A missing tender returns
// ErrNotFound rather than a nil record.
func (s *Store) FindTender(ctx context.Context, id string) (Tender, error) {
	var tender Tender
	err := s.db.GetContext(ctx, &tender, `SELECT * FROM tenders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Tender{}, ErrNotFound
	}
	if err != nil {
		return Tender{}, fmt.Errorf("find tender: %w", err)
	}
	return tender, nil
}

// ListTenders returns all tenders, most recently updated first.
func (s *Store) ListTenders(ctx context.Context) ([]Tender, error) {
	var tenders []Tender
	if err := s.db.SelectContext(ctx, &tenders, `SELECT * FROM tenders ORDER BY updated_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	return tenders, nil
}

// UpdateTender applies the non-nil patch fields to a tender and bumps its
// updated_at timestamp. Derived fields tolerate last-writer-wins.
func (s *Store) UpdateTender(ctx context.Context, id string, patch TenderPatch) error {
	var (
		sets []string
		args []interface{}
	)
	if patch.AutoTitle != nil {
		sets = append(sets, "auto_title = ?")
		args = append(args, *patch.AutoTitle)
	}
	if patch.AutoBudget != nil {
		sets = append(sets, "auto_budget = ?")
		args = append(args, *patch.AutoBudget)
	}
	if patch.AutoLocation != nil {
		sets = append(sets, "auto_location = ?")
		args = append(args, *patch.AutoLocation)
	}
	if patch.AutoDeadline != nil {
		sets = append(sets, "auto_deadline = ?")
		args = append(args, *patch.AutoDeadline)
	}
	if patch.AutoInsights != nil {
		sets = append(sets, "auto_insights = ?")
		args = append(args, *patch.AutoInsights)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)
	res, err := s.db.ExecContext(ctx, `UPDATE tenders SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update tender: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
