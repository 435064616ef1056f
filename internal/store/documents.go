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

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// InsertDocument stores a new document, assigning an id and timestamp when
// absent, and returns the stored row.
func (s *Store) InsertDocument(ctx context.Context, doc Document) (Document, error) {
	if strings.TrimSpace(doc.ID) == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if strings.TrimSpace(doc.Category) == "" {
		doc.Category = CategoryProject
	}
	const query = `INSERT INTO documents
                (id, filename, content, doc_type, category, tender_id, auto_tags, auto_analysis, auto_validation, created_at)
                VALUES (:id, :filename, :content, :doc_type, :category, :tender_id, :auto_tags, :auto_analysis, :auto_validation, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, query, doc); err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

// GetDocument fetches a single document by id.
func (s *Store) GetDocument(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.db.GetContext(ctx, &doc, `SELECT * FROM documents WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// FindDocuments returns documents matching the filter, most recent first.
func (s *Store) FindDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if trimmed := strings.TrimSpace(filter.TenderID); trimmed != "" {
		clauses = append(clauses, "tender_id = ?")
		args = append(args, trimmed)
	}
	if trimmed := strings.TrimSpace(filter.Category); trimmed != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, trimmed)
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, 0, len(filter.Categories))
		for _, category := range filter.Categories {
			placeholders = append(placeholders, "?")
			args = append(args, category)
		}
		clauses = append(clauses, "category IN ("+strings.Join(placeholders, ", ")+")")
	}
	query := `SELECT * FROM documents`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	var docs []Document
	if err := s.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	return docs, nil
}

// UpdateDocument applies the non-nil patch fields to a document.
func (s *Store) UpdateDocument(ctx context.Context, id string, patch DocumentPatch) error {
	var (
		sets []string
		args []interface{}
	)
	if patch.AutoTags != nil {
		sets = append(sets, "auto_tags = ?")
		args = append(args, *patch.AutoTags)
	}
	if patch.AutoAnalysis != nil {
		sets = append(sets, "auto_analysis = ?")
		args = append(args, *patch.AutoAnalysis)
	}
	if patch.AutoValidation != nil {
		sets = append(sets, "auto_validation = ?")
		args = append(args, *patch.AutoValidation)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, `UPDATE documents SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
