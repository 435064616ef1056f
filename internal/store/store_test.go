package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "tenderd.db")
	st, err := OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenMigratesAndSetsWALJournalMode(t *testing.T) {
	st := openTestStore(t)

	// journal_mode is set through the DSN; switching it inside the
	// migration transaction would fail the open.
	var mode string
	if err := st.db.Get(&mode, `PRAGMA journal_mode`); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Fatalf("journal mode = %q, want wal", mode)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	inserted, err := st.InsertDocument(ctx, Document{
		Filename: "notice.pdf",
		Content:  "The supplier must deliver within 30 days.",
		TenderID: "t1",
	})
	if err != nil {
		t.Fatalf("insert document: %v", err)
	}
	if inserted.ID == "" {
		t.Fatal("id not assigned")
	}
	if inserted.Category != CategoryProject {
		t.Fatalf("default category not applied: %q", inserted.Category)
	}

	got, err := st.GetDocument(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if got.Filename != "notice.pdf" || got.TenderID != "t1" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GetDocument(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindDocumentsFiltersAndOrders(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	fixtures := []Document{
		{ID: "old", TenderID: "t1", Filename: "a.txt", CreatedAt: base},
		{ID: "new", TenderID: "t1", Filename: "b.txt", CreatedAt: base.Add(time.Minute)},
		{ID: "other", TenderID: "t2", Filename: "c.txt", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "company", Category: CategoryCompany, Filename: "d.txt", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, doc := range fixtures {
		if _, err := st.InsertDocument(ctx, doc); err != nil {
			t.Fatalf("insert %s: %v", doc.ID, err)
		}
	}

	scoped, err := st.FindDocuments(ctx, DocumentFilter{TenderID: "t1"})
	if err != nil {
		t.Fatalf("find by tender: %v", err)
	}
	if len(scoped) != 2 || scoped[0].ID != "new" || scoped[1].ID != "old" {
		t.Fatalf("tender filter or order wrong: %+v", scoped)
	}

	company, err := st.FindDocuments(ctx, DocumentFilter{Categories: []string{CategoryCompany, CategoryGlobal}})
	if err != nil {
		t.Fatalf("find by categories: %v", err)
	}
	if len(company) != 1 || company[0].ID != "company" {
		t.Fatalf("category filter wrong: %+v", company)
	}

	limited, err := st.FindDocuments(ctx, DocumentFilter{TenderID: "t1", Limit: 1})
	if err != nil {
		t.Fatalf("find with limit: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "new" {
		t.Fatalf("limit wrong: %+v", limited)
	}
}

func TestUpdateDocumentPatch(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	inserted, err := st.InsertDocument(ctx, Document{Filename: "n.txt"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.UpdateDocument(ctx, inserted.ID, DocumentPatch{AutoTags: StringPtr(`{"priority":"high"}`)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := st.GetDocument(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AutoTags == "" || got.AutoAnalysis != "" || got.AutoValidation != "" {
		t.Fatalf("patch applied wrong fields: %+v", got)
	}

	if err := st.UpdateDocument(ctx, inserted.ID, DocumentPatch{AutoValidation: StringPtr(`{"grade":"good"}`)}); err != nil {
		t.Fatalf("update validation: %v", err)
	}
	got, err = st.GetDocument(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AutoValidation != `{"grade":"good"}` {
		t.Fatalf("validation patch not applied: %+v", got)
	}

	if err := st.UpdateDocument(ctx, "missing", DocumentPatch{AutoTags: StringPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing document, got %v", err)
	}
	if err := st.UpdateDocument(ctx, inserted.ID, DocumentPatch{}); err != nil {
		t.Fatalf("empty patch should be a no-op, got %v", err)
	}
}

func TestTenderRoundTripAndPatch(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	inserted, err := st.InsertTender(ctx, Tender{Title: "Road Works", Value: 1200000})
	if err != nil {
		t.Fatalf("insert tender: %v", err)
	}
	if inserted.Status != "draft" {
		t.Fatalf("default status not applied: %q", inserted.Status)
	}

	if err := st.UpdateTender(ctx, inserted.ID, TenderPatch{
		AutoTitle:    StringPtr("Road Resurfacing Framework"),
		AutoDeadline: StringPtr("15 March 2025"),
	}); err != nil {
		t.Fatalf("update tender: %v", err)
	}
	got, err := st.FindTender(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("find tender: %v", err)
	}
	if got.AutoTitle != "Road Resurfacing Framework" || got.AutoDeadline != "15 March 2025" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if !got.UpdatedAt.After(inserted.CreatedAt) && !got.UpdatedAt.Equal(inserted.CreatedAt) {
		t.Fatalf("updated_at not bumped: %+v", got)
	}

	if _, err := st.FindTender(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTendersOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.InsertTender(ctx, Tender{Title: "first"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := st.InsertTender(ctx, Tender{Title: "second"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := st.UpdateTender(ctx, first.ID, TenderPatch{AutoTitle: StringPtr("bumped")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	tenders, err := st.ListTenders(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tenders) != 2 || tenders[0].ID != first.ID {
		t.Fatalf("most recently updated tender should lead: %+v", tenders)
	}
}
