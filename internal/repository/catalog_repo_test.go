package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/indiverse/heritagebot/internal/breadcrumb"
	"github.com/indiverse/heritagebot/internal/domain"
)

var _ breadcrumb.Catalog = (*CatalogRepository)(nil)

func newTestRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "data", "catalog.db"))
	if err != nil {
		t.Fatalf("NewDB error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCatalogRepository(db)
}

func TestCatalogReplaceAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	n, err := repo.ReplaceMonuments(ctx, []domain.Monument{
		{ID: "taj-mahal", Name: "Taj Mahal", Raw: []byte(`{"id":"taj-mahal"}`)},
		{ID: "taj-mahal", Name: "Duplicate"},
		{ID: "hampi", Name: "Hampi"},
	})
	if err != nil {
		t.Fatalf("ReplaceMonuments error = %v", err)
	}
	if n != 2 {
		t.Fatalf("ReplaceMonuments stored %d rows, want 2", n)
	}
	if _, err := repo.ReplaceBlogs(ctx, []domain.Blog{{ID: 3, Title: "Stepwells"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ReplaceStates(ctx, []domain.State{{Key: "kerala", Name: "Kerala"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ReplaceTours(ctx, []domain.Tour{{ID: "mughal-trail", Title: "The Mughal Trail"}}); err != nil {
		t.Fatal(err)
	}

	if name, ok, err := repo.Monument(ctx, "taj-mahal"); err != nil || !ok || name != "Taj Mahal" {
		t.Fatalf("Monument = %q, %v, %v", name, ok, err)
	}
	if _, ok, err := repo.Monument(ctx, "atlantis"); err != nil || ok {
		t.Fatalf("missing monument: ok=%v err=%v", ok, err)
	}
	if title, ok, _ := repo.Blog(ctx, 3); !ok || title != "Stepwells" {
		t.Fatalf("Blog = %q, %v", title, ok)
	}
	if name, ok, _ := repo.State(ctx, "kerala"); !ok || name != "Kerala" {
		t.Fatalf("State = %q, %v", name, ok)
	}
	if title, ok, _ := repo.Tour(ctx, "mughal-trail"); !ok || title != "The Mughal Trail" {
		t.Fatalf("Tour = %q, %v", title, ok)
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.CatalogCounts{Monuments: 2, Blogs: 1, States: 1, Tours: 1}
	if counts != want {
		t.Fatalf("Counts = %+v, want %+v", counts, want)
	}
}

func TestCatalogReplaceClearsPreviousRows(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.ReplaceTours(ctx, []domain.Tour{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ReplaceTours(ctx, []domain.Tour{{ID: "c", Title: "C"}}); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := repo.Tour(ctx, "a"); ok {
		t.Fatalf("old tour survived replace")
	}
	counts, _ := repo.Counts(ctx)
	if counts.Tours != 1 {
		t.Fatalf("tours = %d, want 1", counts.Tours)
	}
}

func TestRepositoryBacksBreadcrumbs(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewCatalogRepository(db)
	if _, err := repo.ReplaceMonuments(ctx, []domain.Monument{{ID: "hampi", Name: "Hampi"}}); err != nil {
		t.Fatal(err)
	}

	crumbs, err := breadcrumb.NewResolver(repo).Resolve(ctx, "/quiz/hampi")
	if err != nil {
		t.Fatal(err)
	}
	if crumbs[1].Label != "Hampi Quiz" {
		t.Fatalf("label = %q", crumbs[1].Label)
	}
}
