package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/tags"
	"github.com/harbormail/pagekit/pkg/tags/sqlite"
	"github.com/harbormail/pagekit/pkg/testsupport"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "tags.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndList(t *testing.T) {
	store := openStore(t)
	ctx := testsupport.Context()

	seed := []struct {
		tag      model.Tag
		display  tags.Display
		position int
	}{
		{model.Tag{Slug: "drafts", Name: "Drafts", URL: "/in/drafts/"}, tags.DisplayPriority, 1},
		{model.Tag{Slug: "inbox", Name: "Inbox", URL: "/in/inbox/", Stats: model.TagStats{New: 12, All: 340}}, tags.DisplayPriority, 0},
		{model.Tag{Slug: "work", Name: "Work", URL: "/in/work/"}, tags.DisplayTag, 0},
	}
	for _, s := range seed {
		if err := store.Save(ctx, s.tag, s.display, s.position); err != nil {
			t.Fatalf("save %s: %v", s.tag.Slug, err)
		}
	}

	priority, err := store.ListByDisplay(ctx, tags.DisplayPriority)
	if err != nil {
		t.Fatalf("list priority: %v", err)
	}
	want := []model.Tag{
		{Slug: "inbox", Name: "Inbox", URL: "/in/inbox/", Stats: model.TagStats{New: 12, All: 340}},
		{Slug: "drafts", Name: "Drafts", URL: "/in/drafts/"},
	}
	if diff := cmp.Diff(want, priority); diff != "" {
		t.Fatalf("priority order mismatch (-want +got):\n%s", diff)
	}

	general, err := store.ListByDisplay(ctx, tags.DisplayTag)
	if err != nil {
		t.Fatalf("list general: %v", err)
	}
	if len(general) != 1 || general[0].Slug != "work" {
		t.Fatalf("unexpected general tags: %v", general)
	}
}

func TestStore_SaveUpserts(t *testing.T) {
	store := openStore(t)
	ctx := testsupport.Context()

	tag := model.Tag{Slug: "inbox", Name: "Inbox", URL: "/in/inbox/"}
	if err := store.Save(ctx, tag, tags.DisplayPriority, 0); err != nil {
		t.Fatalf("save: %v", err)
	}

	tag.Name = "Incoming"
	if err := store.Save(ctx, tag, tags.DisplayPriority, 0); err != nil {
		t.Fatalf("resave: %v", err)
	}

	listed, err := store.ListByDisplay(ctx, tags.DisplayPriority)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Incoming" {
		t.Fatalf("expected upsert, got: %v", listed)
	}
}

func TestStore_SetStats(t *testing.T) {
	store := openStore(t)
	ctx := testsupport.Context()

	if err := store.Save(ctx, model.Tag{Slug: "inbox", Name: "Inbox"}, tags.DisplayPriority, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SetStats(ctx, "inbox", model.TagStats{New: 5, All: 99}); err != nil {
		t.Fatalf("set stats: %v", err)
	}

	listed, err := store.ListByDisplay(ctx, tags.DisplayPriority)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed[0].Stats.New != 5 || listed[0].Stats.All != 99 {
		t.Fatalf("expected updated stats, got %+v", listed[0].Stats)
	}

	if err := store.SetStats(ctx, "missing", model.TagStats{New: 1}); err == nil {
		t.Fatal("expected error updating stats for unknown tag")
	}
}

func TestStore_SaveValidation(t *testing.T) {
	store := openStore(t)
	ctx := testsupport.Context()

	if err := store.Save(ctx, model.Tag{Name: "No Slug"}, tags.DisplayTag, 0); err == nil {
		t.Error("expected error for missing slug")
	}
	if err := store.Save(ctx, model.Tag{Slug: "x"}, tags.DisplayTag, 0); err == nil {
		t.Error("expected error for missing name")
	}
	if err := store.Save(ctx, model.Tag{Slug: "x", Name: "X"}, tags.Display("pinned"), 0); err == nil {
		t.Error("expected error for unknown display")
	}
}

func TestOpen_InMemory(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	defer store.Close()

	if err := store.Save(testsupport.Context(), model.Tag{Slug: "inbox", Name: "Inbox"}, tags.DisplayPriority, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
}
