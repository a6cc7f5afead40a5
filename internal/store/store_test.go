package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestKV_GetMissing(t *testing.T) {
	repo := openTestStore(t).KVRepo()

	v, ok, err := repo.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != nil {
		t.Fatalf("expected missing key, got ok=%v value=%q", ok, v)
	}
}

func TestKV_PutReplaces(t *testing.T) {
	repo := openTestStore(t).KVRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, "lesson_history", []byte(`[1]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "lesson_history", []byte(`[1,2]`)); err != nil {
		t.Fatalf("put again: %v", err)
	}

	v, ok, err := repo.Get(ctx, "lesson_history")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(v) != `[1,2]` {
		t.Errorf("value = %q, want %q", v, `[1,2]`)
	}
}

func TestKV_Delete(t *testing.T) {
	repo := openTestStore(t).KVRepo()
	ctx := context.Background()

	if err := repo.Delete(ctx, "absent"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if err := repo.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "k"); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KVRepo().Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, ok, err := s.KVRepo().Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestLLMEvents_AppendQueryAggregate(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini-2.5-pro", Model: "gemini-2.5-pro", Purpose: "plan-generate", InputTokens: 100, OutputTokens: 400, LatencyMs: 1000, Success: true, RequestBody: "req", ResponseBody: "{}"},
		{Provider: "gemini-2.5-pro", Model: "gemini-2.5-pro", Purpose: "plan-refine", InputTokens: 300, OutputTokens: 500, LatencyMs: 3000, Success: true},
		{Provider: "gemini-2.5-pro", Model: "gemini-2.5-pro", Purpose: "plan-generate", LatencyMs: 500, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].ErrorMessage != "boom" || all[0].Success {
		t.Errorf("expected newest event first, got %+v", all[0])
	}

	gen, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "plan-generate", Limit: 1})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(gen) != 1 || gen[0].Purpose != "plan-generate" {
		t.Fatalf("unexpected filtered events: %+v", gen)
	}

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "req" || !first.Success {
		t.Fatalf("unexpected event: %+v", first)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	if byPurpose[0].Purpose != "plan-generate" || byPurpose[0].Calls != 2 || byPurpose[0].OutputTokens != 400 || byPurpose[0].AvgLatencyMs != 750 {
		t.Errorf("unexpected generate usage: %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 || byModel[0].InputTokens != 400 {
		t.Errorf("unexpected model usage: %+v", byModel)
	}
}
