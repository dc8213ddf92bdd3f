package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/lmoretti/mockview/internal/domain"
)

func newInterview(id string) *domain.Interview {
	return &domain.Interview{
		ID:        domain.InterviewID(id),
		JobRole:   "Backend Engineer",
		TechStack: "Go",
		History: []domain.Turn{
			{Speaker: domain.SpeakerInterviewer, Text: "Are you ready?", Timestamp: time.Now()},
		},
		CreatedAt: time.Now(),
	}
}

func TestCreateAndGet(t *testing.T) {
	store := NewInterviewStore()

	iv := newInterview("iv-1")
	if err := store.Create(iv); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(iv.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.JobRole != "Backend Engineer" || len(got.History) != 1 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestCreateDuplicate(t *testing.T) {
	store := NewInterviewStore()

	iv := newInterview("iv-1")
	if err := store.Create(iv); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Create(iv); err == nil {
		t.Fatal("expected error on duplicate create")
	}
}

func TestGetUnknown(t *testing.T) {
	store := NewInterviewStore()

	_, err := store.Get(domain.InterviewID("missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveUnknown(t *testing.T) {
	store := NewInterviewStore()

	err := store.Save(newInterview("missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetReturnsClone(t *testing.T) {
	store := NewInterviewStore()

	iv := newInterview("iv-1")
	if err := store.Create(iv); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(iv.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Mutating the fetched record must not change stored state until Save.
	got.History = domain.AppendTurn(got.History, domain.Turn{
		Speaker: domain.SpeakerCandidate,
		Text:    "unsaved",
	})
	got.History[0].Text = "tampered"

	fresh, err := store.Get(iv.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(fresh.History) != 1 {
		t.Fatalf("unsaved append leaked into store: len=%d", len(fresh.History))
	}
	if fresh.History[0].Text != "Are you ready?" {
		t.Fatalf("mutation leaked into store: %q", fresh.History[0].Text)
	}
}

func TestListRecentNewestFirst(t *testing.T) {
	store := NewInterviewStore()

	base := time.Now()
	for i, id := range []string{"iv-old", "iv-mid", "iv-new"} {
		iv := newInterview(id)
		iv.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Create(iv); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := store.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(got))
	}
	if got[0].ID != "iv-new" || got[1].ID != "iv-mid" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestSavePersistsAppendedTurns(t *testing.T) {
	store := NewInterviewStore()

	iv := newInterview("iv-1")
	if err := store.Create(iv); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, _ := store.Get(iv.ID)
	got.History = domain.AppendTurn(got.History, domain.Turn{
		Speaker: domain.SpeakerCandidate,
		Text:    "Yes, ready.",
	})
	if err := store.Save(got); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh, _ := store.Get(iv.ID)
	if len(fresh.History) != 2 {
		t.Fatalf("expected 2 turns after save, got %d", len(fresh.History))
	}
}
