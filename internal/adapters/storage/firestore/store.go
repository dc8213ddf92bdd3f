package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lmoretti/mockview/internal/domain"
)

// Store persists interviews in Firestore, one document per interview with
// the turn history inline. Inline turns keep each Create/Save a single
// atomic document write, which is all the consistency the service needs.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) interviewsCol() *firestore.CollectionRef {
	return s.client.Collection("interviews")
}

func (s *Store) interviewDoc(id domain.InterviewID) *firestore.DocumentRef {
	return s.interviewsCol().Doc(string(id))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type turnDoc struct {
	Speaker   string    `firestore:"speaker"`
	Text      string    `firestore:"text"`
	Timestamp time.Time `firestore:"timestamp"`
}

type interviewDoc struct {
	JobRole   string    `firestore:"job_role"`
	TechStack string    `firestore:"tech_stack"`
	History   []turnDoc `firestore:"history"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toDoc(iv *domain.Interview) interviewDoc {
	turns := make([]turnDoc, len(iv.History))
	for i, t := range iv.History {
		turns[i] = turnDoc{
			Speaker:   string(t.Speaker),
			Text:      t.Text,
			Timestamp: t.Timestamp,
		}
	}

	return interviewDoc{
		JobRole:   iv.JobRole,
		TechStack: iv.TechStack,
		History:   turns,
		CreatedAt: iv.CreatedAt,
	}
}

func fromDoc(id domain.InterviewID, doc interviewDoc) *domain.Interview {
	history := make([]domain.Turn, len(doc.History))
	for i, t := range doc.History {
		history[i] = domain.Turn{
			Speaker:   domain.Speaker(t.Speaker),
			Text:      t.Text,
			Timestamp: t.Timestamp,
		}
	}

	return &domain.Interview{
		ID:        id,
		JobRole:   doc.JobRole,
		TechStack: doc.TechStack,
		History:   history,
		CreatedAt: doc.CreatedAt,
	}
}

// ─────────────────────────────────────────
// InterviewStore implementation
// ─────────────────────────────────────────

func (s *Store) Create(iv *domain.Interview) error {
	ctx := context.Background()

	_, err := s.interviewDoc(iv.ID).Create(ctx, toDoc(iv))
	if err != nil {
		return fmt.Errorf("firestore Create: %w", err)
	}
	return nil
}

func (s *Store) Get(id domain.InterviewID) (*domain.Interview, error) {
	ctx := context.Background()

	snap, err := s.interviewDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc interviewDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}

	return fromDoc(id, doc), nil
}

func (s *Store) Save(iv *domain.Interview) error {
	ctx := context.Background()

	_, err := s.interviewDoc(iv.ID).Set(ctx, toDoc(iv))
	if err != nil {
		return fmt.Errorf("firestore Save: %w", err)
	}
	return nil
}

func (s *Store) ListRecent(limit int) ([]*domain.Interview, error) {
	ctx := context.Background()

	q := s.interviewsCol().OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Interview
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListRecent: %w", err)
		}

		var doc interviewDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode interviewDoc: %w", err)
		}

		out = append(out, fromDoc(domain.InterviewID(snap.Ref.ID), doc))
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
