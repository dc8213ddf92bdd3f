package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lmoretti/mockview/internal/domain"
	"github.com/lmoretti/mockview/internal/observability"
)

// FallbackReply is returned when the model gateway fails. It is handed back
// as a normal interviewer turn but never written to history, so the next
// model call does not see it as context.
const FallbackReply = "I'm having trouble connecting to the server right now. Let's move to the next question."

const openingTemplate = "Hello! I see you're applying for the %s position working with %s. Are you ready to begin?"

// gatewayTimeout bounds the single suspension point in the submit path.
const gatewayTimeout = 30 * time.Second

// Service orchestrates the interview lifecycle: it creates sessions,
// forwards candidate answers to the model gateway and commits both turns of
// each exchange to the store.
type Service struct {
	gateway domain.ModelGateway
	store   domain.InterviewStore
	locks   *interviewLocks
	now     func() time.Time
}

func NewService(gateway domain.ModelGateway, store domain.InterviewStore) *Service {
	return &Service{
		gateway: gateway,
		store:   store,
		locks:   newInterviewLocks(),
		now:     time.Now,
	}
}

type StartInterviewInput struct {
	JobRole   string
	TechStack string
}

type StartInterviewOutput struct {
	Interview *domain.Interview
	Opening   domain.Turn
}

func (s *Service) StartInterview(ctx context.Context, in StartInterviewInput) (*StartInterviewOutput, error) {
	if strings.TrimSpace(in.JobRole) == "" || strings.TrimSpace(in.TechStack) == "" {
		return nil, fmt.Errorf("%w: jobRole and techStack are required", domain.ErrInvalidInput)
	}

	log := observability.LoggerFromContext(ctx).With(
		"job_role", in.JobRole,
		"tech_stack", in.TechStack,
	)
	log.Info("starting new interview")

	now := s.now()

	opening := domain.Turn{
		Speaker:   domain.SpeakerInterviewer,
		Text:      fmt.Sprintf(openingTemplate, in.JobRole, in.TechStack),
		Timestamp: now,
	}

	iv := &domain.Interview{
		ID:        domain.InterviewID(uuid.New().String()),
		JobRole:   in.JobRole,
		TechStack: in.TechStack,
		History:   []domain.Turn{opening},
		CreatedAt: now,
	}

	if err := s.store.Create(iv); err != nil {
		log.Error("failed to create interview", "error", err)
		return nil, &domain.StorageError{Op: "create", Err: err}
	}

	log.Info("interview started", "interview_id", iv.ID)

	return &StartInterviewOutput{
		Interview: iv,
		Opening:   opening,
	}, nil
}

type SubmitAnswerInput struct {
	InterviewID domain.InterviewID
	Text        string
}

type SubmitAnswerOutput struct {
	CandidateTurn   domain.Turn
	InterviewerTurn domain.Turn

	// Degraded is true when the gateway failed and InterviewerTurn carries
	// the fallback line. Nothing was persisted in that case.
	Degraded bool
}

func (s *Service) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: answer text is required", domain.ErrInvalidInput)
	}

	// Serialize per interview so two concurrent submissions cannot
	// interleave their candidate/interviewer pairs in history.
	lock := s.locks.get(in.InterviewID)
	lock.Lock()
	defer lock.Unlock()

	iv, err := s.store.Get(in.InterviewID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"interview_id", iv.ID,
		"job_role", iv.JobRole,
	)
	log.Info("submitting answer", "history_len", len(iv.History))

	ivCtx := domain.InterviewContext{
		InterviewID: iv.ID,
		JobRole:     iv.JobRole,
		TechStack:   iv.TechStack,
		History:     iv.History,
	}

	genCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	replyText, err := s.gateway.GenerateTurn(genCtx, in.Text, ivCtx)
	if err != nil {
		// Degrade gracefully: the candidate gets a canned line and the
		// session stays exactly as it was before this call.
		log.Warn("model gateway failed, using fallback reply", "error", err)
		return &SubmitAnswerOutput{
			CandidateTurn: domain.Turn{
				Speaker:   domain.SpeakerCandidate,
				Text:      in.Text,
				Timestamp: s.now(),
			},
			InterviewerTurn: domain.Turn{
				Speaker:   domain.SpeakerInterviewer,
				Text:      FallbackReply,
				Timestamp: s.now(),
			},
			Degraded: true,
		}, nil
	}

	candidateTurn := domain.Turn{
		Speaker:   domain.SpeakerCandidate,
		Text:      in.Text,
		Timestamp: s.now(),
	}
	interviewerTurn := domain.Turn{
		Speaker:   domain.SpeakerInterviewer,
		Text:      replyText,
		Timestamp: s.now(),
	}

	iv.History = domain.AppendTurn(iv.History, candidateTurn)
	iv.History = domain.AppendTurn(iv.History, interviewerTurn)

	if err := s.store.Save(iv); err != nil {
		log.Error("failed to save interview", "error", err)
		return nil, &domain.StorageError{Op: "save", Err: err}
	}

	log.Info("answer submitted", "history_len", len(iv.History))

	return &SubmitAnswerOutput{
		CandidateTurn:   candidateTurn,
		InterviewerTurn: interviewerTurn,
	}, nil
}

// ListInterviews returns up to limit stored interviews, newest first.
func (s *Service) ListInterviews(ctx context.Context, limit int) ([]*domain.Interview, error) {
	ivs, err := s.store.ListRecent(limit)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list interviews", "error", err)
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	return ivs, nil
}

// GetInterview returns a read-only projection of a stored interview.
func (s *Service) GetInterview(ctx context.Context, id domain.InterviewID) (*domain.Interview, error) {
	iv, err := s.store.Get(id)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to get interview",
			"interview_id", id,
			"error", err)
		return nil, err
	}
	return iv, nil
}
