package domain

import "context"

// ModelGateway defines how the core application talks to the language model
// that plays the interviewer.
type ModelGateway interface {
	// GenerateTurn produces the next interviewer line given the candidate's
	// new answer and the interview context. Implementations may block on
	// network I/O but must honor ctx.
	GenerateTurn(ctx context.Context, candidateText string, ivCtx InterviewContext) (string, error)
}

// InterviewContext gives the gateway everything it needs to continue the
// conversation. The core passes it through without interpreting it.
type InterviewContext struct {
	InterviewID InterviewID
	JobRole     string
	TechStack   string
	History     []Turn // full prior history, oldest first
}

// InterviewStore defines interview persistence. Each call is an atomic
// single-record operation; no cross-record transactions are required.
type InterviewStore interface {
	Create(interview *Interview) error
	Get(id InterviewID) (*Interview, error)
	Save(interview *Interview) error

	// ListRecent returns up to limit interviews, newest first. A limit of
	// zero or less means no limit.
	ListRecent(limit int) ([]*Interview, error)
}
