package llm

import (
	"context"
	"fmt"

	"github.com/lmoretti/mockview/internal/domain"
)

// MockGateway is a scripted stand-in for the real model, used in local dev
// and tests. Set Err to exercise the orchestrator's fallback path, or Reply
// for a fixed response.
type MockGateway struct {
	Reply string
	Err   error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) GenerateTurn(ctx context.Context, candidateText string, ivCtx domain.InterviewContext) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return fmt.Sprintf("Interesting. You said %q. Can you go one level deeper on how that works in %s?",
		candidateText, ivCtx.TechStack), nil
}
