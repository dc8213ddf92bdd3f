package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/lmoretti/mockview/internal/domain"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a ModelGateway backed by Gemini on Vertex AI.
func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("projectID and location are required for the gemini gateway")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateTurn implements domain.ModelGateway.
func (g *GeminiClient) GenerateTurn(
	ctx context.Context,
	candidateText string,
	ivCtx domain.InterviewContext,
) (string, error) {
	// 1) Interviewer persona for this role and stack
	system := BuildSystemInstruction(ivCtx.JobRole, ivCtx.TechStack)

	// 2) Prior history as alternating user/model contents
	var contents []*genai.Content
	for _, turn := range ivCtx.History {
		var role genai.Role
		switch turn.Speaker {
		case domain.SpeakerCandidate:
			role = genai.RoleUser
		case domain.SpeakerInterviewer:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}

		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	// 3) The answer being submitted now
	contents = append(contents, genai.NewContentFromText(candidateText, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: model returned empty text", domain.ErrGatewayUnavailable)
	}

	return text, nil
}
