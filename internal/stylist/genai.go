package stylist

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenerateRequest is one prompt for the model, optionally carrying a single
// inline image and a structured-output schema. When a schema is set the
// response is requested as JSON.
type GenerateRequest struct {
	Prompt    string
	Image     []byte
	ImageMIME string
	Schema    *genai.Schema
}

// Generator is the slice of the AI service the orchestrator depends on:
// given a model id and a request, return the response text or fail. The
// orchestrator stays agnostic to which concrete model serves an id.
type Generator interface {
	Generate(ctx context.Context, model string, req GenerateRequest) (string, error)
}

// GenAI is the production Generator backed by Google's Gemini API.
type GenAI struct {
	client *genai.Client
}

// NewGenAI creates a Gemini-backed generator.
func NewGenAI(ctx context.Context, apiKey string) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAI{client: client}, nil
}

// Generate sends the request to the named model and returns the response
// text. Transport and service errors are returned as-is; callers wrap them
// into the domain error taxonomy.
func (g *GenAI) Generate(ctx context.Context, model string, req GenerateRequest) (string, error) {
	var parts []*genai.Part
	if len(req.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.ImageMIME))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var config *genai.GenerateContentConfig
	if req.Schema != nil {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generating content with %s: %w", model, err)
	}

	return resp.Text(), nil
}
