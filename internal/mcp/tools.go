package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/matching"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

// Tools holds the services the tool handlers call.
type Tools struct {
	Log      *logger.Logger
	Recs     services.RecommendationService
	Semantic services.SemanticService
}

// --- Input types ---

type PersonInput struct {
	UserID string `json:"user_id" jsonschema:"User id of the student or faculty member"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type OpeningInput struct {
	FacultyID string `json:"faculty_id" jsonschema:"User id of the faculty member who posted the opening"`
	OpeningID string `json:"opening_id" jsonschema:"Opening id"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type SearchInput struct {
	Role       string `json:"role" jsonschema:"Which profiles to search: student or faculty"`
	Query      string `json:"query" jsonschema:"Free-text description of the person you are looking for"`
	Department string `json:"department,omitempty" jsonschema:"Only return people in this department"`
	Batch      *int   `json:"batch,omitempty" jsonschema:"Only return students of this graduation year"`
	K          int    `json:"k,omitempty" jsonschema:"Number of nearest profiles to consider"`
}

type OverlapInput struct {
	Required  []string `json:"required" jsonschema:"Concepts that are required"`
	Possessed []string `json:"possessed" jsonschema:"Concepts the candidate has"`
}

type OverlapResult struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

const defaultToolLimit = 10

func limitOrDefault(n int) int {
	if n <= 0 {
		return defaultToolLimit
	}
	return n
}

// --- Handlers ---

func (t *Tools) RecommendOpenings(ctx context.Context, _ *sdk.CallToolRequest, in PersonInput) (*sdk.CallToolResult, any, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return toolError("user_id is required"), nil, nil
	}
	recs, err := t.Recs.OpeningsForStudent(ctx, in.UserID, limitOrDefault(in.Limit))
	if err != nil {
		return t.failed("recommend_openings", err), nil, nil
	}
	return toolJSON(recs)
}

func (t *Tools) RecommendMentors(ctx context.Context, _ *sdk.CallToolRequest, in PersonInput) (*sdk.CallToolResult, any, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return toolError("user_id is required"), nil, nil
	}
	recs, err := t.Recs.MentorsForStudent(ctx, in.UserID, limitOrDefault(in.Limit))
	if err != nil {
		return t.failed("recommend_mentors", err), nil, nil
	}
	return toolJSON(recs)
}

func (t *Tools) RecommendStudents(ctx context.Context, _ *sdk.CallToolRequest, in PersonInput) (*sdk.CallToolResult, any, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return toolError("user_id is required"), nil, nil
	}
	recs, err := t.Recs.StudentsForFaculty(ctx, in.UserID, limitOrDefault(in.Limit))
	if err != nil {
		return t.failed("recommend_students", err), nil, nil
	}
	return toolJSON(recs)
}

func (t *Tools) RecommendStudentsForOpening(ctx context.Context, _ *sdk.CallToolRequest, in OpeningInput) (*sdk.CallToolResult, any, error) {
	if strings.TrimSpace(in.FacultyID) == "" || strings.TrimSpace(in.OpeningID) == "" {
		return toolError("faculty_id and opening_id are required"), nil, nil
	}
	recs, err := t.Recs.StudentsForOpening(ctx, in.FacultyID, in.OpeningID, limitOrDefault(in.Limit))
	if err != nil {
		return t.failed("recommend_students_for_opening", err), nil, nil
	}
	return toolJSON(recs)
}

func (t *Tools) SearchPeople(ctx context.Context, _ *sdk.CallToolRequest, in SearchInput) (*sdk.CallToolResult, any, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return toolError("role must be student or faculty"), nil, nil
	}
	filter := services.SearchFilter{Department: in.Department, Batch: in.Batch}
	var out []domain.SemanticMatch
	switch role {
	case domain.RoleStudent:
		out, err = t.Semantic.SearchStudents(ctx, in.Query, filter, in.K)
	default:
		out, err = t.Semantic.SearchFaculty(ctx, in.Query, filter, in.K)
	}
	if err != nil {
		return t.failed("search_people", err), nil, nil
	}
	return toolJSON(out)
}

func (t *Tools) ScoreOverlap(_ context.Context, _ *sdk.CallToolRequest, in OverlapInput) (*sdk.CallToolResult, any, error) {
	required := domain.NormalizeConceptNames(in.Required)
	possessed := domain.NormalizeConceptNames(in.Possessed)
	matched := matching.Matched(required, possessed)
	hit := make(map[string]struct{}, len(matched))
	for _, c := range matched {
		hit[c] = struct{}{}
	}
	missing := make([]string, 0, len(required)-len(matched))
	for _, c := range required {
		if _, ok := hit[c]; !ok {
			missing = append(missing, c)
		}
	}
	return toolJSON(OverlapResult{
		Score:   matching.Score(required, possessed),
		Matched: matched,
		Missing: missing,
	})
}

// failed reports a domain error to the caller as tool output; internals stay in the log.
func (t *Tools) failed(tool string, err error) *sdk.CallToolResult {
	var derr *domainagg.Error
	if !errors.As(err, &derr) || derr.Code == domainagg.CodeInternal {
		t.Log.Error("tool failed", "tool", tool, "error", err)
		return toolError("%s failed: internal error", tool)
	}
	msg := derr.Message
	if msg == "" {
		msg = string(derr.Code)
	}
	return toolError("%s failed (%s): %s", tool, derr.Code, msg)
}

func toolError(format string, args ...any) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*sdk.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("failed to marshal result: %v", err), nil, nil
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
	}, nil, nil
}
