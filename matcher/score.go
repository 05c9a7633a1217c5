package matcher

import (
	"context"
	"fmt"
	"math"
	"strings"

	"jobmatcher/domain"
)

// Embedder produces a sentence embedding for a piece of text. The production
// implementation lives in infrastructure; tests supply stubs.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Scorer combines semantic text similarity with deterministic set overlap
// into one weighted match score.
type Scorer struct {
	embedder Embedder
}

func NewScorer(embedder Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// AnalyzeMatch scores a job description against a resume:
//
//	0.5 * text similarity + 0.3 * skill match % + 0.2 * responsibilities similarity
//
// Each term is on a 0-100 scale; the weighted sum is returned unclamped.
func (s *Scorer) AnalyzeMatch(ctx context.Context, jobText, resumeText string, jobSkills, resumeSkills []string, jobResponsibilities, resumeResponsibilities string) (float64, error) {
	textSimilarity, err := s.textSimilarity(ctx, jobText, resumeText)
	if err != nil {
		return 0, fmt.Errorf("text similarity: %w", err)
	}

	skillMatch := SkillMatchPercentage(jobSkills, resumeSkills)

	respSimilarity := 0.0
	if jobResponsibilities != "" && resumeResponsibilities != "" {
		jobResp := strings.Join(splitTrimLower(jobResponsibilities), ", ")
		resumeResp := strings.Join(splitTrimLower(resumeResponsibilities), ", ")
		respSimilarity, err = s.textSimilarity(ctx, jobResp, resumeResp)
		if err != nil {
			return 0, fmt.Errorf("responsibilities similarity: %w", err)
		}
	}

	return textSimilarity*0.5 + skillMatch*0.3 + respSimilarity*0.2, nil
}

func (s *Scorer) textSimilarity(ctx context.Context, a, b string) (float64, error) {
	embA, err := s.embedder.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	embB, err := s.embedder.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return cosineSimilarity(embA, embB) * 100, nil
}

// SkillMatchPercentage is |job ∩ resume| / |job| * 100, or 0 when the job
// lists no skills.
func SkillMatchPercentage(jobSkills, resumeSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0
	}
	matched := Intersection(jobSkills, resumeSkills)
	return float64(len(matched)) / float64(len(jobSkills)) * 100
}

// SplitResponsibilities normalizes a stored responsibilities descriptor into
// a token list: comma-split, trimmed, lowercased, empties dropped. The
// sentinel yields an empty list.
func SplitResponsibilities(s string) []string {
	if s == "" || s == domain.NotSpecified {
		return []string{}
	}
	return splitTrimLower(s)
}

func splitTrimLower(s string) []string {
	tokens := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// EducationMatch reports whether two education labels are equal ignoring
// case.
func EducationMatch(jobEducation, resumeEducation string) bool {
	return strings.EqualFold(jobEducation, resumeEducation)
}

// Intersection returns the elements of a also present in b, preserving a's
// order, so that Intersection(job, resume) ∪ Difference(job, resume) is
// exactly job.
func Intersection(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	out := []string{}
	for _, s := range a {
		if _, ok := inB[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Difference returns the elements of a not present in b, preserving a's
// order.
func Difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	out := []string{}
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
