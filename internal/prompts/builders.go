package prompts

import (
	"fmt"
	"strings"

	"github.com/hari10031/CodeSync-sub001/internal/scoring"
)

// BuildAnalysisPrompt assembles the resume-analysis prompt, folding the
// deterministic score breakdown into the template so the model enhances the
// lexical result instead of re-deriving it.
func BuildAnalysisPrompt(resumeText, jobDescription string, breakdown *scoring.Breakdown) (string, error) {
	template, err := Get("analysis.json", "enhance_analysis")
	if err != nil {
		return "", err
	}

	return Format(template, map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": jobDescription,
		"ScoreSummary":   breakdownSummary(breakdown),
	}), nil
}

// BuildRoadmapPrompt assembles the learning-roadmap prompt.
func BuildRoadmapPrompt(targetRole string, weeklyHours, durationWeeks int, currentSkills []string) (string, error) {
	template, err := Get("roadmap.json", "generate_roadmap")
	if err != nil {
		return "", err
	}

	skills := "none listed"
	if len(currentSkills) > 0 {
		skills = strings.Join(currentSkills, ", ")
	}

	return Format(template, map[string]string{
		"TargetRole":    targetRole,
		"WeeklyHours":   fmt.Sprintf("%d", weeklyHours),
		"DurationWeeks": fmt.Sprintf("%d", durationWeeks),
		"CurrentSkills": skills,
	}), nil
}

// breakdownSummary renders a breakdown as stable plain text. Field order is
// fixed so identical inputs produce identical prompts.
func breakdownSummary(b *scoring.Breakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "composite: %d\n", b.CompositeScore)
	fmt.Fprintf(&sb, "keywords: %d, hard skills: %d, soft skills: %d, impact: %d, format: %d\n",
		b.KeywordScore, b.HardSkillScore, b.SoftSkillScore, b.ImpactScore, b.FormatScore)
	fmt.Fprintf(&sb, "matched keywords: %s\n", joinOrNone(b.MatchedKeywords))
	fmt.Fprintf(&sb, "missing keywords: %s\n", joinOrNone(b.MissingKeywords))
	fmt.Fprintf(&sb, "issues: %s\n", joinOrNone(b.Issues))
	fmt.Fprintf(&sb, "wins: %s", joinOrNone(b.Wins))
	return sb.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
