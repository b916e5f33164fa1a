package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	// maxKeywords caps the number of JD keywords considered.
	maxKeywords = 280
	// maxListedKeywords caps the matched/missing lists in the breakdown.
	maxListedKeywords = 50

	// Token length bounds for free keyword extraction.
	minTokenLen = 3
	maxTokenLen = 24

	// Caps applied to raw signal counts before scaling.
	maxMetricHits = 10
	maxVerbHits   = 12

	// Resume length thresholds (raw characters).
	shortResumeChars = 1500
	longResumeChars  = 8000

	// Composite weights.
	weightKeyword   = 0.32
	weightHardSkill = 0.24
	weightSoftSkill = 0.12
	weightImpact    = 0.18
	weightFormat    = 0.14

	// Impact sub-weights.
	impactMetricWeight = 0.55
	impactVerbWeight   = 0.45

	// defaultScore is used when the JD offers nothing to match against,
	// avoiding both a division by zero and a misleading zero.
	defaultScore = 60
)

var (
	tokenSplitRe = regexp.MustCompile(`[^a-z0-9+\-#/.]+`)

	metricPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d[\d,.]*\s?%`),
		regexp.MustCompile(`(?i)\b\d[\d,.]*\s?(?:x|percent|k|m|million|billion|thousand|users|customers|requests|downloads|qps|rps|ms|hours|hrs)\b`),
		regexp.MustCompile(`[$€£₹]\s?\d[\d,.]*`),
	}

	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}\d`)
)

// coreSections are the resume headings every reviewer expects to find.
var coreSections = []string{"experience", "education", "skills"}

// Breakdown is the immutable result of scoring one resume against one JD.
type Breakdown struct {
	KeywordScore   int `json:"keyword_score"`
	HardSkillScore int `json:"hard_skill_score"`
	SoftSkillScore int `json:"soft_skill_score"`
	ImpactScore    int `json:"impact_score"`
	FormatScore    int `json:"format_score"`
	CompositeScore int `json:"composite_score"`

	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`

	Issues []string `json:"issues"`
	Wins   []string `json:"wins"`
}

// Score computes the full deterministic breakdown. It is stateless and
// byte-for-byte reproducible for identical inputs.
func Score(resumeText, jobDescription string) *Breakdown {
	resumeNorm := normalize(resumeText)
	jdNorm := normalize(jobDescription)

	keywords := extractKeywords(jdNorm)

	var matched, missing []string
	for _, kw := range keywords {
		if strings.Contains(resumeNorm, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	b := &Breakdown{
		KeywordScore:    ratioScore(len(matched), len(keywords)),
		HardSkillScore:  vocabScore(resumeNorm, jdNorm, hardSkillVocab),
		SoftSkillScore:  vocabScore(resumeNorm, jdNorm, softSkillVocab),
		ImpactScore:     impactScore(resumeNorm),
		MatchedKeywords: capList(matched, maxListedKeywords),
		MissingKeywords: capList(missing, maxListedKeywords),
	}

	var issues, wins []string
	b.FormatScore, issues, wins = formatScore(resumeText, resumeNorm)

	composite := weightKeyword*float64(b.KeywordScore) +
		weightHardSkill*float64(b.HardSkillScore) +
		weightSoftSkill*float64(b.SoftSkillScore) +
		weightImpact*float64(b.ImpactScore) +
		weightFormat*float64(b.FormatScore)
	b.CompositeScore = clampRound(composite)

	b.Issues, b.Wins = appendSignalFindings(issues, wins, b, len(keywords))
	return b
}

// normalize lowercases, collapses runs of whitespace and trims.
func normalize(text string) string {
	lower := strings.ToLower(text)
	return strings.Join(strings.Fields(lower), " ")
}

// extractKeywords builds the deduplicated, order-preserving keyword set for a
// normalized JD: fixed-vocabulary substring hits first, then free tokens.
func extractKeywords(jdNorm string) []string {
	if jdNorm == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var keywords []string
	add := func(kw string) {
		if len(keywords) >= maxKeywords {
			return
		}
		if _, dup := seen[kw]; dup {
			return
		}
		if _, stop := stopwords[kw]; stop {
			return
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	for _, term := range hardSkillVocab {
		if strings.Contains(jdNorm, term) {
			add(term)
		}
	}
	for _, term := range softSkillVocab {
		if strings.Contains(jdNorm, term) {
			add(term)
		}
	}

	for _, tok := range tokenSplitRe.Split(jdNorm, -1) {
		// Only a trailing sentence period comes off; "c++", "c#" and
		// ".net" keep their symbol characters.
		tok = strings.TrimSuffix(tok, ".")
		if len(tok) < minTokenLen || len(tok) > maxTokenLen {
			continue
		}
		add(tok)
	}

	return keywords
}

// ratioScore converts matched/total into [0,100], defaulting when total is zero.
func ratioScore(matched, total int) int {
	if total == 0 {
		return defaultScore
	}
	return clampRound(float64(matched) / float64(total) * 100)
}

// vocabScore applies the ratio formula restricted to the vocabulary terms the
// JD actually mentions.
func vocabScore(resumeNorm, jdNorm string, vocab []string) int {
	total, matched := 0, 0
	for _, term := range vocab {
		if !strings.Contains(jdNorm, term) {
			continue
		}
		total++
		if strings.Contains(resumeNorm, term) {
			matched++
		}
	}
	return ratioScore(matched, total)
}

// impactScore blends quantified-metric pattern hits with action-verb usage.
func impactScore(resumeNorm string) int {
	metricHits := 0
	for _, re := range metricPatterns {
		metricHits += len(re.FindAllString(resumeNorm, -1))
	}
	metricHits = min(metricHits, maxMetricHits)

	verbHits := 0
	for _, verb := range actionVerbs {
		if strings.Contains(resumeNorm, verb) {
			verbHits++
		}
	}
	verbHits = min(verbHits, maxVerbHits)

	score := impactMetricWeight*(float64(metricHits)/maxMetricHits*100) +
		impactVerbWeight*(float64(verbHits)/maxVerbHits*100)
	return clampRound(score)
}

// formatScore starts at 100 and subtracts fixed penalties for structural
// problems. Whitespace-sensitive checks run on the raw text, content checks on
// the normalized text.
func formatScore(raw, norm string) (score int, issues, wins []string) {
	score = 100

	if strings.Contains(raw, "\t") || strings.Contains(raw, " | ") {
		score -= 25
		issues = append(issues, "Tabular or column formatting detected; many resume parsers cannot read tables")
	} else {
		wins = append(wins, "No table or column formatting detected")
	}

	var missingSections []string
	for _, section := range coreSections {
		if !strings.Contains(norm, section) {
			missingSections = append(missingSections, section)
		}
	}
	if len(missingSections) > 0 {
		score -= 18
		issues = append(issues, fmt.Sprintf("Missing core section heading(s): %s", strings.Join(missingSections, ", ")))
	} else {
		wins = append(wins, "All core sections present (experience, education, skills)")
	}

	if !emailRe.MatchString(raw) {
		score -= 10
		issues = append(issues, "No email address found")
	}
	if !phoneRe.MatchString(raw) {
		score -= 8
		issues = append(issues, "No phone number found")
	}

	switch n := len(raw); {
	case n < shortResumeChars:
		score -= 8
		issues = append(issues, "Resume looks too short; aim for at least half a page of content")
	case n > longResumeChars:
		score -= 10
		issues = append(issues, "Resume looks too long; tighten it toward one page")
	}

	if score < 0 {
		score = 0
	}
	return score, issues, wins
}

// appendSignalFindings derives the remaining human-readable findings from the
// already-computed category scores.
func appendSignalFindings(issues, wins []string, b *Breakdown, totalKeywords int) (allIssues, allWins []string) {
	allIssues, allWins = issues, wins

	switch {
	case totalKeywords == 0:
		allIssues = append(allIssues, "Job description yielded no keywords to match against")
	case b.KeywordScore >= 70:
		allWins = append(allWins, fmt.Sprintf("Strong keyword coverage (%d%% of JD terms present)", b.KeywordScore))
	case b.KeywordScore < 40:
		allIssues = append(allIssues, "Low keyword coverage; mirror more of the JD's terminology")
	}

	if b.ImpactScore == 0 {
		allIssues = append(allIssues, "No quantified impact found; add numbers (%, counts, money, time saved)")
	} else if b.ImpactScore >= 60 {
		allWins = append(allWins, "Good use of quantified, action-led bullet points")
	}

	if len(b.MissingKeywords) > 0 && len(b.MissingKeywords) <= 10 {
		allIssues = append(allIssues, fmt.Sprintf("Consider addressing: %s", strings.Join(b.MissingKeywords, ", ")))
	}

	return allIssues, allWins
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func clampRound(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}
