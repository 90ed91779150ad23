package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioJD = "Need React and TypeScript, 5+ years"

func TestScoreResume_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		resume      string
		skills      []string
		must        []string
		wantScore   float64
		wantMatched []string
		wantMissing []string
		wantYears   int
		wantPenalty float64
	}{
		{
			name:        "full skill coverage with six years",
			resume:      "I have 6 years experience with React and TypeScript",
			skills:      []string{"react", "typescript"},
			must:        []string{"react"},
			wantScore:   0.788,
			wantMatched: []string{"react", "typescript"},
			wantMissing: []string{},
			wantYears:   6,
		},
		{
			name:        "half coverage keeps must-have satisfied",
			resume:      "I have 6 years experience with React",
			skills:      []string{"react", "typescript"},
			must:        []string{"react"},
			wantScore:   0.488,
			wantMatched: []string{"react"},
			wantMissing: []string{},
			wantYears:   6,
		},
		{
			name:        "two missing must-haves cost 0.10",
			resume:      "I have 6 years experience with Angular",
			skills:      []string{"react", "typescript"},
			must:        []string{"react", "typescript"},
			wantScore:   0.088,
			wantMatched: []string{},
			wantMissing: []string{"react", "typescript"},
			wantYears:   6,
			wantPenalty: 0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreResume(scenarioJD, tt.resume, tt.skills, tt.must)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantMatched, got.Reasons.MatchedSkills)
			assert.Equal(t, tt.wantMissing, got.Reasons.MissingMust)
			assert.Equal(t, tt.wantYears, got.Reasons.EstYears)
			assert.InDelta(t, tt.wantPenalty, got.Breakdown.Penalty, 1e-9)
		})
	}
}

func TestScoreResume_Breakdown(t *testing.T) {
	got := ScoreResume(scenarioJD, "6 years of React. B.Tech in Computer Science", []string{"react", "typescript"}, nil)

	assert.InDelta(t, 0.5, got.Breakdown.Coverage, 1e-9)
	assert.InDelta(t, 0.75, got.Breakdown.Experience, 1e-9)
	assert.InDelta(t, 1.0, got.Breakdown.Education, 1e-9)
	assert.InDelta(t, 0.0, got.Breakdown.Penalty, 1e-9)
	// 0.30 + 0.1875 + 0.10
	assert.InDelta(t, 0.588, got.Score, 1e-9)
}

func TestScoreResume_PenaltyCapped(t *testing.T) {
	must := []string{"go", "rust", "kafka", "redis", "terraform", "kubernetes", "haskell"}
	got := ScoreResume("", "Python developer", []string{"python"}, must)

	assert.Len(t, got.Reasons.MissingMust, len(must))
	assert.InDelta(t, MaxPenalty, got.Breakdown.Penalty, 1e-9)
	// coverage 1.0 * 0.60 - 0.25
	assert.InDelta(t, 0.35, got.Score, 1e-9)
}

func TestScoreResume_ExperienceCapped(t *testing.T) {
	got := ScoreResume("", "20 years building systems", []string{"python"}, nil)
	assert.Equal(t, 20, got.Reasons.EstYears)
	assert.InDelta(t, 1.0, got.Breakdown.Experience, 1e-9)
	assert.InDelta(t, 0.25, got.Score, 1e-9)
}

func TestScoreResume_ClampedAtZero(t *testing.T) {
	got := ScoreResume("", "nothing relevant", []string{"java"}, []string{"java", "spring"})
	assert.Equal(t, 0.0, got.Score)
}

func TestScoreResume_EmptyInputs(t *testing.T) {
	got := ScoreResume("", "", nil, nil)
	assert.Equal(t, 0.0, got.Score)
	assert.NotNil(t, got.Reasons.MatchedSkills)
	assert.NotNil(t, got.Reasons.MissingMust)
	assert.Empty(t, got.Reasons.MatchedSkills)
	assert.Equal(t, 0, got.Reasons.EstYears)
}

func TestScoreResume_BlankMustHaveIgnored(t *testing.T) {
	got := ScoreResume("", "React", []string{"react"}, []string{"", "  "})
	assert.Empty(t, got.Reasons.MissingMust)
	assert.InDelta(t, 0.0, got.Breakdown.Penalty, 1e-9)
}

func TestScoreResume_MatchedSkillsTruncated(t *testing.T) {
	skills := make([]string, 0, 30)
	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		s := "skill" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		skills = append(skills, s)
		words = append(words, s)
	}
	got := ScoreResume("", strings.Join(words, " "), skills, nil)

	assert.Len(t, got.Reasons.MatchedSkills, MaxMatchedSkills)
	assert.Equal(t, skills[:MaxMatchedSkills], got.Reasons.MatchedSkills)
	assert.InDelta(t, 1.0, got.Breakdown.Coverage, 1e-9)
}

func TestScoreResume_Bounds(t *testing.T) {
	resumes := []string{
		"",
		"React TypeScript 40 years PhD",
		"Go, Python, SQL. 3 yrs. M.Sc computer science",
		"c++ c# node.js",
	}
	skillSets := [][]string{nil, {"react"}, {"go", "python", "sql", "java"}, {"c++", "c#", "node.js"}}

	for _, r := range resumes {
		for _, skills := range skillSets {
			got := ScoreResume("React, Go, Docker", r, skills, []string{"kubernetes"})
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 1.0)
			assert.LessOrEqual(t, len(got.Reasons.MatchedSkills), MaxMatchedSkills)
		}
	}
}

func TestScoreResume_AddingSkillNeverLowersScore(t *testing.T) {
	skills := []string{"react", "typescript", "graphql"}
	base := "4 years experience with React"
	richer := base + " and GraphQL"

	before := ScoreResume("", base, skills, nil)
	after := ScoreResume("", richer, skills, nil)
	assert.GreaterOrEqual(t, after.Score, before.Score)
}

func TestScoreResume_Deterministic(t *testing.T) {
	a := ScoreResume(scenarioJD, "React dev, 5 years, BSc", nil, []string{"typescript"})
	b := ScoreResume(scenarioJD, "React dev, 5 years, BSc", nil, []string{"typescript"})
	require.Equal(t, a, b)
}

func TestEffectiveSkills(t *testing.T) {
	tests := []struct {
		name   string
		jdText string
		skills []string
		want   []string
	}{
		{
			name:   "supplied skills are used verbatim",
			jdText: "ignored, entirely",
			skills: []string{"React", "TypeScript"},
			want:   []string{"React", "TypeScript"},
		},
		{
			name:   "supplied skills deduplicated by normalized form",
			skills: []string{"React", "react", " REACT ", "", "Go"},
			want:   []string{"React", "Go"},
		},
		{
			name:   "derived from comma, slash and newline separated text",
			jdText: "Python, Go/Rust\nDocker, Kubernetes",
			want:   []string{"python", "rust", "docker", "kubernetes"},
		},
		{
			name:   "derived fragments outside length bounds dropped",
			jdText: "Go, SQL, we are looking for an exceptional engineer, AWS",
			want:   []string{"sql", "aws"},
		},
		{
			name:   "derived fragments deduplicated",
			jdText: "Python, python, PYTHON",
			want:   []string{"python"},
		},
		{
			name: "nothing to derive",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveSkills(tt.jdText, tt.skills))
		})
	}
}

func TestHasDegreeMarker(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"B.Tech in CSE", true},
		{"MSc Data Science", true},
		{"Bachelor of Engineering", true},
		{"Master's in CS", true},
		{"B.E. Mechanical", true},
		{"Ph.D. in physics", true},
		{"studied Computer Science", true},
		{"I mastered Go", false},
		{"happy to be honest", false},
		{"I have 6 years experience with React and TypeScript", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HasDegreeMarker(tt.text))
		})
	}
}
