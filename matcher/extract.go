package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"jobmatcher/domain"
)

// TitleNotSpecified is returned when no role keyword appears in a job
// description.
const TitleNotSpecified = "Job Title Not Specified"

// The extraction vocabularies. Matching is deliberately a crude linear
// keyword scan: results come out in vocabulary order, whole-word matching for
// skills and responsibilities, plain substring matching for education,
// experience and title.
var (
	skillKeywords = []string{
		"python", "django", "aws", "javascript", "html", "css", "sql", "mongodb", "docker", "git",
		"linux", "flask", "fastapi", "java", "typescript", "node.js", "react", "vue", "kubernetes", "cloud",
	}

	educationKeywords = []string{"bachelor", "master", "phd", "degree", "graduation", "certification"}

	responsibilityKeywords = []string{
		"responsible for", "design", "designing", "develop", "developing", "maintain", "maintaining", "manage", "managing",
		"collaborate", "collaborating", "lead", "coordinate", "coordinating", "optimize", "ship", "write", "test", "testing", "debug",
	}

	experienceKeywords = []string{
		"years of experience", "experience", "worked as", "worked in", "responsible for",
		"developed", "managed", "led", "engineer", "developer",
	}

	titleKeywords = []string{"developer", "engineer", "designer", "manager", "lead", "specialist", "architect", "analyst"}
)

var (
	skillPatterns          = compileWordPatterns(skillKeywords)
	responsibilityPatterns = compileWordPatterns(responsibilityKeywords)
	yearsPattern           = regexp.MustCompile(`(?i)(\d+[+\d]*)\s*(?:year|yrs|experience)`)
)

func compileWordPatterns(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return patterns
}

// ExtractSkills returns the vocabulary skills found in the text by
// case-insensitive whole-word match, in vocabulary order.
func ExtractSkills(text string) []string {
	skills := []string{}
	for i, pattern := range skillPatterns {
		if pattern.MatchString(text) {
			skills = append(skills, skillKeywords[i])
		}
	}
	return skills
}

// ExtractEducation maps education keywords in the text to one of four
// canonical labels. The label depends only on which of bachelor/master/phd
// appear, not on which keyword triggered the scan.
func ExtractEducation(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range educationKeywords {
		if strings.Contains(lower, kw) {
			switch {
			case strings.Contains(lower, "bachelor"):
				return "Bachelor's Degree"
			case strings.Contains(lower, "master"):
				return "Master's Degree"
			case strings.Contains(lower, "phd"):
				return "Ph.D."
			default:
				return "Degree/Certification"
			}
		}
	}
	return domain.NotSpecified
}

// ExtractResponsibilities collects responsibility keywords present in the
// text and joins them with ", " in vocabulary order.
func ExtractResponsibilities(text string) string {
	found := []string{}
	for i, pattern := range responsibilityPatterns {
		if pattern.MatchString(text) {
			found = append(found, responsibilityKeywords[i])
		}
	}
	if len(found) == 0 {
		return domain.NotSpecified
	}
	return strings.Join(found, ", ")
}

// ExtractExperience returns "<n> years" when an experience indicator phrase
// is present and a leading number precedes year/yrs/experience. The number is
// only searched for after an indicator phrase matched.
func ExtractExperience(text string) string {
	lower := strings.ToLower(text)
	indicated := false
	for _, kw := range experienceKeywords {
		if strings.Contains(lower, kw) {
			indicated = true
			break
		}
	}
	if !indicated {
		return domain.NotSpecified
	}
	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		return m[1] + " years"
	}
	return domain.NotSpecified
}

// ExtractTitle returns the first role keyword found in a job description,
// capitalized.
func ExtractTitle(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			return capitalize(kw)
		}
	}
	return TitleNotSpecified
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
