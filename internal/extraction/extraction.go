// Package extraction derives structured profile fields from plain resume text.
// It covers what the matching service needs when a candidate supplies only
// free text: a skill list and an experience estimate.
package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Skills recognised by ExtractSkills, grouped by category.
var skillsByCategory = map[string][]string{
	"programming": {
		"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust",
		"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "sass", "less",
	},
	"frameworks": {
		"react", "angular", "vue", "django", "flask", "fastapi", "spring", "express",
		"node.js", "nodejs", "laravel", "rails", "asp.net", "tensorflow", "pytorch",
		"keras", "scikit-learn", "pandas", "numpy",
	},
	"databases": {
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
		"oracle", "sqlite", "dynamodb", "firestore",
	},
	"cloud": {
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins",
		"terraform", "ansible", "vagrant",
	},
	"tools": {
		"git", "github", "gitlab", "bitbucket", "jira", "confluence", "slack",
		"figma", "sketch", "adobe", "photoshop", "illustrator",
	},
}

var skillPatterns = compileSkillPatterns()

// A skill must not touch a letter, digit or underscore on either side, so
// "go" does not match inside "google" while "c++" still matches.
func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, skills := range skillsByCategory {
		for _, skill := range skills {
			patterns[skill] = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(skill) + `(?:$|[^\p{L}\p{N}_])`)
		}
	}
	return patterns
}

// explicit experience statements, tried in order; the first pattern with a
// match decides and the largest number wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*in`),
	regexp.MustCompile(`experience.*?(\d+)\+?\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*yrs?\s*(?:of\s*)?experience`),
}

var (
	closedRange = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`)
	openRange   = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(present|current)`)
)

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "university",
	"college", "institute", "school", "certification", "certified",
}

const maxEducationEntries = 5

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// Profile is everything Parse derives from a resume.
type Profile struct {
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Education       []string `json:"education,omitempty"`
	Emails          []string `json:"emails,omitempty"`
}

// Parse extracts a Profile from text. Blank text yields an empty profile.
func Parse(text string, now time.Time) Profile {
	if strings.TrimSpace(text) == "" {
		return Profile{Skills: []string{}}
	}
	return Profile{
		Skills:          ExtractSkills(text),
		ExperienceYears: ExtractExperienceYears(text, now),
		Education:       ExtractEducation(text),
		Emails:          uniqueSorted(emailPattern.FindAllString(text, -1)),
	}
}

// ExtractSkills returns the known skills mentioned in text, lowercased,
// sorted and unique.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for skill, pattern := range skillPatterns {
		if pattern.MatchString(lower) {
			found = append(found, skill)
		}
	}
	sort.Strings(found)
	return found
}

// ExtractExperienceYears reads an explicit "N years of experience" statement,
// falling back to the sum of employment year ranges that end no later than
// now. It returns nil when neither yields a positive number.
func ExtractExperienceYears(text string, now time.Time) *int {
	lower := strings.ToLower(text)
	for _, pattern := range experiencePatterns {
		matches := pattern.FindAllStringSubmatch(lower, -1)
		best, ok := -1, false
		for _, m := range matches {
			if years, err := strconv.Atoi(m[1]); err == nil && years > best {
				best, ok = years, true
			}
		}
		if ok {
			return &best
		}
	}
	return yearsFromDateRanges(text, now.Year())
}

func yearsFromDateRanges(text string, currentYear int) *int {
	total := 0
	add := func(start, end int) {
		if start <= end && end <= currentYear {
			total += end - start
		}
	}

	for _, m := range closedRange.FindAllStringSubmatch(text, -1) {
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			add(start, end)
		}
	}
	for _, m := range openRange.FindAllStringSubmatch(text, -1) {
		if start, err := strconv.Atoi(m[1]); err == nil {
			add(start, currentYear)
		}
	}

	if total <= 0 {
		return nil
	}
	return &total
}

// ExtractEducation returns up to five non-trivial lines mentioning a degree
// or institution.
func ExtractEducation(text string) []string {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 10 {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, keyword := range educationKeywords {
			if strings.Contains(lower, keyword) {
				entries = append(entries, trimmed)
				break
			}
		}
		if len(entries) == maxEducationEntries {
			break
		}
	}
	return entries
}

func uniqueSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
