package scoring

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// SynonymTable maps a normalized skill token to the other tokens
// treated as equivalent to it (a token always matches itself, so it
// need not be listed). The semantic scorer
// treats this as a required configuration input whose exact contents
// are not mandated by the spec (spec.md §9 Open Questions) — only its
// presence and shape are.
type SynonymTable map[string][]string

// normalizeSkill lowercases and trims a skill token.
func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether candidateSkill satisfies requiredSkill,
// either directly or via a configured synonym group.
func (t SynonymTable) Matches(candidateSkill, requiredSkill string) bool {
	c := normalizeSkill(candidateSkill)
	r := normalizeSkill(requiredSkill)
	if c == r {
		return true
	}
	if t == nil {
		return false
	}
	for _, group := range t[r] {
		if normalizeSkill(group) == c {
			return true
		}
	}
	for _, group := range t[c] {
		if normalizeSkill(group) == r {
			return true
		}
	}
	return false
}

// DefaultSynonyms is a small starter table shipped alongside the
// engine; operators are expected to extend configs/synonyms.yaml for
// their own skill taxonomy.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"javascript": {"js", "ecmascript"},
		"typescript": {"ts"},
		"golang":     {"go"},
		"postgresql": {"postgres", "psql"},
		"kubernetes": {"k8s"},
		"ci/cd":      {"cicd", "continuous integration", "continuous delivery"},
	}
}

// LoadSynonymsFromBytes parses configs/synonyms.yaml's flat
// token-to-group-list shape (the same shape DefaultSynonyms returns
// as a literal).
func LoadSynonymsFromBytes(raw []byte) (SynonymTable, error) {
	var table SynonymTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, err
	}
	return table, nil
}
