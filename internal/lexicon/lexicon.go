// Package lexicon holds the static word tables used by the ATS analyzers.
// Every table is a package-level value that is never mutated after init,
// so lookups are safe from any number of goroutines.
package lexicon

import "strings"

// actionVerbs are strong resume bullet openers (lower-case, past tense where applicable)
var actionVerbs = toSet(
	"accelerated", "accomplished", "achieved", "acquired", "administered", "advised",
	"analyzed", "architected", "assembled", "audited", "authored", "automated",
	"boosted", "built", "captured", "championed", "coached", "collaborated",
	"completed", "conceived", "configured", "consolidated", "constructed", "consulted",
	"converted", "coordinated", "created", "cultivated", "cut", "debugged",
	"decreased", "defined", "delivered", "deployed", "designed", "developed",
	"devised", "diagnosed", "directed", "doubled", "drove", "eliminated",
	"enabled", "engineered", "enhanced", "established", "evaluated", "exceeded",
	"executed", "expanded", "expedited", "facilitated", "forecasted", "formulated",
	"founded", "generated", "grew", "guided", "headed", "identified",
	"implemented", "improved", "increased", "influenced", "initiated", "innovated",
	"inspired", "installed", "instituted", "integrated", "introduced", "invented",
	"launched", "led", "leveraged", "maintained", "managed", "maximized",
	"mentored", "migrated", "minimized", "modernized", "monitored", "negotiated",
	"optimized", "orchestrated", "organized", "originated", "outperformed", "overhauled",
	"oversaw", "partnered", "piloted", "pioneered", "planned", "presented",
	"prioritized", "produced", "programmed", "promoted", "proposed", "prototyped",
	"published", "raised", "rebuilt", "recruited", "redesigned", "reduced",
	"refactored", "reengineered", "refined", "remodeled", "reorganized", "replaced",
	"researched", "resolved", "restructured", "revamped", "saved", "scaled",
	"secured", "shipped", "simplified", "spearheaded", "standardized", "steered",
	"streamlined", "strengthened", "structured", "supervised", "surpassed", "tested",
	"trained", "transformed", "tripled", "troubleshot", "unified", "upgraded",
	"validated", "won", "wrote",
)

// weakVerbs are openers that describe presence rather than impact
var weakVerbs = toSet(
	"assisted", "attended", "contributed", "did", "dealt", "got",
	"handled", "helped", "involved", "made", "participated", "responsible",
	"served", "supported", "tasked", "tried", "used", "utilized",
	"was", "went", "worked",
)

var softSkills = toSet(
	"adaptability", "attention to detail", "collaboration", "communication",
	"conflict resolution", "creativity", "critical thinking", "customer service",
	"decision making", "emotional intelligence", "empathy", "flexibility",
	"interpersonal skills", "leadership", "mentoring", "motivation",
	"negotiation", "organization", "patience", "persuasion",
	"presentation", "problem solving", "problem-solving", "public speaking",
	"self-motivated", "teamwork", "time management", "work ethic",
)

var stopWords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "could", "did", "do", "does",
	"doing", "down", "during", "each", "etc", "every", "few", "for", "from", "further",
	"had", "has", "have", "having", "he", "her", "here", "hers", "him", "his",
	"how", "including", "into", "is", "it", "its", "just", "like", "may", "more",
	"most", "must", "new", "nor", "not", "now", "off", "once", "only", "other",
	"our", "ours", "out", "over", "own", "per", "same", "she", "should", "so",
	"some", "such", "than", "that", "the", "their", "theirs", "them", "then", "there",
	"these", "they", "this", "those", "through", "too", "under", "until", "upon", "very",
	"via", "was", "we", "well", "were", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "within", "without", "would", "you", "your",
	"yours", "able", "ability", "experience", "work", "working", "role", "team",
	"join", "looking", "strong", "using", "years", "year", "plus", "preferred",
	"required", "requirements", "responsibilities", "candidate", "ideal", "position",
	"opportunity", "company", "job", "apply", "equal", "employer",
)

// cliches are checked in order; analyzers report the first few matches
var cliches = []string{
	"team player",
	"hard worker",
	"hard-working",
	"detail-oriented",
	"detail oriented",
	"go-getter",
	"think outside the box",
	"results-driven",
	"results driven",
	"self-starter",
	"synergy",
	"proven track record",
	"dynamic",
	"best of breed",
	"go-to person",
	"value add",
	"responsible for",
	"duties included",
	"excellent communication skills",
	"works well under pressure",
}

// Cluster maps a trigger skill to skills that commonly appear alongside it.
type Cluster struct {
	Trigger string
	Related []string
}

// skillClusters is ordered; the skills analyzer walks it front to back
var skillClusters = []Cluster{
	{Trigger: "react", Related: []string{"javascript", "typescript", "redux", "html", "css"}},
	{Trigger: "angular", Related: []string{"typescript", "rxjs", "html", "css"}},
	{Trigger: "vue", Related: []string{"javascript", "vuex", "html", "css"}},
	{Trigger: "node.js", Related: []string{"javascript", "express", "npm", "rest api"}},
	{Trigger: "python", Related: []string{"django", "flask", "pandas", "numpy"}},
	{Trigger: "java", Related: []string{"spring", "maven", "junit", "hibernate"}},
	{Trigger: "go", Related: []string{"docker", "kubernetes", "grpc", "postgresql"}},
	{Trigger: "docker", Related: []string{"kubernetes", "ci/cd", "linux"}},
	{Trigger: "kubernetes", Related: []string{"docker", "helm", "terraform"}},
	{Trigger: "aws", Related: []string{"ec2", "s3", "lambda", "cloudformation"}},
	{Trigger: "machine learning", Related: []string{"python", "tensorflow", "pytorch", "scikit-learn"}},
	{Trigger: "sql", Related: []string{"postgresql", "mysql", "database design"}},
	{Trigger: "data analysis", Related: []string{"sql", "excel", "tableau", "python"}},
	{Trigger: "figma", Related: []string{"sketch", "prototyping", "user research"}},
}

// synonymGroups lists interchangeable spellings; the first entry is canonical
var synonymGroups = [][]string{
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"kubernetes", "k8s"},
	{"golang", "go"},
	{"postgresql", "postgres", "psql"},
	{"node.js", "nodejs", "node"},
	{"react", "reactjs", "react.js"},
	{"machine learning", "ml"},
	{"artificial intelligence", "ai"},
	{"continuous integration", "ci/cd", "ci"},
	{"amazon web services", "aws"},
	{"google cloud platform", "gcp"},
	{"user experience", "ux"},
	{"user interface", "ui"},
	{"management", "managed", "managing"},
	{"development", "developed", "developing"},
}

// Canonical section headings
const (
	SectionContact    = "Contact Information"
	SectionSummary    = "Professional Summary"
	SectionExperience = "Work Experience"
	SectionEducation  = "Education"
	SectionSkills     = "Skills"
	SectionProjects   = "Projects"
)

// unsafeGlyphs are decorative characters many ATS parsers drop or garble
const unsafeGlyphs = "★☆✓✔✗✘➢➤►▸▪▫■□◆◇●○◦❖→⇒✦✧❯»«§¶"

var synonymIndex = buildSynonymIndex()

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func buildSynonymIndex() map[string]int {
	index := make(map[string]int)
	for i, group := range synonymGroups {
		for _, term := range group {
			index[term] = i
		}
	}
	return index
}

// IsActionVerb reports whether word (already lower-cased) is a strong action verb.
func IsActionVerb(word string) bool {
	return actionVerbs[word]
}

// IsWeakVerb reports whether word (already lower-cased) is a weak opener.
func IsWeakVerb(word string) bool {
	return weakVerbs[word]
}

// IsSoftSkill reports whether the skill name is a soft skill. Matching is case-insensitive.
func IsSoftSkill(name string) bool {
	return softSkills[strings.ToLower(strings.TrimSpace(name))]
}

// IsStopWord reports whether token (already lower-cased) is ignored by keyword extraction.
func IsStopWord(token string) bool {
	return stopWords[token]
}

// Cliches returns the cliché phrase table in its fixed order.
func Cliches() []string {
	out := make([]string, len(cliches))
	copy(out, cliches)
	return out
}

// SkillClusters returns the semantic skill clusters in their fixed order.
func SkillClusters() []Cluster {
	out := make([]Cluster, len(skillClusters))
	for i, c := range skillClusters {
		related := make([]string, len(c.Related))
		copy(related, c.Related)
		out[i] = Cluster{Trigger: c.Trigger, Related: related}
	}
	return out
}

// Synonyms returns the other members of term's synonym group, or nil.
func Synonyms(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	i, ok := synonymIndex[term]
	if !ok {
		return nil
	}
	var out []string
	for _, s := range synonymGroups[i] {
		if s != term {
			out = append(out, s)
		}
	}
	return out
}

// UnsafeGlyphs returns the set of decorative characters flagged by parsing safety.
func UnsafeGlyphs() string {
	return unsafeGlyphs
}
