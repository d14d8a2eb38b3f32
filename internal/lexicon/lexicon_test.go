package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsActionVerb(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"led", true},
		{"architected", true},
		{"reduced", true},
		{"helped", false},
		{"the", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsActionVerb(tt.word))
		})
	}
}

func TestWeakAndActionVerbsDisjoint(t *testing.T) {
	for w := range weakVerbs {
		assert.False(t, IsActionVerb(w), "%q is both weak and strong", w)
	}
}

func TestIsSoftSkill_CaseInsensitive(t *testing.T) {
	assert.True(t, IsSoftSkill("Leadership"))
	assert.True(t, IsSoftSkill("  TEAMWORK "))
	assert.False(t, IsSoftSkill("Kubernetes"))
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("with"))
	assert.False(t, IsStopWord("kubernetes"))
}

func TestTablesAreLowerCase(t *testing.T) {
	for _, c := range cliches {
		assert.Equal(t, strings.ToLower(c), c)
	}
	for _, c := range skillClusters {
		assert.Equal(t, strings.ToLower(c.Trigger), c.Trigger)
		assert.NotEmpty(t, c.Related)
		for _, r := range c.Related {
			assert.Equal(t, strings.ToLower(r), r)
		}
	}
}

func TestSkillClusters_ReturnsCopy(t *testing.T) {
	clusters := SkillClusters()
	clusters[0].Related[0] = "mutated"
	assert.NotEqual(t, "mutated", SkillClusters()[0].Related[0])
}

func TestCliches_ReturnsCopy(t *testing.T) {
	c := Cliches()
	c[0] = "mutated"
	assert.Equal(t, "team player", Cliches()[0])
}

func TestSynonyms(t *testing.T) {
	assert.ElementsMatch(t, []string{"js", "ecmascript"}, Synonyms("JavaScript"))
	assert.ElementsMatch(t, []string{"kubernetes"}, Synonyms("k8s"))
	assert.Nil(t, Synonyms("cobol"))
}

func TestUnsafeGlyphs(t *testing.T) {
	assert.True(t, strings.ContainsRune(UnsafeGlyphs(), '★'))
	assert.False(t, strings.ContainsRune(UnsafeGlyphs(), '•'))
}
