package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargeting_AgeMinOnly(t *testing.T) {
	tgt := Targeting{AgeMin: intPtr(18)}

	assert.True(t, tgt.Matches(UserProfile{Age: KnownAge(18)}))
	assert.True(t, tgt.Matches(UserProfile{Age: KnownAge(99)}))
	assert.False(t, tgt.Matches(UserProfile{Age: KnownAge(17)}))
}

func TestTargeting_AgeMaxOnly(t *testing.T) {
	tgt := Targeting{AgeMax: intPtr(22)}

	assert.True(t, tgt.Matches(UserProfile{Age: KnownAge(22)}))
	assert.False(t, tgt.Matches(UserProfile{Age: KnownAge(22.5)}))
}

func TestTargeting_UnknownAgeSatisfiesBounds(t *testing.T) {
	tgt := Targeting{AgeMin: intPtr(18), AgeMax: intPtr(20)}

	assert.True(t, tgt.Matches(UserProfile{}))
	assert.True(t, tgt.Matches(UserProfile{Age: ParseAge("twenty")}))
}

func TestTargeting_EmptyPrefecturesMatchesUnknownRegion(t *testing.T) {
	tgt := Targeting{}
	assert.True(t, tgt.Matches(UserProfile{}))

	tgt.Prefectures = []string{"Tokyo"}
	assert.False(t, tgt.Matches(UserProfile{}))
}

func TestTargeting_GradeRequiresKnownGrade(t *testing.T) {
	tgt := Targeting{Grades: []string{""}}
	assert.False(t, tgt.Matches(UserProfile{}))
}

func TestTargeting_HasTargeting(t *testing.T) {
	assert.False(t, Targeting{}.HasTargeting())
	assert.True(t, Targeting{Prefectures: []string{"Tokyo"}}.HasTargeting())
	assert.True(t, Targeting{Tags: []string{"music"}}.HasTargeting())
	assert.True(t, Targeting{Grades: []string{"1"}}.HasTargeting())
	assert.True(t, Targeting{AgeMin: intPtr(0)}.HasTargeting())
	assert.True(t, Targeting{AgeMax: intPtr(30)}.HasTargeting())
}
