package domain

import "slices"

// Targeting describes who should see a campaign. Every dimension is
// optional: an empty set or a nil bound leaves that dimension unconstrained.
type Targeting struct {
	Prefectures []string `json:"prefectures,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Grades      []string `json:"grades,omitempty"`
	AgeMin      *int     `json:"age_min,omitempty"`
	AgeMax      *int     `json:"age_max,omitempty"`
}

// HasTargeting reports whether any dimension narrows the audience.
func (t Targeting) HasTargeting() bool {
	return len(t.Prefectures) > 0 ||
		len(t.Tags) > 0 ||
		len(t.Grades) > 0 ||
		t.AgeMin != nil ||
		t.AgeMax != nil
}

// Matches reports whether user satisfies every targeting dimension.
func (t Targeting) Matches(user UserProfile) bool {
	if len(t.Prefectures) > 0 && (user.Prefecture == "" || !slices.Contains(t.Prefectures, user.Prefecture)) {
		return false
	}
	if len(t.Grades) > 0 && (user.Grade == "" || !slices.Contains(t.Grades, user.Grade)) {
		return false
	}
	if len(t.Tags) > 0 {
		match := false
		for _, v := range user.Tags {
			if slices.Contains(t.Tags, v) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return t.matchesAge(user.Age)
}

// matchesAge checks each present bound independently. An unknown age
// satisfies both bounds.
func (t Targeting) matchesAge(age Age) bool {
	value, ok := age.Value()
	if !ok {
		return true
	}
	if t.AgeMin != nil && value < float64(*t.AgeMin) {
		return false
	}
	if t.AgeMax != nil && value > float64(*t.AgeMax) {
		return false
	}
	return true
}
