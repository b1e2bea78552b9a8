package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func openCampaign() Campaign {
	return Campaign{
		ID:       1,
		IsActive: true,
		Triggers: []Trigger{TriggerAppOpen},
	}
}

func TestEligible(t *testing.T) {
	user := UserProfile{Prefecture: "Tokyo", Tags: []string{"music"}, Grade: "2", Age: KnownAge(20)}

	tests := []struct {
		name    string
		modify  func(c *Campaign)
		trigger Trigger
		want    bool
	}{
		{name: "open campaign", modify: func(c *Campaign) {}, trigger: TriggerAppOpen, want: true},
		{name: "inactive", modify: func(c *Campaign) { c.IsActive = false }, trigger: TriggerAppOpen, want: false},
		{name: "trigger not opted in", modify: func(c *Campaign) {}, trigger: TriggerProfileUpdated, want: false},
		{
			name: "quota left",
			modify: func(c *Campaign) {
				c.MaxDisplayCount = int64Ptr(5)
				c.DisplayCount = 4
			},
			trigger: TriggerAppOpen,
			want:    true,
		},
		{
			name: "quota exhausted",
			modify: func(c *Campaign) {
				c.MaxDisplayCount = int64Ptr(5)
				c.DisplayCount = 5
			},
			trigger: TriggerAppOpen,
			want:    false,
		},
		{
			name:    "region mismatch",
			modify:  func(c *Campaign) { c.Targeting.Prefectures = []string{"Osaka"} },
			trigger: TriggerAppOpen,
			want:    false,
		},
		{
			name:    "region match",
			modify:  func(c *Campaign) { c.Targeting.Prefectures = []string{"Osaka", "Tokyo"} },
			trigger: TriggerAppOpen,
			want:    true,
		},
		{
			name:    "tag intersection",
			modify:  func(c *Campaign) { c.Targeting.Tags = []string{"sports", "music"} },
			trigger: TriggerAppOpen,
			want:    true,
		},
		{
			name:    "no tag intersection",
			modify:  func(c *Campaign) { c.Targeting.Tags = []string{"sports"} },
			trigger: TriggerAppOpen,
			want:    false,
		},
		{
			name:    "grade mismatch",
			modify:  func(c *Campaign) { c.Targeting.Grades = []string{"3"} },
			trigger: TriggerAppOpen,
			want:    false,
		},
		{
			name:    "age above max",
			modify:  func(c *Campaign) { c.Targeting.AgeMax = intPtr(19) },
			trigger: TriggerAppOpen,
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := openCampaign()
			tt.modify(&c)
			assert.Equal(t, tt.want, Eligible(c, tt.trigger, user))
		})
	}
}

func TestEligible_ExhaustedNeverMatches(t *testing.T) {
	c := openCampaign()
	c.Triggers = []Trigger{TriggerAppOpen, TriggerProfileUpdated}
	c.MaxDisplayCount = int64Ptr(5)
	c.DisplayCount = 5

	for _, trigger := range []Trigger{TriggerAppOpen, TriggerProfileUpdated, TriggerPostCreated} {
		assert.False(t, Eligible(c, trigger, UserProfile{}))
		assert.False(t, Eligible(c, trigger, UserProfile{Prefecture: "Tokyo", Age: KnownAge(30)}))
	}
}

func TestCampaignRemaining(t *testing.T) {
	c := openCampaign()
	assert.Equal(t, int64(1000), c.Remaining(1000))

	c.MaxDisplayCount = int64Ptr(10)
	c.DisplayCount = 3
	assert.Equal(t, int64(7), c.Remaining(1000))

	c.DisplayCount = 12
	assert.Equal(t, int64(0), c.Remaining(1000))
}
