package domain

// Trigger is a named event kind a campaign opts into through its trigger set.
type Trigger string

const (
	// TriggerAppOpen fires when the app is opened or the home screen mounts.
	TriggerAppOpen Trigger = "APP_OPEN"
	// TriggerProfileUpdated is set as a pending trigger after a profile edit.
	TriggerProfileUpdated Trigger = "PROFILE_UPDATED"
	// TriggerPostCreated is set as a pending trigger after the user publishes a post.
	TriggerPostCreated Trigger = "POST_CREATED"
)

// IsValid reports whether the trigger is one of the known event kinds.
func (t Trigger) IsValid() bool {
	switch t {
	case TriggerAppOpen, TriggerProfileUpdated, TriggerPostCreated:
		return true
	default:
		return false
	}
}

func (t Trigger) String() string {
	return string(t)
}
