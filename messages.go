package lifted

import "math/rand/v2"

const (
	RestCompleteTitle     = "Rest Complete"
	RestCompleteLargeBody = "Your rest period is complete. Time to get back to your workout!"
	RestCompleteSummary   = "Workout timer"
	TestNotificationTitle = "Test Notification"
)

var restCompleteMessages = []string{
	"Time to get back to your workout! 💪",
	"Rest complete! Let's crush the next set! 🔥",
	"Break's over - time to build that strength! 💯",
	"Ready to continue? Your body is waiting! 🏋️",
	"You've rested enough - back to making progress! 🚀",
	"Rest complete! Remember, consistency is key! ⏱️",
	"Your muscles are ready for the next challenge! 🏆",
	"Break time's up! Keep pushing your limits! 🙌",
	"Get ready for your next set! You're doing great! 👊",
	"Time to get back to work! Every rep counts! 💪",
}

func RandomRestMessage() string {
	return restCompleteMessages[rand.IntN(len(restCompleteMessages))]
}

// RestChannel is the channel rest notifications are posted to on platforms
// that group notifications.
func RestChannel() Channel {
	return Channel{
		ID:          DefaultRestChannelID,
		Name:        "Workout Timer",
		Description: "Notifications for workout rest timers",
		Importance:  5,
		Visibility:  1,
		Sound:       "default",
		Vibration:   true,
		Lights:      true,
		LightColor:  "#FF0000",
	}
}

// MinimalRestChannel is tried when the platform rejects RestChannel.
func MinimalRestChannel() Channel {
	return Channel{
		ID:          DefaultRestChannelID,
		Name:        "Workout Timer",
		Description: "Workout notifications",
		Importance:  4,
	}
}
