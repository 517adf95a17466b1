package lifted

import "fmt"

// FormatClock renders whole seconds as MM:SS. Minutes keep growing past 99
// rather than rolling into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
