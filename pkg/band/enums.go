package band

import "fmt"

// NotificationType selects the vibration/notification style written to
// the alert characteristic.
type NotificationType byte

const (
	// NotifySingle is one short vibration.
	NotifySingle NotificationType = 1

	// NotifyContinuous vibrates until dismissed.
	NotifyContinuous NotificationType = 2

	// NotifyInvisible triggers the notification without vibration.
	NotifyInvisible NotificationType = 3

	// NotifyLike is the "like" pattern.
	NotifyLike NotificationType = 0xFE
)

// String returns the notification type name.
func (n NotificationType) String() string {
	switch n {
	case NotifySingle:
		return "Single"
	case NotifyContinuous:
		return "Continuous"
	case NotifyInvisible:
		return "Invisible"
	case NotifyLike:
		return "Like"
	default:
		return fmt.Sprintf("NotificationType(%d)", byte(n))
	}
}
