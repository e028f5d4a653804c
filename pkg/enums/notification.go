package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationTypeBookingCreated  NotificationType = "booking_created"
	NotificationTypeQuoteSubmitted  NotificationType = "quote_submitted"
	NotificationTypeStatusChanged   NotificationType = "status_changed"
	NotificationTypePaymentSettled  NotificationType = "payment_settled"
	NotificationTypeDisputeOpened   NotificationType = "dispute_opened"
	NotificationTypeDisputeResolved NotificationType = "dispute_resolved"
	NotificationTypeVerification    NotificationType = "verification_decided"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeBookingCreated,
	NotificationTypeQuoteSubmitted,
	NotificationTypeStatusChanged,
	NotificationTypePaymentSettled,
	NotificationTypeDisputeOpened,
	NotificationTypeDisputeResolved,
	NotificationTypeVerification,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
