// File: utils/constants.go
package utils

import "time"

// CalendarLockPrefix is the Redis key prefix for per-tutor calendar leases.
const CalendarLockPrefix = "schedule:lock:"

// CalendarLockTTL bounds how long a reconciliation call may hold a tutor's
// calendar before the lease expires on its own.
const CalendarLockTTL = 10 * time.Second

// PushTokenPrefix is the Redis key prefix under which the device-management
// side registers push tokens.
const PushTokenPrefix = "push:token:"

// CalendarLockKey builds the lease key for one tutor's calendar.
func CalendarLockKey(tutorID string) string {
	return CalendarLockPrefix + tutorID
}

// PushTokenKey builds the push token key for a recipient.
func PushTokenKey(recipientID string) string {
	return PushTokenPrefix + recipientID
}
