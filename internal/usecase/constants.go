package usecase

import "time"

const (
	// DefaultListLimit is applied when a caller passes no limit.
	DefaultListLimit = 20

	// MaxListLimit caps list queries.
	MaxListLimit = 100

	// RecentActivityCount is the number of transactions shown per user
	// in the activity report.
	RecentActivityCount = 5

	// recentActivityFetch is how many transactions are pulled per
	// account side before merging.
	recentActivityFetch = 10

	// activityCacheTTL bounds the staleness of the cached activity
	// report. The fan-out over accounts is the expensive reporting
	// path, so results are reused briefly.
	activityCacheTTL = 30 * time.Second

	// VerifyTokenTTL is the validity window of an email verification
	// token.
	VerifyTokenTTL = 24 * time.Hour

	// ResetTokenTTL is the validity window of a password reset token.
	ResetTokenTTL = time.Hour
)
