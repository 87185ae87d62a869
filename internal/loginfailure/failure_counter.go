package loginfailure

type Counter interface {
	IsUserBlocked(username string) bool
	RecordFailure(username string) int
	ClearFailures(username string)
	Unblock(username string) bool
}
