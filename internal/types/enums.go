package types

type AttemptStatus string

const (
	AttemptSucceeded AttemptStatus = "succeeded"
	AttemptFailed    AttemptStatus = "failed"
	AttemptTimedOut  AttemptStatus = "timed-out"
)

type InstallState string

const (
	InstallStatePending    InstallState = "pending"
	InstallStateAttempting InstallState = "attempting"
	InstallStateSucceeded  InstallState = "succeeded"
	InstallStateFailed     InstallState = "failed"
)
