package services

// Typed failure codes carried on workflow results. These are expected
// outcomes of racing or stale clients, not errors; the transport layer maps
// them onto status codes.
const (
	CodeTaskProgressNotFound    = "TASK_PROGRESS_NOT_FOUND"
	CodeChallengeAnswerNotFound = "CHALLENGE_ANSWER_NOT_FOUND"
	CodeChallengeNotFound       = "CHALLENGE_NOT_FOUND"
	CodeClueNotFound            = "CLUE_NOT_FOUND"
	CodeClueAlreadyOpened       = "CLUE_ALREADY_OPENED"
	CodeChallengeNotInProgress  = "CHALLENGE_NOT_IN_PROGRESS"
	CodeTaskAlreadyCompleted    = "TASK_ALREADY_COMPLETED"
	CodeChallengeAlreadyStarted = "CHALLENGE_ALREADY_STARTED"
	CodeLockUnavailable         = "LOCK_UNAVAILABLE"
)
