package domain

import "time"

type InterviewID string

// Speaker identifies who produced a turn. The set is closed: an interview
// only ever has the interviewer and the candidate.
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

type Timestamp = time.Time
