package domain

import "errors"

var (
	// ErrCaptureTimeout means no speech started within the listening window.
	ErrCaptureTimeout = errors.New("no speech detected within listening window")

	// ErrMissingOfflineModel means the offline recognition model is not installed.
	ErrMissingOfflineModel = errors.New("offline recognition model not found")
)

type RecognitionStatus string

const (
	RecognitionOK          RecognitionStatus = "recognized"
	RecognitionNoMatch     RecognitionStatus = "no_match"
	RecognitionUnavailable RecognitionStatus = "unavailable"
)

// Recognition is the outcome of an online recognition request.
type Recognition struct {
	Status RecognitionStatus
	Text   string
	Reason string
}

func Recognized(text string) Recognition {
	return Recognition{Status: RecognitionOK, Text: text}
}

func NoMatch() Recognition {
	return Recognition{Status: RecognitionNoMatch}
}

func Unavailable(reason string) Recognition {
	return Recognition{Status: RecognitionUnavailable, Reason: reason}
}
