// Package errors provides the structured error type used across audioscribe.
//
// Every boundary that talks to something outside the process (ffmpeg, the
// speech-to-text API, the filesystem) returns an *AppError carrying a
// machine-readable code and the underlying cause. Callers branch on the code
// with Is rather than on error strings.
//
//	if apperrors.Is(err, apperrors.ErrCodeTranscodeFailed) {
//	    // abort the run, cleanup still runs
//	}
package errors
