package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeExternalService, "api down")
	if !err.Retryable {
		t.Error("EXTERNAL_SERVICE_ERROR should be retryable")
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("audio file", "audio/talk.mp3")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["resource"] != "audio file" {
		t.Errorf("expected resource='audio file', got %v", err.Details["resource"])
	}
	if err.Details["path"] != "audio/talk.mp3" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
}

func TestAppError_NotFound_EmptyPath(t *testing.T) {
	err := NotFound("audio file", "")
	if _, ok := err.Details["path"]; ok {
		t.Error("expected no 'path' key in details when path is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("ffmpeg exited 1")
	err := New(ErrCodeTranscodeFailed, "conversion").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := SplitFailed(1, nil).WithDetails(map[string]any{"start_ms": 0})
	if err.Details["chunk"] != 1 {
		t.Errorf("expected chunk=1 to survive merge, got %v", err.Details["chunk"])
	}
	if err.Details["start_ms"] != 0 {
		t.Errorf("expected start_ms=0, got %v", err.Details["start_ms"])
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := Internal(nil).WithDetail("stage", "split")
	if err.Details["stage"] != "split" {
		t.Errorf("expected stage=split, got %v", err.Details["stage"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := TranscodeFailed("clip.aac", fmt.Errorf("bad header"))
	s := err.Error()
	if !strings.Contains(s, "TRANSCODE_FAILED") {
		t.Errorf("expected error string to contain code, got %q", s)
	}
	if !strings.Contains(s, "bad header") {
		t.Errorf("expected error string to contain cause, got %q", s)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		retryable bool
	}{
		{"InvalidInput", InvalidInput("choice", "not a number"), ErrCodeInvalidInput, false},
		{"UnsupportedFormat", UnsupportedFormat("a.xyz"), ErrCodeUnsupportedFormat, false},
		{"InvalidConfig", InvalidConfig("openai.api_key is required"), ErrCodeConfigInvalid, false},
		{"TranscodeFailed", TranscodeFailed("a.aac", nil), ErrCodeTranscodeFailed, false},
		{"ProbeFailed", ProbeFailed("a.mp3", nil), ErrCodeProbeFailed, false},
		{"SplitFailed", SplitFailed(0, nil), ErrCodeSplitFailed, false},
		{"ExternalServiceError", ExternalServiceError("openai", nil), ErrCodeExternalService, true},
		{"RateLimited", RateLimited("openai", nil), ErrCodeRateLimited, true},
		{"IOError", IOError("write", "results/a.txt", nil), ErrCodeIO, false},
		{"Internal", Internal(nil), ErrCodeInternal, false},
		{"Canceled", Canceled(context.Canceled), ErrCodeCanceled, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestAppError_IsAppError_Success(t *testing.T) {
	appErr := NotFound("x", "")
	if !IsAppError(appErr) {
		t.Error("expected IsAppError to return true for AppError")
	}

	wrapped := fmt.Errorf("wrapped: %w", appErr)
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to return true for wrapped AppError")
	}

	if IsAppError(fmt.Errorf("plain error")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}

func TestIs_MatchesCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("run: %w", TranscodeFailed("clip.aac", nil))
	if !Is(err, ErrCodeTranscodeFailed) {
		t.Error("expected Is to match TRANSCODE_FAILED")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("expected Is not to match NOT_FOUND")
	}
	if Is(nil, ErrCodeInternal) {
		t.Error("expected Is(nil) to be false")
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrap_AppErrorPassthrough(t *testing.T) {
	orig := NotFound("item", "1")
	if got := Wrap(orig); got != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}
}

func TestWrap_PlainError(t *testing.T) {
	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
