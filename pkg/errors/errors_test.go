package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestBatchErrorsSurviveLineWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"reference kind", New(ErrCodeInvalidReferenceKind, "unsupported reference: %s", "ftp://x"), ErrCodeInvalidReferenceKind},
		{"repository url", New(ErrCodeRepositoryURLNotFound, "package %s has no repository", "left-pad"), ErrCodeRepositoryURLNotFound},
		{"malformed url", New(ErrCodeMalformedURL, "missing repository in %s", "https://github.com/o"), ErrCodeMalformedURL},
		{"arity", New(ErrCodeArityMismatch, "want 5 scores, got %d", 4), ErrCodeArityMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Runner.Stream prefixes the failing line number.
			wrapped := fmt.Errorf("line %d: %w", 3, tt.err)
			if !Is(wrapped, tt.code) {
				t.Errorf("Is(%v, %s) = false", wrapped, tt.code)
			}
			if got := GetCode(wrapped); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if Is(wrapped, ErrCodeNetwork) {
				t.Errorf("Is(%v, NETWORK_ERROR) = true", wrapped)
			}
		})
	}
}

func TestWrapProfileError(t *testing.T) {
	_, cause := os.ReadFile("/nonexistent/profile.toml")
	err := fmt.Errorf("load profile: %w", Wrap(ErrCodeInvalidProfile, cause, "read %s", "profile.toml"))

	if !Is(err, ErrCodeInvalidProfile) {
		t.Errorf("Is(INVALID_PROFILE) = false for %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("cause should stay reachable through errors.Is")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errors.As(*Error) = false")
	}
	want := "INVALID_PROFILE: read profile.toml: " + cause.Error()
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestRateLimitedBehindNetworkError(t *testing.T) {
	network := errors.New("network error")
	rl := &RateLimitedError{RetryAfter: 60}
	// The shared HTTP client reports quota exhaustion this way.
	err := fmt.Errorf("github o/r/contributors: %w", fmt.Errorf("%w: %w", network, rl))

	if !errors.Is(err, network) {
		t.Error("errors.Is(network) = false")
	}
	var got *RateLimitedError
	if !errors.As(err, &got) || got.RetryAfter != 60 {
		t.Fatalf("errors.As(*RateLimitedError) = %v, %+v", got != nil, got)
	}
	if got.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %v, want %v", got.Code(), ErrCodeRateLimited)
	}
	if got := (&RateLimitedError{}).Error(); got != "rate limited" {
		t.Errorf("Error() without RetryAfter = %q", got)
	}
	if GetCode(err) != "" {
		t.Errorf("GetCode() = %q, want empty for an uncoded chain", GetCode(err))
	}
}

// serve reports GetCode and UserMessage as the JSON error body.
func TestErrorResponseFields(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{
			name:     "coded",
			err:      fmt.Errorf("resolve: %w", New(ErrCodeRepositoryURLNotFound, "package %q has no repository", "left-pad")),
			wantCode: ErrCodeRepositoryURLNotFound,
			wantMsg:  `package "left-pad" has no repository`,
		},
		{
			name:     "invalid input",
			err:      ValidateURL(""),
			wantCode: ErrCodeInvalidInput,
			wantMsg:  "URL cannot be empty",
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("score: %w", context.DeadlineExceeded),
			wantCode: "",
			wantMsg:  "score: context deadline exceeded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	if Is(nil, ErrCodeInvalidInput) || GetCode(nil) != "" {
		t.Error("nil error must carry no code")
	}
}
