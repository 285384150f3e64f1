package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidOTP      = errors.New("invalid verification code")
	ErrOTPExpired      = errors.New("verification code expired")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrSessionNotFound = errors.New("session not found")
)

// Meeting errors
var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrTranscriptEmpty    = errors.New("transcript contains no parseable dialogue")
	ErrSummaryNotFound    = errors.New("meeting not analyzed yet")
	ErrNotMeetingOwner    = errors.New("user is not the meeting owner")
)

// Task errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNotTaskAssignee   = errors.New("user is not the task assignee")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// AI errors
var (
	ErrAIUnavailable = errors.New("ai service unavailable")
)
