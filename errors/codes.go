package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN
	ErrorCode_AUTH_OTP_INVALID
	ErrorCode_AUTH_OTP_EXPIRED
	ErrorCode_AUTH_USER_NOT_FOUND

	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_ACCESS_DENIED
	ErrorCode_TRANSCRIPT_NOT_FOUND
	ErrorCode_TRANSCRIPT_EMPTY
	ErrorCode_SUMMARY_NOT_FOUND

	ErrorCode_TASK_NOT_FOUND
	ErrorCode_TASK_INVALID_STATUS

	ErrorCode_AI_ANALYSIS_FAILED
	ErrorCode_AI_SERVICE_UNAVAILABLE

	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED

	ErrorCode_DB_QUERY_FAILED

	ErrorCode_INVALID_PAYLOAD
	ErrorCode_HTTP_OK
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                    "UNKNOWN",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN: "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_OTP_INVALID:           "AUTH_OTP_INVALID",
	ErrorCode_AUTH_OTP_EXPIRED:           "AUTH_OTP_EXPIRED",
	ErrorCode_AUTH_USER_NOT_FOUND:        "AUTH_USER_NOT_FOUND",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_ACCESS_DENIED:      "MEETING_ACCESS_DENIED",
	ErrorCode_TRANSCRIPT_NOT_FOUND:       "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_EMPTY:           "TRANSCRIPT_EMPTY",
	ErrorCode_SUMMARY_NOT_FOUND:          "SUMMARY_NOT_FOUND",
	ErrorCode_TASK_NOT_FOUND:             "TASK_NOT_FOUND",
	ErrorCode_TASK_INVALID_STATUS:        "TASK_INVALID_STATUS",
	ErrorCode_AI_ANALYSIS_FAILED:         "AI_ANALYSIS_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_HTTP_OK:                    "OK",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
