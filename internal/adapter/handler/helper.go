package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/errors"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/http/middleware"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// handleSuccess writes a standardized success response
func handleSuccess(c echo.Context, logger *zap.Logger, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// handleError centralizes error handling and logging. Usecase sentinel
// errors are mapped to AppError first so every failure leaves through the
// same envelope.
func handleError(c echo.Context, logger *zap.Logger, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = mapUsecaseError(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
	})
}

// mapUsecaseError converts usecase sentinel errors into transport errors
func mapUsecaseError(err error) errors.AppError {
	switch {
	case stdErrors.Is(err, usecaseerrors.ErrInvalidOTP):
		return errors.ErrInvalidOTP()
	case stdErrors.Is(err, usecaseerrors.ErrOTPExpired):
		return errors.ErrOTPExpired()
	case stdErrors.Is(err, usecaseerrors.ErrTokenInvalid),
		stdErrors.Is(err, usecaseerrors.ErrTokenExpired):
		return errors.ErrInvalidToken()
	case stdErrors.Is(err, usecaseerrors.ErrSessionNotFound):
		return errors.ErrInvalidRefreshToken()
	case stdErrors.Is(err, usecaseerrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound("")
	case stdErrors.Is(err, usecaseerrors.ErrNotMeetingOwner):
		return errors.ErrMeetingAccessDenied("")
	case stdErrors.Is(err, usecaseerrors.ErrTranscriptNotFound):
		return errors.ErrTranscriptNotFound("")
	case stdErrors.Is(err, usecaseerrors.ErrTranscriptEmpty):
		return errors.ErrTranscriptEmpty()
	case stdErrors.Is(err, usecaseerrors.ErrSummaryNotFound):
		return errors.ErrSummaryNotFound("")
	case stdErrors.Is(err, usecaseerrors.ErrTaskNotFound):
		return errors.ErrTaskNotFound("")
	case stdErrors.Is(err, usecaseerrors.ErrNotTaskAssignee):
		return errors.ErrPermissionDenied("modify task")
	case stdErrors.Is(err, usecaseerrors.ErrInvalidTaskStatus):
		return errors.ErrTaskInvalidStatus("")
	case stdErrors.Is(err, usecaseerrors.ErrAIUnavailable):
		return errors.ErrAIServiceUnavailable(err)
	case stdErrors.Is(err, usecaseerrors.ErrNotFound):
		return errors.ErrNotFound("resource")
	case stdErrors.Is(err, usecaseerrors.ErrInvalidInput):
		return errors.ErrInvalidPayload()
	default:
		return errors.ErrInternal(err)
	}
}

// bindAndValidate decodes and validates a request payload
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// requireSession reads the authenticated session set by the middleware
func requireSession(c echo.Context) (*auth.Session, error) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return nil, errors.ErrUnauthenticated()
	}
	return sess, nil
}
