package checkout

import "log/slog"

// ServiceOption configures a checkout Service.
type ServiceOption func(*Service)

// WithReturnURL sets the URL the browser is redirected to after a
// successful signup. Defaults to "/".
func WithReturnURL(url string) ServiceOption {
	return func(s *Service) {
		if url != "" {
			s.returnURL = url
		}
	}
}

// WithProcessingErrorHandler replaces the default error handler, which logs
// the failure. The signup still terminates with ErrPaymentProcessor.
func WithProcessingErrorHandler(fn ProcessingErrorHandler) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.onError = fn
		}
	}
}

// WithLogger sets the service logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}
