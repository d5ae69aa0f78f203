package service

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrBackendUnavailable = errors.New("backend unavailable")

	ErrLimitReached      = errors.New("appointment limit reached for the current cycle")
	ErrFeatureLocked     = errors.New("feature not available on the current plan")
	ErrProfessionalLimit = errors.New("professional limit reached for the current plan")
	ErrUnknownPlan       = errors.New("unknown plan")

	ErrCompanyNotFound      = errors.New("company not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrServiceNotFound      = errors.New("service not found")

	ErrInvalidTransition       = errors.New("status change not allowed")
	ErrStatusConflict          = errors.New("appointment status changed concurrently")
	ErrAppointmentClosed       = errors.New("appointment is no longer active")
	ErrProfessionalUnavailable = errors.New("professional is not available")
	ErrServiceInactive         = errors.New("service is inactive")
)

// storeErr translates a repository error. Missing rows become notFound,
// connectivity failures wrap ErrBackendUnavailable, anything else is passed
// through with op for context.
func storeErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// database/sql does not export its closed-pool error
	return strings.Contains(err.Error(), "database is closed")
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
