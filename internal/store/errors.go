package store

import (
	"errors"
	"fmt"
)

// Base error taxonomy. Every domain failure returned by a repository wraps
// exactly one of these, so callers can classify with [errors.Is] without
// enumerating the specific sentinels below.
var (
	// ErrValidation is the base error for values outside a declared
	// enumeration or range.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is the base error for uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is the base error for absent referenced entities.
	ErrNotFound = errors.New("not found")

	// ErrState is the base error for illegal lifecycle transitions.
	ErrState = errors.New("illegal state transition")

	// ErrAuth is the base error for credential mismatches.
	ErrAuth = errors.New("authentication failed")
)

// Specific sentinel errors returned by repository methods. Callers should
// use [errors.Is] against either the specific sentinel or its base.
var (
	// ErrInvalidRole is returned when a user role is not one of the
	// closed set (admin, marketing, analyst).
	ErrInvalidRole = fmt.Errorf("%w: unknown role", ErrValidation)

	// ErrInvalidUserStatus is returned when a user status is not one of
	// active, inactive.
	ErrInvalidUserStatus = fmt.Errorf("%w: unknown user status", ErrValidation)

	// ErrInvalidRating is returned when a review rating is present but
	// outside [1,5].
	ErrInvalidRating = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)

	// ErrInvalidSentiment is returned when a sentiment label is not one of
	// positive, negative, neutral.
	ErrInvalidSentiment = fmt.Errorf("%w: unknown sentiment", ErrValidation)

	// ErrInvalidAnalysisStatus is returned when an analysis status value is
	// not one of the closed set.
	ErrInvalidAnalysisStatus = fmt.Errorf("%w: unknown analysis status", ErrValidation)

	// ErrDuplicateUser is returned when a username or email is already
	// taken. The two unique constraints are reported together, matching
	// the behaviour callers present to end users.
	ErrDuplicateUser = fmt.Errorf("%w: username or email already exists", ErrConflict)

	// ErrUserNotFound is returned when a user lookup or a required user
	// reference matches no row.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrReviewNotFound is returned when a review lookup matches no row.
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)

	// ErrAnalysisNotFound is returned when an analysis-job lookup matches
	// no row.
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)

	// ErrWrongPassword is returned when the supplied credential does not
	// match the stored hash.
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrAuth)

	// ErrUserInactive is returned when the credentials match but the
	// account status is inactive.
	ErrUserInactive = fmt.Errorf("%w: account is inactive", ErrAuth)

	// ErrInvalidTransition is returned when an analysis-job status change
	// is not a forward move in the lifecycle.
	ErrInvalidTransition = fmt.Errorf("%w: analysis status moves forward only", ErrState)
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
