package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrProfileAlreadyExists is returned when a user already has a profile.
	ErrProfileAlreadyExists = errors.New("profile already exists")

	// ErrProfileNotFound is returned when a user has no profile row.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrUnknownProfileField is returned when a profile document carries a key
	// that has no column.
	ErrUnknownProfileField = errors.New("unknown profile field")

	// ErrPlaintextProfileField is returned when a sensitive field reaches the
	// profile table unencrypted. The write is refused.
	ErrPlaintextProfileField = errors.New("sensitive profile field is not encrypted")

	// ErrProfileEncryption is returned by the encrypted profile repository
	// when a write is aborted because a field could not be encrypted.
	ErrProfileEncryption = errors.New("profile could not be encrypted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
