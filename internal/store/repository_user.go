package store

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the SQL-backed implementation of [UserRepository].
// It owns the "users" table plus the cross-table cascade applied on account
// deletion.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// scanUser reads one users row in the [userColumns] order.
func scanUser(s rowScanner) (models.User, error) {
	var (
		u          models.User
		department sql.NullString
		lastLogin  sql.NullTime
		avatar     sql.NullString
	)

	err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&department, &u.Status, &u.CreatedAt, &lastLogin, &avatar,
	)
	if err != nil {
		return models.User{}, err
	}

	u.Department = department.String
	u.AvatarColor = avatar.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}

	return u, nil
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The role must be one of the closed set; the status defaults to active;
// the avatar color defaults to the role palette. A user_creation activity
// is written in the same transaction so the audit log never misses an
// account.
//
// Error handling:
//   - invalid role/status or empty username/email → wrapped [ErrValidation]
//   - unique-constraint violation on username or email → [ErrDuplicateUser]
//   - any other driver-level error → wrapped low-level error
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" {
		return models.User{}, fmt.Errorf("%w: username and email are required", ErrValidation)
	}
	if !user.Role.Valid() {
		return models.User{}, ErrInvalidRole
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if !user.Status.Valid() {
		return models.User{}, ErrInvalidUserStatus
	}
	if user.AvatarColor == "" {
		user.AvatarColor = models.DefaultAvatarColor(user.Role)
	}
	user.CreatedAt = time.Now().UTC()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := r.builder().
		Insert("users").
		Columns("username", "email", "password_hash", "full_name", "role", "department", "status", "created_at", "avatar_color").
		Values(user.Username, user.Email, user.PasswordHash, user.FullName, user.Role, user.Department, user.Status, user.CreatedAt, user.AvatarColor).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to build insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("username", user.Username).
			Msg("failed to insert user")

		switch {
		case r.dialect.IsUniqueViolation(err):
			return models.User{}, ErrDuplicateUser
		case r.dialect.IsCheckViolation(err):
			return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	query, args, err = r.builder().
		Insert("activities").
		Columns("user_id", "activity_type", "description", "created_at").
		Values(user.ID, "user_creation", fmt.Sprintf("account created: %s", user.Username), user.CreatedAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to build activity query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Int64("user_id", user.ID).
			Msg("failed to log user_creation activity")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to commit transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "userRepository.CreateUser").
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user created")

	return user, nil
}

// Authenticate matches a username against its stored password hash.
//
// On success last_login is set to the current time and the returned user
// carries the fresh value. The hash comparison is constant-time; the stored
// credential format is the caller's concern.
//
// Error handling:
//   - no such username → [ErrUserNotFound]
//   - hash mismatch → [ErrWrongPassword]
//   - account inactive → [ErrUserInactive]
func (r *userRepository) Authenticate(ctx context.Context, username, passwordHash string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := r.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(passwordHash)) != 1 {
		log.Warn().
			Str("func", "userRepository.Authenticate").
			Str("username", username).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if user.Status != models.StatusActive {
		log.Warn().
			Str("func", "userRepository.Authenticate").
			Str("username", username).
			Msg("inactive account refused")
		return models.User{}, ErrUserInactive
	}

	if err = r.UpdateLastLogin(ctx, user.ID); err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	user.LastLogin = &now

	return user, nil
}

// FindUserByUsername retrieves the account with the given username.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "username", username)
}

// FindUserByID retrieves the account with the given identifier.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "id", id)
}

func (r *userRepository) findUser(ctx context.Context, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(userColumns...).
		From("users").
		Where(fmt.Sprintf("%s = ?", column), value).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.findUser").Msg("failed to build select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "userRepository.findUser").Str("column", column).Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// ListUsers returns accounts matching the filter, newest first.
func (r *userRepository) ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdateStatus sets the account status. Returns [ErrInvalidUserStatus] for
// values outside the closed set and [ErrUserNotFound] when no row matches.
func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status models.UserStatus) error {
	if !status.Valid() {
		return ErrInvalidUserStatus
	}

	return r.updateUserColumn(ctx, id, "status", status)
}

// UpdateLastLogin stamps last_login with the current time.
func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.updateUserColumn(ctx, id, "last_login", time.Now().UTC())
}

// UpdatePasswordHash replaces the stored credential. Used by the rehash
// tool when upgrading legacy digests to bcrypt.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return r.updateUserColumn(ctx, id, "password_hash", passwordHash)
}

func (r *userRepository) updateUserColumn(ctx context.Context, id int64, column string, value any) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Update("users").
		Set(column, value).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.updateUserColumn").Str("column", column).Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.updateUserColumn").
			Int64("user_id", id).
			Str("column", column).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes an account and everything that depends on it in one
// transaction: activities and analyses are deleted, reviews are detached by
// nulling their user_id, then the user row itself is removed.
//
// Returns [ErrUserNotFound] when the user does not exist; in that case the
// transaction is rolled back and nothing is changed.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	steps := []struct {
		name    string
		builder sq.Sqlizer
	}{
		{"delete activities", r.builder().Delete("activities").Where(sq.Eq{"user_id": id})},
		{"delete analyses", r.builder().Delete("analyses").Where(sq.Eq{"user_id": id})},
		{"detach reviews", r.builder().Update("reviews").Set("user_id", nil).Where(sq.Eq{"user_id": id})},
	}

	for _, step := range steps {
		query, args, buildErr := step.builder.ToSql()
		if buildErr != nil {
			log.Err(buildErr).Str("func", "userRepository.DeleteUser").Str("step", step.name).Msg("failed to build query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "userRepository.DeleteUser").
				Int64("user_id", id).
				Str("step", step.name).
				Msg("cascade step failed")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}
	}

	query, args, err := r.builder().Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Int64("user_id", id).Msg("failed to delete user row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "userRepository.DeleteUser").
		Int64("user_id", id).
		Msg("user deleted with cascade")

	return nil
}

// UserStats returns the total account count plus a per-role breakdown.
func (r *userRepository) UserStats(ctx context.Context) (models.UserStats, error) {
	log := logger.FromContext(ctx)

	stats := models.UserStats{UsersByRole: make(map[models.Role]int64)}

	query, args, err := r.builder().Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&stats.TotalUsers); err != nil {
		log.Err(err).Str("func", "userRepository.UserStats").Msg("failed to count users")
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	query, args, err = r.builder().
		Select("role", "COUNT(*)").
		From("users").
		GroupBy("role").
		ToSql()
	if err != nil {
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UserStats").Msg("failed to execute role count query")
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			role  models.Role
			count int64
		)
		if scanErr := rows.Scan(&role, &count); scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.UserStats").Msg("failed to scan role count")
			return models.UserStats{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		stats.UsersByRole[role] = count
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return stats, nil
}
