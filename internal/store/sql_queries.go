package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Column sets shared by the repositories. Order matters: every scan helper
// in the repository files follows the order declared here.
var (
	userColumns = []string{
		"id", "username", "email", "password_hash", "full_name", "role",
		"department", "status", "created_at", "last_login", "avatar_color",
	}

	reviewColumns = []string{
		"id", "user_id", "product_name", "review_text", "rating", "sentiment",
		"category", "is_fake", "detection_confidence", "source", "created_at",
		"analyzed_at", "confidence_reason",
	}

	activityColumns = []string{
		"id", "user_id", "activity_type", "description", "ip_address", "created_at",
	}

	analysisColumns = []string{
		"id", "user_id", "analysis_type", "parameters", "result", "status",
		"started_at", "completed_at", "execution_time",
	}
)

// buildListUsersQuery builds the filtered users listing, newest first.
func buildListUsersQuery(sb sq.StatementBuilderType, filter UserFilter) (string, []any, error) {
	q := sb.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC")

	if filter.Role != "" {
		q = q.Where(sq.Eq{"role": filter.Role})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}

	return q.ToSql()
}

// buildListReviewsQuery builds the filtered reviews listing, newest first.
func buildListReviewsQuery(sb sq.StatementBuilderType, filter ReviewFilter) (string, []any, error) {
	q := sb.Select(reviewColumns...).
		From("reviews").
		OrderBy("created_at DESC")

	if filter.Sentiment != "" {
		q = q.Where(sq.Eq{"sentiment": filter.Sentiment})
	}
	if filter.IsFake != nil {
		q = q.Where(sq.Eq{"is_fake": *filter.IsFake})
	}
	if filter.UserID != nil {
		q = q.Where(sq.Eq{"user_id": *filter.UserID})
	}

	return q.ToSql()
}

// buildListJobsQuery builds the filtered analyses listing, newest first.
func buildListJobsQuery(sb sq.StatementBuilderType, filter AnalysisFilter) (string, []any, error) {
	q := sb.Select(analysisColumns...).
		From("analyses").
		OrderBy("started_at DESC")

	if filter.UserID != 0 {
		q = q.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}

	return q.ToSql()
}
