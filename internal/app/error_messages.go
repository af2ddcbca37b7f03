// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The reviewintel Authors

// Package app contains shared application-layer constants used across the
// reviewintel server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSONProvided is returned when the request body cannot be
	// decoded as JSON.
	MsgInvalidJSONProvided = "Invalid JSON was passed"

	// MsgInvalidLoginPassword is returned when the supplied username/password
	// combination does not match an active account. Unknown usernames get
	// the same message so the API does not reveal which accounts exist.
	MsgInvalidLoginPassword = "invalid username/password"

	// MsgInvalidUserID is returned when a user ID path or query parameter is
	// not a valid integer.
	MsgInvalidUserID = "invalid user id"

	// MsgInvalidReviewID is returned when a review ID path parameter is not
	// a valid integer.
	MsgInvalidReviewID = "invalid review id"

	// MsgInvalidJobID is returned when an analysis job ID path parameter is
	// not a valid integer.
	MsgInvalidJobID = "invalid job id"

	// MsgInvalidIsFakeFilter is returned when the is_fake query parameter is
	// not a valid boolean.
	MsgInvalidIsFakeFilter = "invalid is_fake value"

	// MsgInvalidUserIDFilter is returned when the user_id query parameter is
	// not a valid integer.
	MsgInvalidUserIDFilter = "invalid user_id value"
)
