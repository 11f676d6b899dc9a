package repositories

import "errors"

// Sentinel errors returned by repository implementations so callers can map
// them to HTTP statuses without string matching.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")

	// Unique-constraint violations, translated from the driver so services
	// can report a conflict even when two writers race past the
	// check-then-write guard.
	ErrDuplicateCategoryName = errors.New("category name already exists")
	ErrDuplicateUsername     = errors.New("username already exists")
)
