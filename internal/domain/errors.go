package domain

import "errors"

var (
	// ErrMalformedMenu signals a menu document that is not valid JSON or lacks required structure.
	ErrMalformedMenu = errors.New("malformed menu")
	// ErrUnknownDomain signals a domain name other than food, bar or cafe.
	ErrUnknownDomain = errors.New("unknown menu domain")
	// ErrInvalidDraft signals a drafted item that fails presence checks.
	ErrInvalidDraft = errors.New("invalid item draft")
	// ErrCategoryNotFound signals a category id absent from the menu.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidTables signals a classification table that fails validation.
	ErrInvalidTables = errors.New("invalid classification tables")
)
