package wserrors

import (
	"errors"
)

var (
	// ErrNoContentUrl is returned when the mail body does not
	// contain a valid shareable status link. The post is skipped
	// entirely, not synthesized.
	ErrNoContentUrl = errors.New("no weibo status url found in mail body")

	// ErrSchemaMissing is returned when the rendered page did not
	// expose the $render_data status object.
	ErrSchemaMissing = errors.New("render data status object missing from page")

	// ErrPageFetch is returned when the source page could not be
	// fetched or rendered.
	ErrPageFetch = errors.New("failed to fetch source page")

	ErrSkipLine = errors.New("skip line")
)
