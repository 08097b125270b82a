// internal/search/errors.go
package search

import "errors"

// ErrEmptyQuery indicates the search text was empty or whitespace.
var ErrEmptyQuery = errors.New("empty search query")
