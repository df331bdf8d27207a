package tmdb

import "fmt"

// FetchError reports a failed TMDb lookup: a network failure, an
// unexpected status code, or a response body that did not parse.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
