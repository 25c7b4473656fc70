package alert

import "context"

// Presenter shows a notification to the user and blocks until the user
// acknowledges it or ctx is done.
type Presenter interface {
	Present(ctx context.Context, content string) error
}
