package navigate

import "context"

// Navigator sends the user to a target location.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}
