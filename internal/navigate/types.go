package navigate

import (
	"fmt"
	"net/url"
)

// Navigator modes accepted by usecase.New.
const (
	ModeBrowser = "browser"
	ModePrint   = "print"
)

// ValidateTarget reports whether raw is an absolute http or https URL.
func ValidateTarget(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}
	return nil
}
