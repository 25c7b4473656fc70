package usecase

import (
	"sync/atomic"

	"auris-notifier/internal/alert"
	"auris-notifier/internal/listener"
	"auris-notifier/internal/navigate"
	"auris-notifier/pkg/log"
	"auris-notifier/pkg/realtime"
)

type implUseCase struct {
	logger    log.Logger
	transport listener.Transport
	presenter alert.Presenter
	navigator navigate.Navigator
	reporter  listener.FaultReporter

	userID         string
	redirectURL    string
	exitOnRedirect bool

	started atomic.Bool
}

// New creates a listener and binds its handlers to transport. reporter may
// be nil.
func New(
	logger log.Logger,
	transport listener.Transport,
	presenter alert.Presenter,
	navigator navigate.Navigator,
	reporter listener.FaultReporter,
	opts listener.Options,
) (listener.UseCase, error) {
	if opts.UserID == "" {
		return nil, listener.ErrMissingUserID
	}
	if err := navigate.ValidateTarget(opts.RedirectURL); err != nil {
		return nil, err
	}

	uc := &implUseCase{
		logger:         logger,
		transport:      transport,
		presenter:      presenter,
		navigator:      navigator,
		reporter:       reporter,
		userID:         opts.UserID,
		redirectURL:    opts.RedirectURL,
		exitOnRedirect: opts.ExitOnRedirect,
	}

	transport.On(realtime.EventConnect, uc.onConnect)
	transport.On(realtime.EventDisconnect, uc.onDisconnect)
	transport.On(listener.EventNotification, uc.onNotification)
	transport.OnFault(uc.onFault)

	return uc, nil
}
