package learning

import "learnpath/logger"

// LogNotifier writes notifications to the log instead of a UI.
type LogNotifier struct {
	Log *logger.Logger
}

func (n LogNotifier) Success(msg string) {
	n.Log.Info(msg)
}

func (n LogNotifier) Failure(msg string, err error) {
	n.Log.Warn(msg, "error", err)
}
