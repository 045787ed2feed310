package service

import "errors"

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("feedpulse: client is closed")

// ErrUnknownSource indicates an ingest source name with no registered source.
var ErrUnknownSource = errors.New("unknown ingest source")

// ErrUnknownModel indicates a model name with no registered classifier.
var ErrUnknownModel = errors.New("unknown model")
