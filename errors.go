package textdomain

import "errors"

// ErrInvalidArgument reports a lookup with a missing message or more than one context.
var ErrInvalidArgument = errors.New("textdomain: invalid argument")

// ErrNoFactory is returned by a Registry asked for an unregistered domain without a factory.
var ErrNoFactory = errors.New("textdomain: no translator factory configured")

// ErrNoLoaderPaths is returned by FileLoader.Load when no catalog files are configured.
var ErrNoLoaderPaths = errors.New("textdomain: no loader paths configured")
