package textdomain

import (
	"fmt"
	"strings"
)

// contextSeparator joins context and message, as gettext does in compiled catalogs.
const contextSeparator = "\x04"

// Key identifies an entry in a catalog.
type Key struct {
	Message    string
	Context    string
	HasContext bool
}

// NewKey validates lookup arguments and builds the matching Key.
func NewKey(message string, context ...string) (Key, error) {
	var key Key
	switch len(context) {
	case 0:
		key = MessageKey(message)
	case 1:
		key = ContextKey(context[0], message)
	default:
		return Key{}, fmt.Errorf("%w: expected at most one context, got %d", ErrInvalidArgument, len(context))
	}

	if err := key.Validate(); err != nil {
		return Key{}, err
	}
	return key, nil
}

// Validate reports keys that cannot be registered or looked up: an empty
// message, or a message or context holding the context separator, which would
// make the key's ID collide with another key.
func (k Key) Validate() error {
	if k.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidArgument)
	}
	if strings.Contains(k.Message, contextSeparator) {
		return fmt.Errorf("%w: message %q contains the context separator", ErrInvalidArgument, k.Message)
	}
	if strings.Contains(k.Context, contextSeparator) {
		return fmt.Errorf("%w: context %q contains the context separator", ErrInvalidArgument, k.Context)
	}
	return nil
}

// MessageKey builds a Key without context.
func MessageKey(message string) Key {
	return Key{Message: message}
}

// ContextKey builds a Key scoped by context.
func ContextKey(context, message string) Key {
	return Key{Message: message, Context: context, HasContext: true}
}

// ID returns the flat identifier of the key: "context\x04message" or "message".
func (k Key) ID() string {
	if !k.HasContext {
		return k.Message
	}
	return k.Context + contextSeparator + k.Message
}

// ParseKeyID is the inverse of Key.ID.
func ParseKeyID(id string) Key {
	if context, message, ok := strings.Cut(id, contextSeparator); ok {
		return ContextKey(context, message)
	}
	return MessageKey(id)
}

func (k Key) String() string {
	if !k.HasContext {
		return fmt.Sprintf("%q", k.Message)
	}
	return fmt.Sprintf("%q (context %q)", k.Message, k.Context)
}
