package flag

import "maps"

// UserKeyAttribute is the implicit attribute name under which the context's
// user key is exposed to audience predicates.
const UserKeyAttribute = "user_key"

// Context carries the identity and attributes one evaluation targets against.
// It is immutable once constructed and may be shared across evaluations of
// any number of features. Two contexts with equal user key and attributes are
// interchangeable for determinism purposes.
type Context struct {
	UserKey    string         `json:"user_key"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// NewContext creates a context for the given user key. Attribute values should
// be strings, numbers, booleans, or nil.
func NewContext(userKey string, attributes map[string]any) *Context {
	return &Context{
		UserKey:    userKey,
		Attributes: maps.Clone(attributes),
	}
}

// WithAttribute returns a copy of the context with one attribute added,
// leaving the receiver untouched.
func (c *Context) WithAttribute(key string, value any) *Context {
	attrs := make(map[string]any, len(c.Attributes)+1)
	maps.Copy(attrs, c.Attributes)
	attrs[key] = value
	return &Context{UserKey: c.UserKey, Attributes: attrs}
}

// predicateAttributes builds the attribute map predicates evaluate against,
// exposing the user key under UserKeyAttribute unless the context shadows it.
func (c *Context) predicateAttributes() map[string]any {
	attrs := make(map[string]any, len(c.Attributes)+1)
	attrs[UserKeyAttribute] = c.UserKey
	maps.Copy(attrs, c.Attributes)
	return attrs
}
