// Package config holds the immutable configuration handed to every
// component - analyzers, checks, transforms, reporters, filters - at
// initialization. The core reserves no keys of its own; every component
// interprets its own namespace and must behave as if a missing key were
// present with an empty value.
package config

import "golang.org/x/text/language"

// Configuration is a read-only locale plus string-to-string property
// map, constructed once per analysis run and never mutated afterwards.
type Configuration struct {
	locale     language.Tag
	properties map[string]string
}

// New builds a Configuration. A nil properties map is treated as empty.
// An unset locale defaults to language.Und, which components should
// treat identically to "no preference expressed".
func New(locale language.Tag, properties map[string]string) *Configuration {
	c := &Configuration{locale: locale, properties: make(map[string]string, len(properties))}
	for k, v := range properties {
		c.properties[k] = v
	}
	return c
}

// Empty returns a Configuration with the undetermined locale and no
// properties, suitable for components that do not need configuring.
func Empty() *Configuration {
	return New(language.Und, nil)
}

// Locale returns the configured locale.
func (c *Configuration) Locale() language.Tag {
	if c == nil {
		return language.Und
	}
	return c.locale
}

// Get returns the value for key and whether it was present. A nil
// Configuration behaves as an empty one.
func (c *Configuration) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.properties[key]
	return v, ok
}

// GetOrDefault returns the value for key, or def if key is unset.
func (c *Configuration) GetOrDefault(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// Keys returns the configured property keys in no particular order.
func (c *Configuration) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.properties))
	for k := range c.properties {
		keys = append(keys, k)
	}
	return keys
}
