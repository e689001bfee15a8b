// Package theme holds the light/dark preference shared by every widget on a page.
//
// A Context is created once per page (or request), loaded from a Store and
// handed to widgets at construction.
package theme

import (
	"context"
	"sync"
)

// Key is the storage key of the theme preference.
const Key = "theme"

// DarkValue is the stored value (and body class) for dark mode.
// Light mode is stored as an absent key.
const DarkValue = "dark-mode"

// Mode is the active color scheme.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// ParseMode maps a stored value to a mode. Anything other than DarkValue is light.
func ParseMode(stored string) Mode {
	if stored == DarkValue {
		return Dark
	}
	return Light
}

// Context is the theme state of one page.
type Context struct {
	mu    sync.RWMutex
	store Store
	mode  Mode
}

// NewContext creates a light-mode context backed by store.
func NewContext(store Store) *Context {
	return &Context{store: store}
}

// Load reads the stored preference.
func (c *Context) Load(ctx context.Context) error {
	v, ok, err := c.store.Get(ctx, Key)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.mode = ParseMode(v)
	} else {
		c.mode = Light
	}
	return nil
}

// Mode returns the active mode.
func (c *Context) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// BodyClass is the class added to the page body, empty in light mode.
func (c *Context) BodyClass() string {
	if c.Mode() == Dark {
		return DarkValue
	}
	return ""
}

// Checked reports whether the theme switch should render checked.
func (c *Context) Checked() bool {
	return c.Mode() == Dark
}

// Toggle applies the switch state and persists it.
// Checking stores dark mode; unchecking removes the key.
func (c *Context) Toggle(ctx context.Context, checked bool) error {
	var err error
	if checked {
		err = c.store.Set(ctx, Key, DarkValue)
	} else {
		err = c.store.Delete(ctx, Key)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if checked {
		c.mode = Dark
	} else {
		c.mode = Light
	}
	return nil
}
