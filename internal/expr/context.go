package expr

import (
	"os"
	"strings"
	"time"
)

// Context is the evaluation environment for entry expressions.
type Context struct {
	Profile string `expr:"profile"`

	// Weekday is mon..sun, Hour is 0-23, Date is YYYY-MM-DD.
	Weekday string `expr:"weekday"`
	Hour    int    `expr:"hour"`
	Date    string `expr:"date"`

	// Environment variables (accessed as env.VAR_NAME)
	Env map[string]string `expr:"env"`

	// User-defined variables from config
	Vars map[string]any `expr:"vars"`

	// Entry being evaluated, for expressions that refer to their own label.
	Text string `expr:"text"`
}

// NewContext creates a Context for the current time and process environment.
func NewContext() *Context {
	return NewContextAt(time.Now())
}

// NewContextAt creates a Context for the given time.
func NewContextAt(now time.Time) *Context {
	return &Context{
		Weekday: strings.ToLower(now.Weekday().String()[:3]),
		Hour:    now.Hour(),
		Date:    now.Format(time.DateOnly),
		Env:     envToMap(),
		Vars:    make(map[string]any),
	}
}

// WithProfile returns a copy of the context with the profile set.
func (c *Context) WithProfile(profile string) *Context {
	cp := *c
	cp.Profile = profile
	return &cp
}

// WithVars returns a copy of the context with variables set.
func (c *Context) WithVars(vars map[string]any) *Context {
	cp := *c
	cp.Vars = vars
	return &cp
}

// ForEntry returns a copy of the context bound to one entry label.
func (c *Context) ForEntry(text string) *Context {
	cp := *c
	cp.Text = text
	return &cp
}

func envToMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
