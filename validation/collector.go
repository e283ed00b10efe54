package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/audioscribe/errors"
)

// Collector accumulates field errors for rules that struct tags cannot express.
type Collector struct {
	errors []FieldError
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a field error.
func (c *Collector) Add(field, message string) {
	c.errors = append(c.errors, FieldError{Field: field, Message: message})
}

// Check records a field error when condition is false.
func (c *Collector) Check(condition bool, field, message string) *Collector {
	if !condition {
		c.Add(field, message)
	}
	return c
}

// Merge folds the field errors of err into the collector. Errors that did not
// come from this package are recorded under the given field.
func (c *Collector) Merge(field string, err error) *Collector {
	if err == nil {
		return c
	}
	if appErr, ok := errors.AsAppError(err); ok {
		if fields, ok := appErr.Details["fields"].([]FieldError); ok {
			c.errors = append(c.errors, fields...)
			return c
		}
	}
	c.Add(field, err.Error())
	return c
}

// Errors returns the collected field errors.
func (c *Collector) Errors() []FieldError {
	return c.errors
}

// Err returns a CONFIG_INVALID AppError describing every collected field
// error, or nil when there are none.
func (c *Collector) Err() error {
	if len(c.errors) == 0 {
		return nil
	}
	messages := make([]string, len(c.errors))
	for i, e := range c.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return errors.InvalidConfig(strings.Join(messages, "; ")).
		WithDetail("fields", c.errors)
}
