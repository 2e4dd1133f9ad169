package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/avolkov/orderdesk/internal/repository"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution (including empty query results)
	ExitFailure      = 1 // Operation failure (write-back could not complete)
	ExitCommandError = 2 // Command error (bad store path, load failure, bad arguments)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope for CLI output.
type Response struct {
	Status  string      `json:"status"`            // "ok" or "empty"
	Message string      `json:"message,omitempty"` // set for empty results
	Data    interface{} `json:"data,omitempty"`    // success payload
}

// Empty reports a negative query result. Not-found results are normal
// output, never errors, and leave the exit code at zero.
func (f *OutputFormatter) Empty(message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "empty", Message: message})
	}
	_, err := fmt.Fprintln(f.Writer, message)
	return err
}

// ProductSales renders a clients-by-product result.
func (f *OutputFormatter) ProductSales(ps repository.ProductSales) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: ps})
	}
	if _, err := fmt.Fprintf(f.Writer, "Product: %s (price %s per %s)\n",
		ps.Product.Name, ps.Product.Price.StringFixed(2), ps.Product.Unit); err != nil {
		return err
	}
	for _, cs := range ps.Clients {
		if _, err := fmt.Fprintf(f.Writer, "Client: %s, contact: %s\n",
			cs.Client.Organization, cs.Client.ContactPerson); err != nil {
			return err
		}
		for _, o := range cs.Orders {
			// The price is the product's catalog price; orders carry none.
			if _, err := fmt.Fprintf(f.Writer, "  quantity %d, price %s, date %s\n",
				o.Quantity, ps.Product.Price.StringFixed(2), o.Date.Format("2006-01-02")); err != nil {
				return err
			}
		}
	}
	return nil
}

// Golden renders a golden-client result.
func (f *OutputFormatter) Golden(gc repository.GoldenClient) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: gc})
	}
	_, err := fmt.Fprintf(f.Writer, "Golden client: %s, orders: %d\n",
		gc.Organization, gc.OrderCount)
	return err
}

// ContactUpdated reports a successful contact-person update.
func (f *OutputFormatter) ContactUpdated(organization, contact string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: map[string]string{
			"organization":   organization,
			"contact_person": contact,
		}})
	}
	_, err := fmt.Fprintf(f.Writer, "Contact person for %s is now %s\n", organization, contact)
	return err
}
