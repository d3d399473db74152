package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardops/backoffice/cerrors"
)

var kindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})

// ErrorRenderer renders a cerrors.Error with terminal styling, surfacing
// its Kind and any wrapped Underlying cause.
type ErrorRenderer struct{}

// NewErrorRenderer builds an ErrorRenderer.
func NewErrorRenderer() *ErrorRenderer {
	return &ErrorRenderer{}
}

// Render formats err for terminal display, styling the error Kind when err
// is (or wraps) a *cerrors.Error.
func (r *ErrorRenderer) Render(err error) string {
	var ce *cerrors.Error
	if errors.As(err, &ce) {
		return fmt.Sprintf("%s %s", kindStyle.Render("["+ce.Kind.String()+"]"), errorStyle.Render(ce.Message))
	}
	return errorStyle.Render(err.Error())
}
