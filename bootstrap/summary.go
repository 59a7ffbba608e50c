package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/kbukum/fetchkit/component"
)

// Summary prints what the application started.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a summary for one application run.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes the header, one line per component with its description,
// and the live health of each.
func (s *Summary) Display(ctx context.Context, w io.Writer, registry *component.Registry) {
	bold := color.New(color.Bold).SprintFunc()

	header := s.serviceName
	if s.version != "" {
		header += " " + s.version
	}
	fmt.Fprintf(w, "\n%s started in %s\n", bold(header), s.startupDuration.Round(time.Millisecond))

	if registry == nil || len(registry.All()) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}

	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	all := registry.All()
	for i, c := range all {
		h := health[c.Name()]
		line := c.Name()
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			line = fmt.Sprintf("%s [%s] %s", desc.Name, desc.Type, desc.Details)
		}
		msg := ""
		if h.Message != "" {
			msg = " (" + h.Message + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n",
			treePrefix(i, len(all)), healthStatusIcon(h.Status), line, strings.ToLower(string(h.Status)), msg)
	}
	fmt.Fprintln(w)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return color.GreenString("✔")
	case component.StatusDegraded:
		return color.YellowString("!")
	case component.StatusUnhealthy:
		return color.RedString("✘")
	default:
		return "?"
	}
}
