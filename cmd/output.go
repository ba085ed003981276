package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/sesctl/internal/ses"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	emptyCell = "-"
)

var yen = message.NewPrinter(language.Japanese)

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = formatTable
	}
	if format != formatTable && format != formatJSON {
		return nil, fmt.Errorf("unsupported output format %q (want %s or %s)", format, formatTable, formatJSON)
	}
	return &printer{w: w, format: format}, nil
}

func (p *printer) json() bool {
	return p.format == formatJSON
}

// render writes v as indented JSON, or calls table in table mode.
func (p *printer) render(v any, table func(t *tabwriter.Writer)) error {
	if p.json() {
		return p.writeJSON(v)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func (p *printer) writeJSON(v any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// message prints an acknowledgement from delete endpoints.
func (p *printer) message(msg *ses.Message) error {
	if p.json() {
		return p.writeJSON(msg)
	}
	_, err := fmt.Fprintln(p.w, msg.Message)
	return err
}

func row(w io.Writer, cells ...string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func formatYen(v int) string {
	return yen.Sprintf("¥%d", v)
}

// formatPriceRange renders the unit price range the way the dashboard does.
func formatPriceRange(lower, upper *int) string {
	switch {
	case lower != nil && upper != nil:
		return formatYen(*lower) + " - " + formatYen(*upper)
	case lower != nil:
		return formatYen(*lower) + " -"
	case upper != nil:
		return "- " + formatYen(*upper)
	default:
		return emptyCell
	}
}

func orEmpty(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return emptyCell
	}
	return *s
}

func dateOrEmpty(t *ses.Timestamp) string {
	if t == nil || t.IsZero() {
		return emptyCell
	}
	return t.Date()
}

func availabilityLabel(s *ses.AvailabilityStatus) string {
	if s == nil {
		return emptyCell
	}
	return s.Label()
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// confirm asks a yes/no question unless assumeYes is set.
var confirm = func(label string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
