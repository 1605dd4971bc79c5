// Package report renders recruitment and turnover outcomes as localized,
// human-readable text.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/louisbranch/personnel.dynamics/internal/core/target"
	"github.com/louisbranch/personnel.dynamics/internal/market"
	"github.com/louisbranch/personnel.dynamics/internal/platform/i18n/catalog"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Localizer formats report lines for one locale.
type Localizer struct {
	locale  string
	printer *message.Printer
}

// NewLocalizer returns a Localizer for locale, falling back to the base
// catalog locale when it is not available.
func NewLocalizer(locale string) *Localizer {
	resolved := catalog.Default().Resolve(locale)
	return &Localizer{
		locale:  resolved,
		printer: message.NewPrinter(language.MustParse(resolved)),
	}
}

// Locale returns the catalog locale in use.
func (l *Localizer) Locale() string {
	return l.locale
}

// Text formats the catalog message key with args.
func (l *Localizer) Text(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Money formats an amount with two decimals and locale grouping.
func (l *Localizer) Money(amount decimal.Decimal) string {
	return l.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// Reason returns the localized explanation of a blocked cycle.
func (l *Localizer) Reason(reason string) string {
	if reason == "" {
		return l.Text("report.reason.empty")
	}
	return l.Text("report.reason." + reason)
}

// Recruitment summarizes a market cycle. A gated cycle explains why nothing
// was generated; an empty ungated cycle renders nothing.
func (l *Localizer) Recruitment(s market.State) string {
	if len(s.Applicants) == 0 {
		if s.Blocked == "" {
			return ""
		}
		return l.Text("report.recruitment.blocked", l.Reason(s.Blocked))
	}
	lines := []string{l.Text("report.recruitment.summary", len(s.Applicants), s.Rolls)}
	if len(s.RareProfessions) > 0 {
		names := make([]string, 0, len(s.RareProfessions))
		for _, p := range s.RareProfessions {
			names = append(names, string(p))
		}
		lines = append(lines, l.Text("report.recruitment.rare", strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

// Outcome is the turnover result of one person.
type Outcome struct {
	Person  *roster.Person
	Target  target.Roll
	Leaving bool
	Payout  decimal.Decimal
}

// Turnover renders a turnover roll: a header, then every person with the
// steps that built their target and, for leavers, the payout.
func (l *Localizer) Turnover(title string, outcomes []Outcome) string {
	leaving := 0
	for _, o := range outcomes {
		if o.Leaving {
			leaving++
		}
	}
	lines := []string{l.Text("report.turnover.header", title, len(outcomes), leaving)}
	for _, o := range outcomes {
		name := o.Person.Name
		if name == "" {
			name = o.Person.ID
		}
		key := "report.turnover.staying"
		if o.Leaving {
			key = "report.turnover.leaving"
		}
		lines = append(lines, l.Text(key, name, string(o.Person.Profession), o.Target.Value()))
		for i, step := range o.Target.Explain() {
			if i == 0 {
				lines = append(lines, l.Text("report.turnover.base", step.Label, step.Delta))
				continue
			}
			lines = append(lines, l.Text("report.turnover.step", step.Label, step.Delta, step.Running))
		}
		if o.Leaving {
			lines = append(lines, l.Text("report.turnover.payout", l.Money(o.Payout)))
		}
	}
	return strings.Join(lines, "\n")
}

// Payouts summarizes a settlement.
func (l *Localizer) Payouts(total decimal.Decimal, people int) string {
	return l.Text("report.payouts.total", l.Money(total), people)
}
