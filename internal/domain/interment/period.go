// Package interment models the four service events of the records system:
// burial (sepultamento), concession contract, exhumation and transfer
// (translado). The lifecycle engine in the application layer validates and
// commits transitions between them.
package interment

import "time"

// daysPerMonth is the approximation used for elapsed-period validation.
// Eligibility day counts use 30-day months; calendar-month addition is used
// only for billing due dates. The day-count path is authoritative for every
// minimum-period validation.
const daysPerMonth = 30

// MinimumPeriodElapsed reports whether at least `months` 30-day months have
// passed between eventDate and today.
func MinimumPeriodElapsed(eventDate, today time.Time, months int) bool {
	if months <= 0 {
		return true
	}
	days := int(today.Sub(eventDate).Hours() / 24)
	return days >= months*daysPerMonth
}

// QualifyingCutoff returns the latest date an exhumation may carry and still
// free a slot on a full plot: today minus months*30 days.
func QualifyingCutoff(today time.Time, months int) time.Time {
	return today.AddDate(0, 0, -months*daysPerMonth)
}

// EarliestEligibleDate returns the first calendar date on which the minimum
// period is satisfied, using calendar-month addition. Informational only;
// validation goes through MinimumPeriodElapsed.
func EarliestEligibleDate(eventDate time.Time, months int) time.Time {
	return eventDate.AddDate(0, months, 0)
}
