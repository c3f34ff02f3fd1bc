package domain

import (
	"fmt"
	"strings"
	"time"
)

// Output formats understood by the toll API's format query parameter.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DateLayout is the YYYYMMDD layout used in every period path segment.
const DateLayout = "20060102"

// ValidateDate checks that s is an 8-digit YYYYMMDD calendar date.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return fmt.Errorf("%w: date %q must be YYYYMMDD", ErrInvalidInput, s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: date %q must be YYYYMMDD", ErrInvalidInput, s)
	}
	return nil
}

// Period is an inclusive date range in YYYYMMDD form.
type Period struct {
	From string
	To   string
}

// Validate checks both ends of the period.
func (p Period) Validate() error {
	if err := ValidateDate(p.From); err != nil {
		return err
	}
	return ValidateDate(p.To)
}

// StationPassesQuery selects the passes recorded at one toll station.
type StationPassesQuery struct {
	StationID string
	Period
	Format string
}

// Validate checks the query before any request is built.
func (q StationPassesQuery) Validate() error {
	if err := requireID("station", q.StationID); err != nil {
		return err
	}
	return q.Period.Validate()
}

// OperatorPairQuery selects passes between a station operator and a tag operator.
// It backs both pass analysis and passes cost.
type OperatorPairQuery struct {
	StationOpID string
	TagOpID     string
	Period
	Format string
}

// Validate checks the query before any request is built.
func (q OperatorPairQuery) Validate() error {
	if err := requireID("station operator", q.StationOpID); err != nil {
		return err
	}
	if err := requireID("tag operator", q.TagOpID); err != nil {
		return err
	}
	return q.Period.Validate()
}

// ChargesQuery selects the charges other operators owe one operator.
type ChargesQuery struct {
	OpID string
	Period
	Format string
}

// Validate checks the query before any request is built.
func (q ChargesQuery) Validate() error {
	if err := requireID("operator", q.OpID); err != nil {
		return err
	}
	return q.Period.Validate()
}

func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s ID is required", ErrInvalidInput, name)
	}
	return nil
}
