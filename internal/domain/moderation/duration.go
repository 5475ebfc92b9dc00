package moderation

import (
	"database/sql"
	"regexp"
	"strconv"
	"time"
)

// PermanentBan is the literal duration spec for a ban with no expiry
const PermanentBan = "permanent"

var banDurationRe = regexp.MustCompile(`^([1-9][0-9]*)(h|d|w|m)$`)

// BanDuration is a parsed ban duration spec: either permanent or a
// count of hours, days, weeks or calendar months.
type BanDuration struct {
	Permanent bool
	Value     int
	Unit      string
}

// ParseBanDuration parses "permanent" or "<integer><unit>" with unit in
// h/d/w/m. Anything else is ErrInvalidBanDuration.
func ParseBanDuration(spec string) (BanDuration, error) {
	if spec == PermanentBan {
		return BanDuration{Permanent: true}, nil
	}
	matches := banDurationRe.FindStringSubmatch(spec)
	if matches == nil {
		return BanDuration{}, ErrInvalidBanDuration
	}
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return BanDuration{}, ErrInvalidBanDuration
	}
	return BanDuration{Value: value, Unit: matches[2]}, nil
}

// UnbanAt computes the scheduled expiry from now. Permanent bans get a
// NULL expiry. Months advance the calendar rather than adding fixed hours.
func (d BanDuration) UnbanAt(now time.Time) sql.NullTime {
	if d.Permanent {
		return sql.NullTime{}
	}
	var at time.Time
	switch d.Unit {
	case "h":
		at = now.Add(time.Duration(d.Value) * time.Hour)
	case "d":
		at = now.AddDate(0, 0, d.Value)
	case "w":
		at = now.AddDate(0, 0, 7*d.Value)
	case "m":
		at = now.AddDate(0, d.Value, 0)
	default:
		return sql.NullTime{}
	}
	return sql.NullTime{Time: at, Valid: true}
}

// String returns the canonical duration spec
func (d BanDuration) String() string {
	if d.Permanent {
		return PermanentBan
	}
	return strconv.Itoa(d.Value) + d.Unit
}
