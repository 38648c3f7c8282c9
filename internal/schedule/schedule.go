package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule is the cadence used when no schedule flag is given.
var DefaultSchedule = Schedule(IntervalSchedule{5 * time.Minute})

// Schedule decides when check cycles run.
type Schedule interface {
	cron.Schedule
	fmt.Stringer

	// NeedKickWhenStart returns if a cycle should run immediately on
	// startup, before the first scheduled tick.
	NeedKickWhenStart() bool
}

// Parse parses a schedule specification: a duration like "5m", or a cron
// expression like "*/5 * * * *" or "@hourly".
func Parse(spec string) (Schedule, error) {
	if s, err := ParseInterval(spec); err == nil {
		return s, nil
	}

	return ParseCron(spec)
}

// IntervalSchedule runs cycles on a fixed interval, starting right away.
type IntervalSchedule struct {
	Interval time.Duration
}

// ParseInterval parses a duration like "5m" or "90s" as a schedule.
func ParseInterval(spec string) (IntervalSchedule, error) {
	d, err := time.ParseDuration(spec)
	if err != nil {
		return IntervalSchedule{}, err
	}
	if d <= 0 {
		return IntervalSchedule{}, fmt.Errorf("invalid schedule spec: %q", spec)
	}
	return IntervalSchedule{d}, nil
}

func (s IntervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

func (s IntervalSchedule) String() string {
	return s.Interval.String()
}

func (s IntervalSchedule) NeedKickWhenStart() bool {
	return true
}

// CronSchedule runs cycles on a cron expression.
type CronSchedule struct {
	spec     string
	schedule cron.Schedule
}

// ParseCron parses a cron expression like "*/5 * * * *" or "@daily".
func ParseCron(spec string) (CronSchedule, error) {
	switch spec {
	case "@yearly", "@annually":
		spec = "0 0 1 1 ?"
	case "@monthly":
		spec = "0 0 1 * ?"
	case "@weekly":
		spec = "0 0 * * 0"
	case "@daily":
		spec = "0 0 * * ?"
	case "@hourly":
		spec = "0 * * * ?"
	default:
		delimiter := regexp.MustCompile("[ \t]+")

		ss := delimiter.Split(strings.TrimSpace(spec), -1)
		if len(ss) == 4 {
			ss = append(ss, "?")
		}
		spec = strings.Join(ss, " ")
	}

	s, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional).Parse(spec)
	if err != nil {
		return CronSchedule{}, err
	}
	return CronSchedule{
		spec:     spec,
		schedule: s,
	}, nil
}

func (s CronSchedule) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

func (s CronSchedule) String() string {
	return s.spec
}

func (s CronSchedule) NeedKickWhenStart() bool {
	return false
}
