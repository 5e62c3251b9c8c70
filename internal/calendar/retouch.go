package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownFrequency: тип частоты не из days/weeks/months.
var ErrUnknownFrequency = errors.New("unknown frequency type")

// FrequencyType — единица периода ретуши.
type FrequencyType string

const (
	FrequencyDays   FrequencyType = "days"
	FrequencyWeeks  FrequencyType = "weeks"
	FrequencyMonths FrequencyType = "months"
)

// Valid сообщает, входит ли тип в список известных.
func (f FrequencyType) Valid() bool {
	switch f {
	case FrequencyDays, FrequencyWeeks, FrequencyMonths:
		return true
	default:
		return false
	}
}

type RetouchRule struct {
	FrequencyType    FrequencyType
	FrequencyValue   int
	BusinessDaysOnly bool
}

// HolidaySet — множество календарных дат (без времени).
type HolidaySet map[DateKey]struct{}

// DateKey: время суток и часовой пояс не участвуют в сравнении.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyOf возвращает календарную дату t в её собственной локации.
func KeyOf(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{Year: y, Month: m, Day: d}
}

// NewHolidaySet строит множество из дат праздников.
func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (h HolidaySet) Add(t time.Time) {
	h[KeyOf(t)] = struct{}{}
}

// Contains проверяет совпадение по дате (год-месяц-день).
func (h HolidaySet) Contains(t time.Time) bool {
	if len(h) == 0 {
		return false
	}
	_, ok := h[KeyOf(t)]
	return ok
}

// AddFrequency прибавляет к anchor value единиц частоты.
// Месяцы прибавляются с прижатием к концу месяца: 31 января + 1 месяц = 28/29 февраля.
func AddFrequency(anchor time.Time, freq FrequencyType, value int) (time.Time, error) {
	switch freq {
	case FrequencyDays:
		return anchor.AddDate(0, 0, value), nil
	case FrequencyWeeks:
		return anchor.AddDate(0, 0, value*7), nil
	case FrequencyMonths:
		return AddMonthsClamped(anchor, value), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, string(freq))
	}
}

// AddMonthsClamped прибавляет месяцы, не допуская переноса в следующий месяц,
// если в целевом месяце меньше дней.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	// первое число целевого месяца, переполнение месяца нормализует time.Date
	first := time.Date(y, m+time.Month(months), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// IsWeekend: суббота или воскресенье.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AdjustForBusinessDays сдвигает дату вперёд по одному дню,
// пока она выпадает на выходной или праздник.
func AdjustForBusinessDays(t time.Time, holidays HolidaySet) time.Time {
	for IsWeekend(t) || holidays.Contains(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustForHolidays сдвигает дату вперёд, пока она совпадает с праздником.
func AdjustForHolidays(t time.Time, holidays HolidaySet) time.Time {
	for holidays.Contains(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// NextRetouchDate считает следующую дату ретуши от anchor.
// Порядок важен: сначала смещение по частоте, затем (если нужно) рабочие дни,
// затем всегда отдельный проход по праздникам.
func NextRetouchDate(anchor time.Time, rule RetouchRule, holidays HolidaySet) (time.Time, error) {
	next, err := AddFrequency(anchor, rule.FrequencyType, rule.FrequencyValue)
	if err != nil {
		return time.Time{}, err
	}
	if rule.BusinessDaysOnly {
		next = AdjustForBusinessDays(next, holidays)
	}
	return AdjustForHolidays(next, holidays), nil
}
