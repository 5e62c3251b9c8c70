package utils

import (
	"fmt"
	"math"
	"time"
)

// DateOnly отбрасывает время суток, сохраняя локацию t.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay сравнивает календарные даты a и b в локации loc.
// Если loc == nil, каждая дата берётся в своей локации.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc != nil {
		a = a.In(loc)
		b = b.In(loc)
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysUntil — сколько суток осталось до next, с округлением вверх.
// Прошедшие даты дают ноль или отрицательное число.
func DaysUntil(next, now time.Time) int {
	diff := next.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// LoadLocation загружает IANA-зону тенанта.
// Пустое или неизвестное имя даёт UTC и ok=false, чтобы вызывающий мог залогировать.
func LoadLocation(name string) (loc *time.Location, ok bool) {
	if name == "" {
		return time.UTC, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// ===== Форматирование даты для клиента =====

var esWeekdays = map[time.Weekday]string{
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
	time.Sunday:    "domingo",
}

var esMonths = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// FormatRetouchDate форматирует дату ретуши для сообщения клиенту,
// например «lunes 22 de enero de 2024».
// Если loc != nil, дата переводится в указанный часовой пояс.
func FormatRetouchDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%s %d de %s de %d", esWeekdays[t.Weekday()], t.Day(), esMonths[t.Month()], t.Year())
}

// FormatISODate — дата в виде YYYY-MM-DD, как её принимает и отдаёт API.
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseISODate разбирает YYYY-MM-DD как полночь UTC.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
