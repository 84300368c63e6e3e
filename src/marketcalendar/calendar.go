package marketcalendar

import (
	"time"
)

// ----- session labels -----

type Session string

const (
	SessionClosedHoliday Session = "closed_holiday"
	SessionClosedWeekend Session = "closed_weekend"
	SessionPreMarket     Session = "pre_market"
	SessionRegular       Session = "regular"
	SessionAfterHours    Session = "after_hours"
	SessionOvernight     Session = "overnight"
	DaysPerWeek                  = 7
	OffsetDaysForSunday          = 1
	NewYearDay                   = 1
	ThirdMondayOffset            = 2
	FourthThursdayOffset         = 3
)

// regular NYSE hours, minutes from midnight Eastern
const (
	regularOpenMinute  = 9*60 + 30
	regularCloseMinute = 16 * 60
	preMarketMinute    = 4 * 60
	afterHoursMinute   = 20 * 60
)

// ----- public API -----

// DetectSession labels a moment in time against the NYSE trading day.
// All boundaries are evaluated in Eastern time.
func DetectSession(now time.Time) Session {
	et := getEasternTime(now)

	if et.Weekday() == time.Saturday || et.Weekday() == time.Sunday {
		return SessionClosedWeekend
	}
	if isHoliday(et) {
		return SessionClosedHoliday
	}

	minute := et.Hour()*60 + et.Minute()
	switch {
	case minute >= regularOpenMinute && minute < regularCloseMinute:
		return SessionRegular
	case minute >= preMarketMinute && minute < regularOpenMinute:
		return SessionPreMarket
	case minute >= regularCloseMinute && minute < afterHoursMinute:
		return SessionAfterHours
	default:
		return SessionOvernight
	}
}

// IsMarketOpen reports whether the regular session is in progress.
func IsMarketOpen(now time.Time) bool {
	return DetectSession(now) == SessionRegular
}

// ----- helpers -----

func getEasternTime(t time.Time) time.Time {
	nyLocation, err := time.LoadLocation("America/New_York")
	if err != nil {
		return t.UTC()
	}
	return t.In(nyLocation)
}

func isHoliday(t time.Time) bool {
	year := t.Year()

	// Calculate New Year's Day, adjusted for being on a Sunday
	newYearsDay := time.Date(year, time.January, NewYearDay, 0, 0, 0, 0, time.UTC)
	if newYearsDay.Weekday() == time.Sunday {
		newYearsDay = newYearsDay.AddDate(0, 0, OffsetDaysForSunday)
	}

	// Martin Luther King Jr. Day and Presidents' Day calculation
	mlkDay := calculateSpecificMonday(year, time.January, ThirdMondayOffset)
	presidentsDay := calculateSpecificMonday(year, time.February, ThirdMondayOffset)

	// Memorial Day
	memorialDay := time.Date(year, time.May, 31, 0, 0, 0, 0, time.UTC)
	for memorialDay.Weekday() != time.Monday {
		memorialDay = memorialDay.AddDate(0, 0, -1)
	}

	// Juneteenth
	juneteenth := time.Date(year, time.June, 19, 0, 0, 0, 0, time.UTC)
	if juneteenth.Weekday() == time.Sunday {
		juneteenth = juneteenth.AddDate(0, 0, OffsetDaysForSunday)
	}

	// Independence Day
	independenceDay := time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC)
	if independenceDay.Weekday() == time.Sunday {
		independenceDay = independenceDay.AddDate(0, 0, OffsetDaysForSunday)
	}

	// Labor Day
	laborDay := calculateSpecificMonday(year, time.September, 0)

	// Thanksgiving Day
	thanksgivingDay := calculateSpecificThursday(year, time.November, FourthThursdayOffset)

	// Christmas Day
	christmasDay := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)
	if christmasDay.Weekday() == time.Sunday {
		christmasDay = christmasDay.AddDate(0, 0, OffsetDaysForSunday)
	}

	holidays := []time.Time{
		newYearsDay,
		mlkDay,
		presidentsDay,
		memorialDay,
		juneteenth,
		independenceDay,
		laborDay,
		thanksgivingDay,
		christmasDay,
	}
	return isDateAmong(t, holidays)
}

// calculateSpecificMonday calculates the specific Monday of a month (like the third Monday).
func calculateSpecificMonday(year int, month time.Month, mondayOffset int) time.Time {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(time.Monday-firstOfMonth.Weekday()+DaysPerWeek) % DaysPerWeek
	return firstOfMonth.AddDate(0, 0, offset+mondayOffset*DaysPerWeek)
}

// calculateSpecificThursday calculates the specific Thursday of a month (like the fourth Thursday).
func calculateSpecificThursday(year int, month time.Month, thursdayOffset int) time.Time {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(time.Thursday-firstOfMonth.Weekday()+DaysPerWeek) % DaysPerWeek
	return firstOfMonth.AddDate(0, 0, offset+thursdayOffset*DaysPerWeek)
}

// isDateAmong checks if the given date matches any date in the list.
func isDateAmong(t time.Time, dates []time.Time) bool {
	for _, d := range dates {
		if t.Format("2006-01-02") == d.Format("2006-01-02") {
			return true
		}
	}
	return false
}
