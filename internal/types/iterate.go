package types

// MonthsBetween returns every month from the month from through the month to,
// inclusive and in chronological order. If to is before from, the result is empty.
func MonthsBetween(from, to Month) []Month {
	if to.Before(from) {
		return []Month{}
	}

	months := make([]Month, 0, monthsApart(from, to)+1)
	for m := from; !m.After(to); m = m.AddDate(0, 1) {
		months = append(months, m)
	}

	return months
}

// MonthsFrom returns n consecutive months starting with m.
func MonthsFrom(m Month, n int) []Month {
	if n <= 0 {
		return []Month{}
	}

	months := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, m.AddDate(0, i))
	}

	return months
}

// Trailing returns the n months ending with and including m, oldest first.
func Trailing(m Month, n int) []Month {
	if n <= 0 {
		return []Month{}
	}

	return MonthsFrom(m.AddDate(0, -(n-1)), n)
}

// MonthsOfYear returns January through December of the year.
func MonthsOfYear(year int) []Month {
	return MonthsFrom(NewMonth(year, 1), 12)
}

// monthsApart is the number of month boundaries between from and to.
func monthsApart(from, to Month) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
