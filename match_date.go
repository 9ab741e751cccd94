package passentropy

import (
	"regexp"
	"strconv"
	"time"
)

// dateSplits lists, per digit-run length, where day, month and year may be
// cut apart when no separator is used: "1191" is 1 1 91 or 11 9 1 etc.
var dateSplits = map[int][][2]int{
	4: {{1, 2}, {2, 3}},
	5: {{1, 3}, {2, 3}},
	6: {{1, 2}, {2, 4}, {4, 5}},
	7: {{1, 3}, {2, 3}, {4, 5}, {4, 6}},
	8: {{2, 4}, {4, 6}},
}

// dateWithSeparator matches "13/3/1997", "1997.3.13", "3-13-97" and so on.
// Both separators must be the same character, which is checked in code.
var dateWithSeparator = regexp.MustCompile(`^(\d{1,4})([\s/\\_.-])(\d{1,2})([\s/\\_.-])(\d{1,4})$`)

type dmy struct {
	day, month, year int
}

// dateMatches finds calendar dates written with or without separators.
// A date lying strictly inside another date is dropped.
func dateMatches(pw []rune, referenceYear int) []Match {
	var found []Match
	n := len(pw)

	for i := 0; i+4 <= n; i++ {
		for j := i + 4; j <= n && j-i <= 8; j++ {
			token := pw[i:j]
			if !allDigits(token) {
				break
			}
			best, ok := dmy{}, false
			for _, split := range dateSplits[len(token)] {
				ints := [3]int{
					atoi(token[:split[0]]),
					atoi(token[split[0]:split[1]]),
					atoi(token[split[1]:]),
				}
				d, valid := mapIntsToDMY(ints)
				if !valid {
					continue
				}
				if !ok || yearSpace(d.year, referenceYear) < yearSpace(best.year, referenceYear) {
					best, ok = d, true
				}
			}
			if ok {
				found = append(found, newMatch(pw, i, j, Date, dateEntropy(best.year, referenceYear, false)))
			}
		}
	}

	for i := 0; i+6 <= n; i++ {
		for j := i + 6; j <= n && j-i <= 10; j++ {
			m := dateWithSeparator.FindStringSubmatch(string(pw[i:j]))
			if m == nil || m[2] != m[4] {
				continue
			}
			d, valid := mapIntsToDMY([3]int{parseDigits(m[1]), parseDigits(m[3]), parseDigits(m[5])})
			if !valid {
				continue
			}
			found = append(found, newMatch(pw, i, j, Date, dateEntropy(d.year, referenceYear, true)))
		}
	}

	matches := found[:0:0]
	for _, m := range found {
		if !insideOther(m, found) {
			matches = append(matches, m)
		}
	}
	return matches
}

// yearMatches finds four-digit years in the supported range.
func yearMatches(pw []rune, referenceYear int) []Match {
	var matches []Match
	for i := 0; i+4 <= len(pw); i++ {
		token := pw[i : i+4]
		if !allDigits(token) {
			continue
		}
		if y := atoi(token); y >= minYear && y <= maxYear {
			matches = append(matches, newMatch(pw, i, i+4, Year, yearEntropy(y, referenceYear)))
		}
	}
	return matches
}

// mapIntsToDMY decides whether three numbers, in reading order, can be a
// day, month and year. The year comes first or last; day and month may be
// in either order.
func mapIntsToDMY(ints [3]int) (dmy, bool) {
	if ints[1] > 31 || ints[1] <= 0 {
		return dmy{}, false
	}
	over12, over31, under1 := 0, 0, 0
	for _, v := range ints {
		if (v > 99 && v < minYear) || v > maxYear {
			return dmy{}, false
		}
		if v > 31 {
			over31++
		}
		if v > 12 {
			over12++
		}
		if v <= 0 {
			under1++
		}
	}
	if over31 >= 2 || over12 == 3 || under1 >= 2 {
		return dmy{}, false
	}

	splits := []struct {
		year int
		rest [2]int
	}{
		{ints[2], [2]int{ints[0], ints[1]}}, // year last
		{ints[0], [2]int{ints[1], ints[2]}}, // year first
	}
	for _, s := range splits {
		if s.year >= minYear && s.year <= maxYear {
			day, month, ok := mapIntsToDM(s.rest, s.year)
			if !ok {
				// a four digit year must be paired with a valid day and month
				return dmy{}, false
			}
			return dmy{day: day, month: month, year: s.year}, true
		}
	}
	for _, s := range splits {
		if s.year > 99 {
			continue
		}
		year := twoToFourDigitYear(s.year)
		if day, month, ok := mapIntsToDM(s.rest, year); ok {
			return dmy{day: day, month: month, year: year}, true
		}
	}
	return dmy{}, false
}

func mapIntsToDM(ints [2]int, year int) (day, month int, ok bool) {
	for _, dm := range [][2]int{{ints[0], ints[1]}, {ints[1], ints[0]}} {
		d, m := dm[0], dm[1]
		if m >= 1 && m <= 12 && d >= 1 && d <= daysIn(m, year) {
			return d, m, true
		}
	}
	return 0, 0, false
}

func daysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func twoToFourDigitYear(y int) int {
	if y > 50 {
		return 1900 + y
	}
	return 2000 + y
}

func insideOther(m Match, all []Match) bool {
	for _, o := range all {
		if o.Begin <= m.Begin && o.End() >= m.End() && o.Length > m.Length {
			return true
		}
	}
	return false
}

func allDigits(s []rune) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// atoi parses a run of ASCII digits known to be short.
func atoi(s []rune) int {
	v := 0
	for _, r := range s {
		v = v*10 + int(r-'0')
	}
	return v
}

func parseDigits(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
