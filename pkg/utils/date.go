package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// Today retorna a data atual à meia-noite no fuso local
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// FirstDayOfMonth retorna o primeiro dia do mês da data informada
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastDayOfMonth retorna o último dia do mês da data informada
func LastDayOfMonth(t time.Time) time.Time {
	return FirstDayOfMonth(t).AddDate(0, 1, -1)
}
