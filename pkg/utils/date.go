package utils

import "time"

// DateLayout é o formato das datas do livro de vendas
const DateLayout = "2006-01-02"

// ParseDate converte uma data yyyy-mm-dd. Texto vazio resulta na data zero, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
