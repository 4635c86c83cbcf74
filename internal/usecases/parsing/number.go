package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

var (
	decimalPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
	integerPrefix = regexp.MustCompile(`^[+-]?\d+`)
)

// lenientDecimal converte o maior prefixo numérico do texto; sem prefixo válido o resultado é NaN
func lenientDecimal(s string) domain.Amount {
	match := decimalPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if match == "" {
		return domain.NaN()
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Expoentes fora do intervalo chegam aqui com ±Inf já preenchido
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return domain.Amount(f)
		}
		return domain.NaN()
	}

	return domain.Amount(f)
}

// lenientInteger converte o prefixo [+-]dígitos do texto, ignorando o restante ("4.7" vira 4)
func lenientInteger(s string) domain.Amount {
	match := integerPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if match == "" {
		return domain.NaN()
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return domain.NaN()
	}

	return domain.Amount(f)
}

// strictDecimal exige que o campo inteiro seja um número decimal não negativo
func strictDecimal(s string) (domain.Amount, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return domain.Amount(f), true
}

// strictInteger exige que o campo inteiro seja um inteiro não negativo
func strictInteger(s string) (domain.Amount, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 0 {
		return 0, false
	}

	return domain.Amount(i), true
}
