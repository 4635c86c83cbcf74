package domain

import (
	"bytes"
	"math"
	"strconv"
)

// Amount é um valor numérico do livro de vendas.
// NaN indica uma coluna que não pôde ser convertida e contamina qualquer soma que a inclua.
type Amount float64

// NaN retorna o valor usado para colunas numéricas inválidas
func NaN() Amount {
	return Amount(math.NaN())
}

func (a Amount) IsNaN() bool {
	return math.IsNaN(float64(a))
}

func (a Amount) Float64() float64 {
	return float64(a)
}

// MarshalJSON escreve NaN e infinitos como null, já que JSON não os representa
func (a Amount) MarshalJSON() ([]byte, error) {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}

	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// UnmarshalJSON lê null como NaN para que relatórios armazenados mantenham o valor contaminado
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = NaN()
		return nil
	}

	f, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return err
	}

	*a = Amount(f)
	return nil
}
