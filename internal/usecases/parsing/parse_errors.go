package parsing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParseMode = errors.New("invalid parse mode")
	ErrFieldCount       = errors.New("unexpected field count")
	ErrInvalidDate      = errors.New("invalid date")
	ErrMissingSKU       = errors.New("missing sku")
	ErrInvalidNumber    = errors.New("invalid number")
)

// RowParseError descreve uma linha rejeitada nos modos strict e skip
type RowParseError struct {
	Err   error  // Erro base
	Line  int    // Número da linha no arquivo (cabeçalho = 1)
	Field string // Campo que falhou, vazio quando a linha inteira é inválida
	Value string // Valor encontrado
}

// Error implementa a interface error
func (e *RowParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: %s: field %s=%q", e.Line, e.Err.Error(), e.Field, e.Value)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *RowParseError) Unwrap() error {
	return e.Err
}

func newRowParseError(err error, line int, field string, value string) *RowParseError {
	return &RowParseError{
		Err:   err,
		Line:  line,
		Field: field,
		Value: value,
	}
}
