// Package parsing converte o texto do livro de vendas em registros tipados
package parsing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

// Mode define como linhas malformadas são tratadas
type Mode string

const (
	// ModePermissive mantém toda linha; colunas numéricas inválidas viram NaN
	ModePermissive Mode = "permissive"
	// ModeStrict interrompe a leitura na primeira linha inválida
	ModeStrict Mode = "strict"
	// ModeSkip descarta linhas inválidas e registra seus números
	ModeSkip Mode = "skip"
)

const (
	fieldDate       = "date"
	fieldSKU        = "sku"
	fieldUnitPrice  = "unitPrice"
	fieldQuantity   = "quantity"
	fieldTotalPrice = "totalPrice"

	fieldCount = 5
	separator  = ","
)

// ParseMode valida o modo informado na configuração; vazio equivale a permissive
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePermissive:
		return ModePermissive, nil
	case ModeStrict:
		return ModeStrict, nil
	case ModeSkip:
		return ModeSkip, nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidParseMode, s)
}

// Result contém os registros lidos, na ordem do arquivo, e os números das linhas problemáticas
type Result struct {
	Records  []domain.SaleRecord
	Poisoned []int
	Rejected []int
}

type Parser struct {
	mode Mode
}

func NewParser(mode Mode) *Parser {
	if mode == "" {
		mode = ModePermissive
	}
	return &Parser{mode: mode}
}

func (p *Parser) Mode() Mode {
	return p.mode
}

// Parse lê o livro completo. A primeira linha é o cabeçalho e é descartada.
func (p *Parser) Parse(raw string) (*Result, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &Result{Records: []domain.SaleRecord{}}, nil
	}

	return p.ParseLines(strings.Split(trimmed, "\n"))
}

// ParseLines processa linhas já separadas; lines[0] é o cabeçalho
func (p *Parser) ParseLines(lines []string) (*Result, error) {
	result := &Result{
		Records: make([]domain.SaleRecord, 0, len(lines)),
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		lineNumber := i + 1

		if strings.TrimSpace(line) == "" {
			continue
		}

		if p.mode == ModePermissive {
			record, poisoned := ParseRow(line)
			if poisoned {
				result.Poisoned = append(result.Poisoned, lineNumber)
			}
			result.Records = append(result.Records, record)
			continue
		}

		record, err := ParseRowStrict(line, lineNumber)
		if err != nil {
			if p.mode == ModeStrict {
				return nil, err
			}
			result.Rejected = append(result.Rejected, lineNumber)
			continue
		}

		result.Records = append(result.Records, record)
	}

	return result, nil
}

// ParseRow converte uma linha de forma permissiva: campos ausentes ficam vazios, campos extras
// são ignorados e colunas numéricas sem prefixo válido viram NaN. O retorno booleano indica
// se a linha ficou contaminada.
func ParseRow(line string) (domain.SaleRecord, bool) {
	fields := strings.Split(line, separator)

	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	date := field(0)
	record := domain.SaleRecord{
		Date:       date,
		Month:      domain.MonthOf(date),
		SKU:        field(1),
		UnitPrice:  lenientDecimal(field(2)),
		Quantity:   lenientInteger(field(3)),
		TotalPrice: lenientDecimal(field(4)),
	}

	return record, len(fields) != fieldCount || record.IsPoisoned()
}

// ParseRowStrict converte uma linha exigindo exatamente cinco campos válidos
func ParseRowStrict(line string, lineNumber int) (domain.SaleRecord, error) {
	fields := strings.Split(line, separator)
	if len(fields) != fieldCount {
		return domain.SaleRecord{}, newRowParseError(ErrFieldCount, lineNumber, "", fmt.Sprintf("%d fields", len(fields)))
	}

	date := strings.TrimSpace(fields[0])
	if _, err := utils.ParseDate(date); err != nil || date == "" {
		return domain.SaleRecord{}, newRowParseError(ErrInvalidDate, lineNumber, fieldDate, fields[0])
	}

	sku := fields[1]
	if strings.TrimSpace(sku) == "" {
		return domain.SaleRecord{}, newRowParseError(ErrMissingSKU, lineNumber, fieldSKU, sku)
	}

	unitPrice, ok := strictDecimal(fields[2])
	if !ok {
		return domain.SaleRecord{}, newRowParseError(ErrInvalidNumber, lineNumber, fieldUnitPrice, fields[2])
	}

	quantity, ok := strictInteger(fields[3])
	if !ok {
		return domain.SaleRecord{}, newRowParseError(ErrInvalidNumber, lineNumber, fieldQuantity, fields[3])
	}

	totalPrice, ok := strictDecimal(fields[4])
	if !ok {
		return domain.SaleRecord{}, newRowParseError(ErrInvalidNumber, lineNumber, fieldTotalPrice, fields[4])
	}

	return domain.SaleRecord{
		Date:       date,
		Month:      domain.MonthOf(date),
		SKU:        sku,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		TotalPrice: totalPrice,
	}, nil
}
