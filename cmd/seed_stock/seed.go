package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// stockRow fila validada del CSV.
type stockRow struct {
	line                int
	stockNumber         string
	purchasePrice       decimal.Decimal
	equipmentTypeID     int64
	equipmentID         int64
	equipmentSupplierID int64
	status              string
	quantity            int
}

// readStocks lee y valida el CSV completo; cualquier fila inválida aborta indicando la línea.
func readStocks(r io.Reader, encoding string) ([]stockRow, error) {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8", "":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada %q", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("el CSV no tiene filas de datos")
	}

	seen := make(map[string]int)
	rows := make([]stockRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		row, err := parseRow(line, rec)
		if err != nil {
			return nil, err
		}
		key := entity.StockNumberKey(row.stockNumber)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("línea %d: número de stock %q repetido (línea %d)", line, row.stockNumber, prev)
		}
		seen[key] = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(line int, rec []string) (stockRow, error) {
	if len(rec) < 5 {
		return stockRow{}, fmt.Errorf("línea %d: se esperan al menos 5 columnas, hay %d", line, len(rec))
	}
	row := stockRow{line: line, stockNumber: strings.TrimSpace(rec[0]), status: entity.StatusActive}
	if row.stockNumber == "" {
		return row, fmt.Errorf("línea %d: stock_number vacío", line)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
	if err != nil || !price.GreaterThan(decimal.Zero) {
		return row, fmt.Errorf("línea %d: purchase_price inválido %q", line, rec[1])
	}
	row.purchasePrice = price

	for i, dst := range []*int64{&row.equipmentTypeID, &row.equipmentID, &row.equipmentSupplierID} {
		n, err := strconv.ParseInt(strings.TrimSpace(rec[2+i]), 10, 64)
		if err != nil || n <= 0 {
			return row, fmt.Errorf("línea %d: id inválido %q", line, rec[2+i])
		}
		*dst = n
	}
	if len(rec) > 5 && strings.TrimSpace(rec[5]) != "" {
		row.status = strings.ToUpper(strings.TrimSpace(rec[5]))
		if !entity.ValidStatus(row.status) {
			return row, fmt.Errorf("línea %d: status inválido %q", line, rec[5])
		}
	}
	if len(rec) > 6 && strings.TrimSpace(rec[6]) != "" {
		q, err := strconv.Atoi(strings.TrimSpace(rec[6]))
		if err != nil || q < 0 {
			return row, fmt.Errorf("línea %d: available_quantity inválido %q", line, rec[6])
		}
		row.quantity = q
	}
	return row, nil
}

// writeSQL escribe un INSERT por registro (omitido si el número ya existe en la sucursal) y,
// si hay cantidad inicial, el movimiento ADD que la justifica.
func writeSQL(w io.Writer, branch string, rows []stockRow, ids ports.IDGenerator) error {
	b := &strings.Builder{}
	b.WriteString("-- Registros de stock iniciales\n")
	fmt.Fprintf(b, "-- Sucursal %s, %d registros\n\n", branch, len(rows))

	for _, r := range rows {
		id := ids.NextID()
		fmt.Fprintf(b, "-- línea %d\n", r.line)
		fmt.Fprintf(b, "INSERT INTO equipment_stock (id, stock_number, stock_number_key, purchase_price, available_quantity, "+
			"equipment_type_id, equipment_id, equipment_supplier_id, branch_code, status, version, created_at, updated_at)\n")
		fmt.Fprintf(b, "VALUES (%d, '%s', '%s', '%s', %d, %d, %d, %d, '%s', '%s', 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)\n",
			id, escapeSQL(r.stockNumber), escapeSQL(entity.StockNumberKey(r.stockNumber)), r.purchasePrice.String(), r.quantity,
			r.equipmentTypeID, r.equipmentID, r.equipmentSupplierID, escapeSQL(branch), r.status)
		b.WriteString("ON CONFLICT (branch_code, stock_number_key) DO NOTHING;\n")

		if r.quantity > 0 {
			fmt.Fprintf(b, "INSERT INTO equipment_stock_history (id, equipment_stock_id, operation, quantity, available_quantity, "+
				"resulting_quantity, note, date, branch_code, transaction_id)\n")
			fmt.Fprintf(b, "SELECT %d, %d, 'ADD', %d, 0, %d, 'Saldo inicial', CURRENT_TIMESTAMP, '%s', '%s'\n",
				ids.NextID(), id, r.quantity, r.quantity, escapeSQL(branch), uuid.NewString())
			fmt.Fprintf(b, "WHERE EXISTS (SELECT 1 FROM equipment_stock WHERE id = %d);\n", id)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
