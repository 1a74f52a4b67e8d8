// seed_stock genera un script SQL con los registros de stock iniciales de una sucursal
// a partir de un CSV (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_stock -branch BR01 [-encoding latin1] [-node 900] [-out seed.sql] stocks.csv
//
// Columnas: stock_number,purchase_price,equipment_type_id,equipment_id,equipment_supplier_id[,status[,available_quantity]]
// La primera fila es la cabecera. Una cantidad inicial > 0 se registra como movimiento ADD en el libro,
// de modo que la cantidad del registro coincide con la suma de sus movimientos.
// El script vale para PostgreSQL y SQLite.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/idgen"
)

func main() {
	branch := flag.String("branch", "", "código de sucursal (requerido)")
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8 | latin1")
	node := flag.Int64("node", 900, "nodo snowflake para los ids generados")
	outPath := flag.String("out", "", "archivo de salida (por defecto stdout)")
	flag.Parse()

	if *branch == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_stock -branch BR01 [-encoding latin1] [-out seed.sql] stocks.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readStocks(f, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ids, err := idgen.NewSnowflake(*node)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generador de ids: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	if err := writeSQL(out, *branch, rows, ids); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generados %d registros de stock para %s\n", len(rows), *branch)
}
