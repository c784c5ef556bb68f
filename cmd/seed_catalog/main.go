// seed_catalog genera scripts SQL idempotentes para poblar catálogos (footprints o unidades)
// a partir de un CSV. Acepta archivos UTF-8 o ISO-8859-1 (exportaciones de hojas de cálculo).
//
// Uso: go run ./cmd/seed_catalog <footprints|units> <archivo.csv> [salida.sql]
// CSV footprints: nombre[,descripción]. CSV units: nombre[,abreviatura].
// Sin salida explícita escribe en internal/infrastructure/postgres/seed_<tipo>.sql.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogKind tabla destino y nombre de la segunda columna.
type catalogKind struct {
	table  string
	column string
}

var kinds = map[string]catalogKind{
	"footprints": {table: "footprints", column: "description"},
	"units":      {table: "part_units", column: "short_name"},
}

type row struct {
	name, extra string
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog <footprints|units> <archivo.csv> [salida.sql]")
		os.Exit(2)
	}
	kind := os.Args[1]
	raw, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seed_"+kind+".sql")
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	n, err := generate(out, raw, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros de %s\n", outPath, n, kind)
}

// generate escribe los INSERT del catálogo y devuelve cuántas filas emitió.
func generate(w io.Writer, raw []byte, kind string) (int, error) {
	k, ok := kinds[kind]
	if !ok {
		return 0, fmt.Errorf("tipo de catálogo desconocido: %q", kind)
	}
	rows, err := readRows(raw)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, errors.New("el CSV no contiene filas")
	}

	fmt.Fprintf(w, "-- Catálogo %s generado por seed_catalog\n\n", k.table)
	for _, r := range rows {
		fmt.Fprintf(w, "INSERT INTO %s (name, %s) VALUES ('%s', '%s')\n", k.table, k.column, escapeSQL(r.name), escapeSQL(r.extra))
		fmt.Fprintf(w, "ON CONFLICT ((lower(name))) DO UPDATE SET %s = EXCLUDED.%s;\n", k.column, k.column)
	}
	return len(rows), nil
}

// readRows decodifica el CSV: omite cabecera "name"/"nombre", filas sin nombre y duplicados
// (sin distinguir mayúsculas, igual que el índice único).
func readRows(raw []byte) ([]row, error) {
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	seen := map[string]bool{}
	var rows []row
	for first := true; ; first = false {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		name := strings.TrimSpace(rec[0])
		if first && (strings.EqualFold(name, "name") || strings.EqualFold(name, "nombre")) {
			continue
		}
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		rw := row{name: name}
		if len(rec) > 1 {
			rw.extra = strings.TrimSpace(rec[1])
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
