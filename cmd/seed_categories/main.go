// seed_categories genera un script SQL para poblar product_categories a partir de la
// exportación CSV del inventario (ISO-8859-1, separador ';', columnas id;nombre;id_padre).
//
// Uso: go run ./cmd/seed_categories [ruta/categorias.csv]
// Por defecto busca categorias.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/seeds/product_categories.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type category struct {
	id       string
	name     string
	parentID string
}

func main() {
	csvPath := "categorias.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cats, err := readCategories(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seeds")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "product_categories.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, cats); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías\n", outPath, len(cats))
}

// readCategories lee id;nombre;id_padre. Ignora la cabecera y las filas sin id o nombre.
func readCategories(r io.Reader) ([]category, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var cats []category
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "id") {
			continue
		}
		if len(rec) < 2 {
			continue
		}
		c := category{id: strings.TrimSpace(rec[0]), name: strings.TrimSpace(rec[1])}
		if len(rec) > 2 {
			c.parentID = strings.TrimSpace(rec[2])
		}
		if c.id == "" || c.name == "" {
			continue
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// completeNames arma la ruta "Padre / Hijo" de cada categoría. Un ciclo corta la ruta.
func completeNames(cats []category) map[string]string {
	byID := make(map[string]category, len(cats))
	for _, c := range cats {
		byID[c.id] = c
	}
	out := make(map[string]string, len(cats))
	for _, c := range cats {
		parts := []string{c.name}
		seen := map[string]bool{c.id: true}
		for p := c.parentID; p != "" && !seen[p]; {
			parent, ok := byID[p]
			if !ok {
				break
			}
			seen[p] = true
			parts = append([]string{parent.name}, parts...)
			p = parent.parentID
		}
		out[c.id] = strings.Join(parts, " / ")
	}
	return out
}

// writeSQL escribe padres antes que hijos para respetar la FK parent_id.
func writeSQL(w io.Writer, cats []category) error {
	names := completeNames(cats)
	sorted := make([]category, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := strings.Count(names[sorted[i].id], " / "), strings.Count(names[sorted[j].id], " / ")
		if di != dj {
			return di < dj
		}
		return sorted[i].id < sorted[j].id
	})

	if _, err := io.WriteString(w, "-- Categorías de producto\n-- Generado desde la exportación CSV del inventario\n\n"); err != nil {
		return err
	}
	for _, c := range sorted {
		parent := "NULL"
		if c.parentID != "" {
			parent = "'" + escapeSQL(c.parentID) + "'"
		}
		_, err := fmt.Fprintf(w,
			"INSERT INTO product_categories (id, name, parent_id, complete_name) VALUES ('%s', '%s', %s, '%s')\n"+
				"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id, complete_name = EXCLUDED.complete_name;\n",
			escapeSQL(c.id), escapeSQL(c.name), parent, escapeSQL(names[c.id]))
		if err != nil {
			return err
		}
	}
	return nil
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
