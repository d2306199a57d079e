package pgxrepo

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Table maps the product attributes onto a concrete table's columns.
type Table struct {
	Name        string
	ID          string
	NameCol     string
	Description string
	Category    string
	Price       string
}

var (
	ProductsTable = Table{
		Name:        "products",
		ID:          "id",
		NameCol:     "name",
		Description: "description",
		Category:    "category",
		Price:       "price",
	}

	// ProductosTable is the legacy table POST /productos writes to by default.
	ProductosTable = Table{
		Name:        "productos",
		ID:          "id",
		NameCol:     "nombre",
		Description: "descripcion",
		Category:    "categoria",
		Price:       "precio",
	}
)

// TableByName resolves a configured table name to one of the known layouts.
func TableByName(name string) (Table, error) {
	switch name {
	case ProductsTable.Name:
		return ProductsTable, nil
	case ProductosTable.Name:
		return ProductosTable, nil
	default:
		return Table{}, fmt.Errorf("unknown products table %q", name)
	}
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (t Table) quoted() string {
	return ident(t.Name)
}

// selectList is the column list in the order scanProduct expects.
func (t Table) selectList() string {
	return ident(t.ID) + ", " + ident(t.NameCol) + ", " + ident(t.Description) + ", " + ident(t.Category) + ", " + ident(t.Price)
}

// DDL creates the table when it does not exist yet.
func (t Table) DDL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TEXT,
	%s TEXT,
	%s DOUBLE PRECISION NOT NULL DEFAULT 0
)`, t.quoted(), ident(t.ID), ident(t.NameCol), ident(t.Description), ident(t.Category), ident(t.Price))
}
