package pgxrepo

import (
	"fmt"
	"strconv"
	"strings"

	"productos-api/internal/domain"
)

// whereBuilder collects AND-ed conditions and numbers their placeholders.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *whereBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s anywhere, treating LIKE wildcards in s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func buildWhere(t Table, f domain.ProductFilter) *whereBuilder {
	b := &whereBuilder{}

	if f.Category != "" {
		b.add(fmt.Sprintf("%s ILIKE %s", ident(t.Category), b.arg(containsPattern(f.Category))))
	}

	if f.Keyword != "" {
		p := b.arg(containsPattern(f.Keyword))
		b.add(fmt.Sprintf("(%s ILIKE %s OR %s ILIKE %s)", ident(t.NameCol), p, ident(t.Description), p))
	}

	if f.MinPrice != nil {
		b.add(fmt.Sprintf("%s >= %s", ident(t.Price), b.arg(*f.MinPrice)))
	}
	if f.MaxPrice != nil {
		b.add(fmt.Sprintf("%s <= %s", ident(t.Price), b.arg(*f.MaxPrice)))
	}

	return b
}

// buildSearch returns the count statement and the page statement for f.
// Both share the same WHERE arguments; the page statement appends LIMIT and OFFSET.
func buildSearch(t Table, f domain.ProductFilter) (countSQL string, pageSQL string, args []any) {
	b := buildWhere(t, f)
	where := b.clause()

	countSQL = "SELECT COUNT(*) FROM " + t.quoted() + where

	n := len(b.args)
	pageSQL = fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		t.selectList(), t.quoted(), where, ident(t.ID), n+1, n+2)

	return countSQL, pageSQL, b.args
}

type columnValue struct {
	col string
	val any
}

func changedColumns(t Table, c domain.ProductChanges) []columnValue {
	var cols []columnValue
	if c.Name != nil {
		cols = append(cols, columnValue{t.NameCol, *c.Name})
	}
	if c.Description != nil {
		cols = append(cols, columnValue{t.Description, *c.Description})
	}
	if c.Category != nil {
		cols = append(cols, columnValue{t.Category, *c.Category})
	}
	if c.Price != nil {
		cols = append(cols, columnValue{t.Price, *c.Price})
	}
	return cols
}

func buildInsert(t Table, c domain.ProductChanges) (string, []any) {
	cols := changedColumns(t, c)
	names := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, cv := range cols {
		names[i] = ident(cv.col)
		params[i] = "$" + strconv.Itoa(i+1)
		args[i] = cv.val
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.quoted(), strings.Join(names, ", "), strings.Join(params, ", "), t.selectList())
	return sql, args
}

func buildUpdate(t Table, id int64, c domain.ProductChanges) (string, []any) {
	cols := changedColumns(t, c)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, cv := range cols {
		args = append(args, cv.val)
		sets[i] = fmt.Sprintf("%s = $%d", ident(cv.col), i+1)
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		t.quoted(), strings.Join(sets, ", "), ident(t.ID), len(args), t.selectList())
	return sql, args
}
