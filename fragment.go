package sqlselect

import (
	"fmt"
	"strings"

	"github.com/biyonik/sqlselect/cond"
	"github.com/biyonik/sqlselect/dialect"
	"github.com/biyonik/sqlselect/internal/validation"
)

// ----------------------------------------------------------------------------
// Clause Order
// ----------------------------------------------------------------------------

// clause, bir parçanın SQL metnindeki sabit sırasıdır.
type clause int

const (
	clauseSelect clause = iota
	clauseFrom
	clauseJoin
	clauseWhere
	clauseGroupBy
	clauseHaving
	clauseOrderBy
	clauseLimit
)

// ----------------------------------------------------------------------------
// SQL Writer
// ----------------------------------------------------------------------------

// sqlWriter, parçaları tek bir metin ve argüman listesinde toplar.
type sqlWriter struct {
	g    dialect.Grammar
	sql  strings.Builder
	args []any
}

func (w *sqlWriter) write(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

// condition, koşulu yer tutucu numaralandırmasını sürdürerek yazar.
func (w *sqlWriter) condition(n cond.Node) error {
	text, args, err := cond.Compile(n, w.g, len(w.args))
	if err != nil {
		return err
	}
	w.sql.WriteString(text)
	w.args = append(w.args, args...)
	return nil
}

// ----------------------------------------------------------------------------
// Fragment Interface
// ----------------------------------------------------------------------------

// fragment, Statement'a eklenen tek bir cümledir.
// Parçalar eklendikten sonra değiştirilmez.
type fragment interface {
	clause() clause

	// check, parçayı eklenme anında doğrular.
	// Bağlanmamış koşullar burada değil, serileştirmede yakalanır.
	check(g dialect.Grammar) error

	writeTo(w *sqlWriter) error
}

// checkByWriting, koşul içermeyen parçaları geçici bir yazıcıyla doğrular.
func checkByWriting(f fragment, g dialect.Grammar) error {
	return f.writeTo(&sqlWriter{g: g})
}

// ----------------------------------------------------------------------------
// Column References
// ----------------------------------------------------------------------------

// column, kolon listesindeki veya FROM/JOIN'deki tek bir isimdir.
type column struct {
	name  string
	alias string
	raw   bool
}

func (c column) writeTo(w *sqlWriter) error {
	if !c.raw {
		wrapped, err := w.g.WrapAlias(c.name, c.alias)
		if err != nil {
			return err
		}
		w.write(wrapped)
		return nil
	}

	w.write(c.name)
	if c.alias != "" {
		if err := validation.ValidateAlias(c.alias); err != nil {
			return err
		}
		alias, err := w.g.Wrap(c.alias)
		if err != nil {
			return err
		}
		w.write(" AS ", alias)
	}
	return nil
}

// parseColumn, kullanıcının verdiği girdiyi column'a çevirir.
// Kabul edilenler: string, Alias, tek elemanlı map[string]string ve (allowRaw ise) Raw.
func parseColumn(op operation, entry any, allowRaw bool) (column, error) {
	switch v := entry.(type) {
	case string:
		return column{name: v}, nil
	case Alias:
		return column{name: v.Name, alias: v.As}, nil
	case map[string]string:
		if len(v) != 1 {
			return column{}, &InvalidOperationError{
				Op:     string(op),
				Reason: fmt.Sprintf("alias mapping must have exactly one entry, got %d", len(v)),
			}
		}
		for name, alias := range v {
			return column{name: name, alias: alias}, nil
		}
	case Raw:
		if allowRaw {
			if strings.TrimSpace(v.SQL) == "" {
				return column{}, &InvalidOperationError{Op: string(op), Reason: "raw expression is empty"}
			}
			return column{name: v.SQL, alias: v.alias, raw: true}, nil
		}
	}
	return column{}, &InvalidOperationError{
		Op:     string(op),
		Reason: fmt.Sprintf("unsupported entry of type %T", entry),
	}
}

func writeColumns(w *sqlWriter, cols []column) error {
	for i, c := range cols {
		if i > 0 {
			w.write(", ")
		}
		if err := c.writeTo(w); err != nil {
			return err
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// SELECT
// ----------------------------------------------------------------------------

type columnsFragment struct {
	options []string
	columns []column
}

func (f columnsFragment) clause() clause { return clauseSelect }

func (f columnsFragment) check(g dialect.Grammar) error {
	if err := validation.ValidateSelectOptions(f.options); err != nil {
		return err
	}
	return checkByWriting(f, g)
}

func (f columnsFragment) writeTo(w *sqlWriter) error {
	w.write("SELECT ")
	for _, opt := range f.options {
		w.write(opt, " ")
	}

	if len(f.columns) == 0 {
		w.write("*")
		return nil
	}
	return writeColumns(w, f.columns)
}

// ----------------------------------------------------------------------------
// FROM
// ----------------------------------------------------------------------------

type fromFragment struct {
	sources []column
}

func (f fromFragment) clause() clause { return clauseFrom }

func (f fromFragment) check(g dialect.Grammar) error { return checkByWriting(f, g) }

func (f fromFragment) writeTo(w *sqlWriter) error {
	w.write("FROM ")
	return writeColumns(w, f.sources)
}

// ----------------------------------------------------------------------------
// JOIN
// ----------------------------------------------------------------------------

type joinFragment struct {
	kind  dialect.JoinType
	table column
	on    cond.Node
	using []string
}

func (f joinFragment) clause() clause { return clauseJoin }

func (f joinFragment) check(g dialect.Grammar) error {
	w := &sqlWriter{g: g}
	if err := f.table.writeTo(w); err != nil {
		return err
	}
	if f.on != nil {
		return f.on.Err()
	}
	return f.writeUsing(w)
}

func (f joinFragment) writeTo(w *sqlWriter) error {
	w.write(f.kind.Keyword(), " ")
	if err := f.table.writeTo(w); err != nil {
		return err
	}

	if f.on != nil {
		w.write(" ON(")
		if err := w.condition(f.on); err != nil {
			return err
		}
		w.write(")")
		return nil
	}
	w.write(" ")
	return f.writeUsing(w)
}

func (f joinFragment) writeUsing(w *sqlWriter) error {
	w.write("USING(")
	for i, col := range f.using {
		if i > 0 {
			w.write(", ")
		}
		wrapped, err := w.g.Wrap(col)
		if err != nil {
			return err
		}
		w.write(wrapped)
	}
	w.write(")")
	return nil
}

// ----------------------------------------------------------------------------
// WHERE / HAVING
// ----------------------------------------------------------------------------

type conditionFragment struct {
	kind clause
	node cond.Node
}

func (f conditionFragment) clause() clause { return f.kind }

func (f conditionFragment) check(dialect.Grammar) error { return f.node.Err() }

func (f conditionFragment) writeTo(w *sqlWriter) error {
	if f.kind == clauseHaving {
		w.write("HAVING ")
	} else {
		w.write("WHERE ")
	}
	return w.condition(f.node)
}

// ----------------------------------------------------------------------------
// GROUP BY
// ----------------------------------------------------------------------------

type groupByFragment struct {
	columns []string
}

func (f groupByFragment) clause() clause { return clauseGroupBy }

func (f groupByFragment) check(g dialect.Grammar) error { return checkByWriting(f, g) }

func (f groupByFragment) writeTo(w *sqlWriter) error {
	w.write("GROUP BY ")
	for i, col := range f.columns {
		if i > 0 {
			w.write(", ")
		}
		wrapped, err := w.g.Wrap(col)
		if err != nil {
			return err
		}
		w.write(wrapped)
	}
	return nil
}

// ----------------------------------------------------------------------------
// ORDER BY
// ----------------------------------------------------------------------------

type orderByFragment struct {
	entries []Order
}

func (f orderByFragment) clause() clause { return clauseOrderBy }

func (f orderByFragment) check(g dialect.Grammar) error { return checkByWriting(f, g) }

func (f orderByFragment) writeTo(w *sqlWriter) error {
	w.write("ORDER BY ")
	for i, o := range f.entries {
		if i > 0 {
			w.write(", ")
		}
		wrapped, err := w.g.Wrap(o.Column)
		if err != nil {
			return err
		}
		dir, err := validation.NormalizeDirection(string(o.Direction))
		if err != nil {
			return err
		}
		w.write(wrapped, " ", dir)
	}
	return nil
}

// parseOrder, ORDER BY girdisini Order'a çevirir.
// Kabul edilenler: string (ASC), Order ve tek elemanlı map[string]string (kolon → yön).
func parseOrder(entry any) (Order, error) {
	switch v := entry.(type) {
	case string:
		return Asc(v), nil
	case Order:
		return v, nil
	case map[string]string:
		if len(v) != 1 {
			return Order{}, &InvalidOperationError{
				Op:     string(opOrderBy),
				Reason: fmt.Sprintf("order mapping must have exactly one entry, got %d", len(v)),
			}
		}
		for col, dir := range v {
			return Order{Column: col, Direction: dialect.OrderDirection(dir)}, nil
		}
	}
	return Order{}, &InvalidOperationError{
		Op:     string(opOrderBy),
		Reason: fmt.Sprintf("unsupported entry of type %T", entry),
	}
}

// ----------------------------------------------------------------------------
// LIMIT
// ----------------------------------------------------------------------------

type limitFragment struct {
	count  int
	offset *int
}

func (f limitFragment) clause() clause { return clauseLimit }

func (f limitFragment) check(dialect.Grammar) error {
	if f.count < 0 || (f.offset != nil && *f.offset < 0) {
		return ErrNegativeLimit
	}
	return nil
}

func (f limitFragment) writeTo(w *sqlWriter) error {
	w.write(w.g.CompileLimit(f.count, f.offset))
	return nil
}
