package cond

import (
	"github.com/biyonik/sqlselect/internal/validation"
)

// ----------------------------------------------------------------------------
// Operators
// ----------------------------------------------------------------------------

// Operator, ilişkisel karşılaştırma operatörüdür.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpLt
	OpGt
	OpLte
	OpGte
)

// String, operatörün adını döndürür (örn. "EQ").
func (o Operator) String() string {
	names := [...]string{"EQ", "NE", "LT", "GT", "LTE", "GTE"}
	if int(o) < len(names) {
		return names[o]
	}
	return "Unknown"
}

// Symbol, operatörün SQL yazımını döndürür (örn. "=").
func (o Operator) Symbol() string {
	symbols := [...]string{"=", "!=", "<", ">", "<=", ">="}
	if int(o) < len(symbols) {
		return symbols[o]
	}
	return ""
}

// IsOrdering, operatörün sıralama karşılaştırması (<, >, <=, >=) olup olmadığını söyler.
// Sıralama operatörleri NULL ile kullanılamaz.
func (o Operator) IsOrdering() bool {
	return o == OpLt || o == OpGt || o == OpLte || o == OpGte
}

// checkColumn, kolon adını doğrular; geçersizse hatayı döndürür.
func checkColumn(column string) error {
	return validation.ValidateIdentifier(column)
}

// ----------------------------------------------------------------------------
// Comparison
// ----------------------------------------------------------------------------

// Comparison, "kolon OP ?" veya "kolon OP kolon" karşılaştırmasıdır.
//
// İkinci kolon verilmemişse düğüm Bind çağrılana kadar bağlanmamıştır ve
// bu hâliyle derlenemez.
type Comparison struct {
	op     Operator
	column string
	rhs    string
	value  any
	bound  bool
	err    error
}

func newComparison(op Operator, column string, rhs []string) *Comparison {
	n := &Comparison{op: op, column: column}
	if err := checkColumn(column); err != nil {
		n.err = err
		return n
	}

	switch len(rhs) {
	case 0:
	case 1:
		if err := checkColumn(rhs[0]); err != nil {
			n.err = err
			return n
		}
		n.rhs = rhs[0]
	default:
		n.err = &InvalidOperationError{
			Op:     op.String(),
			Column: column,
			Reason: "at most one right-hand column is allowed",
		}
	}
	return n
}

// Eq, "kolon = ?" (veya rhs verilirse "kolon = rhs") karşılaştırması oluşturur.
func Eq(column string, rhs ...string) *Comparison { return newComparison(OpEq, column, rhs) }

// Ne, "kolon != ?" karşılaştırması oluşturur.
func Ne(column string, rhs ...string) *Comparison { return newComparison(OpNe, column, rhs) }

// Lt, "kolon < ?" karşılaştırması oluşturur.
func Lt(column string, rhs ...string) *Comparison { return newComparison(OpLt, column, rhs) }

// Gt, "kolon > ?" karşılaştırması oluşturur.
func Gt(column string, rhs ...string) *Comparison { return newComparison(OpGt, column, rhs) }

// Lte, "kolon <= ?" karşılaştırması oluşturur.
func Lte(column string, rhs ...string) *Comparison { return newComparison(OpLte, column, rhs) }

// Gte, "kolon >= ?" karşılaştırması oluşturur.
func Gte(column string, rhs ...string) *Comparison { return newComparison(OpGte, column, rhs) }

// Bind, karşılaştırmaya değer bağlar ve aynı düğümü döndürür.
//
// nil veya Null verilirse EQ "IS NULL", NE "IS NOT NULL" olarak yazılır ve argüman
// üretmez. Sıralama operatörleriyle NULL, iki kolonlu karşılaştırmaya bağlama,
// liste bağlama ve ikinci kez bağlama InvalidOperationError kaydeder.
func (n *Comparison) Bind(v any) *Comparison {
	if n.err != nil {
		return n
	}

	switch {
	case n.rhs != "":
		n.err = n.misuse("cannot bind a value to a column-to-column comparison")
	case n.bound:
		n.err = n.misuse("comparison is already bound")
	case isNull(v) && n.op.IsOrdering():
		n.err = n.misuse("NULL cannot be used with " + n.op.String())
	case isList(v):
		n.err = n.misuse("list values are only accepted by IN")
	default:
		n.value = v
		n.bound = true
	}
	return n
}

// Operator, karşılaştırmanın operatörünü döndürür.
func (n *Comparison) Operator() Operator { return n.op }

// Err, kaydedilmiş ilk hatayı döndürür.
func (n *Comparison) Err() error { return n.err }

func (n *Comparison) misuse(reason string) error {
	return &InvalidOperationError{Op: "Bind", Column: n.column, Reason: reason}
}

func (n *Comparison) writeTo(c *compiler) error {
	if n.err != nil {
		return n.err
	}

	col, err := c.g.Wrap(n.column)
	if err != nil {
		return err
	}

	if n.rhs != "" {
		rhs, err := c.g.Wrap(n.rhs)
		if err != nil {
			return err
		}
		c.write(col, " ", n.op.Symbol(), " ", rhs)
		return nil
	}

	if !n.bound {
		return &InvalidOperationError{Op: "Compile", Column: n.column, Reason: n.op.String() + " comparison has no bound value"}
	}

	if isNull(n.value) {
		switch n.op {
		case OpEq:
			c.write(col, " IS NULL")
		case OpNe:
			c.write(col, " IS NOT NULL")
		default:
			return n.misuse("NULL cannot be used with " + n.op.String())
		}
		return nil
	}

	c.write(col, " ", n.op.Symbol(), " ")
	c.bind(n.value)
	return nil
}

// ----------------------------------------------------------------------------
// BETWEEN
// ----------------------------------------------------------------------------

// Range, "kolon BETWEEN ? AND ?" koşuludur. Her iki sınır da bağlanır.
type Range struct {
	column     string
	start, end any
	err        error
}

// Between, iki sınırlı BETWEEN koşulu oluşturur. Sınırlar NULL veya liste olamaz.
func Between(column string, start, end any) *Range {
	n := &Range{column: column, start: start, end: end}
	switch {
	case checkColumn(column) != nil:
		n.err = checkColumn(column)
	case isNull(start) || isNull(end):
		n.err = &InvalidOperationError{Op: "Between", Column: column, Reason: "bounds cannot be NULL"}
	case isList(start) || isList(end):
		n.err = &InvalidOperationError{Op: "Between", Column: column, Reason: "bounds must be scalar values"}
	}
	return n
}

// Err, kaydedilmiş ilk hatayı döndürür.
func (n *Range) Err() error { return n.err }

func (n *Range) writeTo(c *compiler) error {
	if n.err != nil {
		return n.err
	}
	col, err := c.g.Wrap(n.column)
	if err != nil {
		return err
	}

	c.write(col, " BETWEEN ")
	c.bind(n.start)
	c.write(" AND ")
	c.bind(n.end)
	return nil
}

// ----------------------------------------------------------------------------
// IN
// ----------------------------------------------------------------------------

// InList, "kolon IN(?,?,...)" koşuludur. Her eleman için bir yer tutucu yazılır.
type InList struct {
	column string
	values []any
	bound  bool
	err    error
}

// In, IN koşulu oluşturur.
//
// Değer verilirse Bind çağrılmış sayılır: tek bir liste (örn. []int{1, 2}) ya da
// tek tek skaler değerler kabul edilir. Değer verilmezse düğüm bağlanmamıştır.
func In(column string, values ...any) *InList {
	n := &InList{column: column}
	if err := checkColumn(column); err != nil {
		n.err = err
		return n
	}

	switch {
	case len(values) == 0:
	case len(values) == 1 && isList(values[0]):
		n.Bind(values[0])
	default:
		n.Bind(values)
	}
	return n
}

// Bind, IN listesini bağlar ve aynı düğümü döndürür.
//
// Boş liste EmptyListError, liste olmayan değer, NULL eleman veya ikinci kez
// bağlama InvalidOperationError kaydeder.
func (n *InList) Bind(v any) *InList {
	if n.err != nil {
		return n
	}
	if n.bound {
		n.err = n.misuse("IN list is already bound")
		return n
	}
	if !isList(v) {
		n.err = n.misuse("IN requires a list value")
		return n
	}

	values := listValues(v)
	if len(values) == 0 {
		n.err = &EmptyListError{Column: n.column}
		return n
	}
	for _, val := range values {
		if isNull(val) {
			n.err = n.misuse("IN list cannot contain NULL")
			return n
		}
		if isList(val) {
			n.err = n.misuse("IN list elements must be scalar values")
			return n
		}
	}

	n.values = values
	n.bound = true
	return n
}

// Err, kaydedilmiş ilk hatayı döndürür.
func (n *InList) Err() error { return n.err }

func (n *InList) misuse(reason string) error {
	return &InvalidOperationError{Op: "Bind", Column: n.column, Reason: reason}
}

func (n *InList) writeTo(c *compiler) error {
	if n.err != nil {
		return n.err
	}
	if !n.bound {
		return &InvalidOperationError{Op: "Compile", Column: n.column, Reason: "IN has no bound list"}
	}

	col, err := c.g.Wrap(n.column)
	if err != nil {
		return err
	}

	c.write(col, " IN(")
	for i, v := range n.values {
		if i > 0 {
			c.write(",")
		}
		c.bind(v)
	}
	c.write(")")
	return nil
}

// ----------------------------------------------------------------------------
// IS NULL / IS NOT NULL
// ----------------------------------------------------------------------------

// NullCheck, "kolon IS NULL" veya "kolon IS NOT NULL" koşuludur. Argüman üretmez.
type NullCheck struct {
	column string
	not    bool
	err    error
}

// IsNull, "kolon IS NULL" koşulu oluşturur.
func IsNull(column string) *NullCheck {
	return &NullCheck{column: column, err: checkColumn(column)}
}

// IsNotNull, "kolon IS NOT NULL" koşulu oluşturur.
func IsNotNull(column string) *NullCheck {
	return &NullCheck{column: column, not: true, err: checkColumn(column)}
}

// Err, kaydedilmiş ilk hatayı döndürür.
func (n *NullCheck) Err() error { return n.err }

func (n *NullCheck) writeTo(c *compiler) error {
	if n.err != nil {
		return n.err
	}
	col, err := c.g.Wrap(n.column)
	if err != nil {
		return err
	}

	if n.not {
		c.write(col, " IS NOT NULL")
	} else {
		c.write(col, " IS NULL")
	}
	return nil
}

// ----------------------------------------------------------------------------
// LIKE
// ----------------------------------------------------------------------------

// Pattern, "kolon LIKE ?" koşuludur. Desen her zaman bağlanır.
type Pattern struct {
	column  string
	pattern any
	err     error
}

// Like, LIKE koşulu oluşturur. Desen NULL veya liste olamaz.
func Like(column string, pattern any) *Pattern {
	n := &Pattern{column: column, pattern: pattern}
	switch {
	case checkColumn(column) != nil:
		n.err = checkColumn(column)
	case isNull(pattern):
		n.err = &InvalidOperationError{Op: "Like", Column: column, Reason: "pattern cannot be NULL"}
	case isList(pattern):
		n.err = &InvalidOperationError{Op: "Like", Column: column, Reason: "pattern must be a scalar value"}
	}
	return n
}

// Err, kaydedilmiş ilk hatayı döndürür.
func (n *Pattern) Err() error { return n.err }

func (n *Pattern) writeTo(c *compiler) error {
	if n.err != nil {
		return n.err
	}
	col, err := c.g.Wrap(n.column)
	if err != nil {
		return err
	}

	c.write(col, " LIKE ")
	c.bind(n.pattern)
	return nil
}
