// Package cond, SELECT ifadelerinde kullanılan koşul ağacını sağlar.
//
// Ağaç yapraklardan (karşılaştırma, BETWEEN, IN, IS NULL, LIKE) ve bunları birleştiren
// mantıksal düğümlerden (AND, OR, NOT) oluşur. Değerler asla metne gömülmez; her değer
// için bir yer tutucu yazılır ve değer, yer tutucuyla aynı sırada argüman listesine eklenir.
//
// Metin ve argümanlar tek bir geçişte üretilir. Böylece N. yer tutucu her zaman N. argümana
// karşılık gelir:
//
//	where := cond.And(
//	    cond.Eq("id").Bind(1337),
//	    cond.Between("stamp", "2013-01-06", "2014-03-31"),
//	)
//	sql, args, err := cond.Compile(where, dialect.MySQL(), 0)
//	// sql:  `id` = ? AND `stamp` BETWEEN ? AND ?
//	// args: [1337 2013-01-06 2014-03-31]
//
// NULL bağlanan eşitlikler IS NULL / IS NOT NULL biçimine çevrilir ve argüman üretmez.
//
// Hatalı kullanım (ikinci kez bağlama, iki kolonlu karşılaştırmaya değer bağlama, boş IN
// listesi vb.) çağrı anında düğüme kaydedilir. İlk hata kazanır; Err() hatayı hemen
// gösterir ve Compile aynı hatayı döndürür.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package cond

import (
	"strings"

	"github.com/biyonik/sqlselect/dialect"
)

// ----------------------------------------------------------------------------
// Node Interface
// ----------------------------------------------------------------------------

// Node, koşul ağacındaki her düğümün ortak arayüzüdür.
// Arayüz mühürlüdür; yalnızca bu paketteki tipler implemente edebilir.
type Node interface {
	// Err, düğüme (veya alt düğümlerine) kaydedilmiş ilk hatayı döndürür.
	Err() error

	writeTo(c *compiler) error
}

// IsNil, düğümün nil olup olmadığını söyler. Tipli nil işaretçiler de nil sayılır
// (örn. atanmamış bir "var c *cond.Comparison").
func IsNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Comparison:
		return v == nil
	case *Range:
		return v == nil
	case *InList:
		return v == nil
	case *NullCheck:
		return v == nil
	case *Pattern:
		return v == nil
	case *Group:
		return v == nil
	case *Negation:
		return v == nil
	}
	return false
}

// defaultGrammar, gramer verilmeyen görünümler (BoundArgs) için kullanılır.
var defaultGrammar dialect.Grammar = dialect.MySQL()

// ----------------------------------------------------------------------------
// Compiler
// ----------------------------------------------------------------------------

// compiler, tek geçişte metni ve argümanları biriktirir.
type compiler struct {
	g     dialect.Grammar
	sql   strings.Builder
	args  []any
	index int
}

func (c *compiler) write(parts ...string) {
	for _, p := range parts {
		c.sql.WriteString(p)
	}
}

// bind, bir yer tutucu yazar ve değeri aynı sırada argümanlara ekler.
func (c *compiler) bind(v any) {
	c.index++
	c.sql.WriteString(c.g.Placeholder(c.index))
	c.args = append(c.args, v)
}

// Compile, düğümü verilen gramerle SQL metnine ve sıralı argüman listesine çevirir.
//
// offset, daha önce yazılmış yer tutucu sayısıdır; indeks tabanlı lehçelerde ($1, $2)
// numaralandırma offset+1'den devam eder. Hata durumunda kısmi sonuç dönmez.
func Compile(n Node, g dialect.Grammar, offset int) (string, []any, error) {
	if IsNil(n) {
		return "", nil, &InvalidOperationError{Op: "Compile", Reason: "condition is nil"}
	}
	if g == nil {
		g = defaultGrammar
	}

	c := &compiler{g: g, index: offset, args: make([]any, 0)}
	if err := n.writeTo(c); err != nil {
		return "", nil, err
	}
	return c.sql.String(), c.args, nil
}

// Text, düğümün SQL metnini döndürür.
func Text(n Node, g dialect.Grammar) (string, error) {
	sql, _, err := Compile(n, g, 0)
	return sql, err
}

// BoundArgs, düğümün bağlı değerlerini metindeki yer tutucu sırasıyla döndürür.
// Argüman üretmeyen düğümler (IS NULL, iki kolonlu karşılaştırma) atlanır.
func BoundArgs(n Node) ([]any, error) {
	_, args, err := Compile(n, defaultGrammar, 0)
	return args, err
}

// Placeholders, metindeki "?" yer tutucularını sayar.
// Backtick ile tırnaklanmış isimlerin, tek ve çift tırnaklı metinlerin içi sayılmaz.
func Placeholders(text string) int {
	count := 0
	var quote rune
	for _, r := range text {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '`' || r == '\'' || r == '"':
			quote = r
		case r == '?':
			count++
		}
	}
	return count
}
