// Package dialect, SELECT ifadelerinin veritabanına özgü yazım kurallarını sağlar.
// Koşul ağacı (cond) ve ifade birleştirici (sqlselect) metni kendisi kurar; bir Grammar
// yalnızca isimlerin nasıl tırnaklanacağını, yer tutucuların nasıl yazılacağını ve
// LIMIT/OFFSET cümlesinin biçimini belirler.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

// ----------------------------------------------------------------------------
// Grammar Interface
// ----------------------------------------------------------------------------

// Grammar, sorgu parçalarını veritabanına özgü SQL yazımına çevirir.
type Grammar interface {
	// Name, gramerin kimliğini döndürür (örn. "mysql").
	Name() string

	// Wrap, bir sütun veya tablo adını veritabanına özgü tırnaklarla sarar.
	// Geçersiz karakter içeriyorsa hata döner.
	Wrap(identifier string) (string, error)

	// WrapAlias, bir adı ve takma adını "`ad` AS `takma`" biçiminde sarar.
	// Takma ad boşsa Wrap ile aynı sonucu verir.
	WrapAlias(name, alias string) (string, error)

	// Placeholder, verilen sıra (1'den başlar) için parametre yer tutucusunu döndürür.
	// MySQL: "?", indeks tabanlı lehçeler: "$1", "$2" vb.
	Placeholder(index int) string

	// CompileLimit, LIMIT ve isteğe bağlı OFFSET cümlesini derler.
	// Değerler tamsayı olarak metne yazılır, bağlanmaz.
	CompileLimit(count int, offset *int) string
}

// ----------------------------------------------------------------------------
// Base Grammar (ortak fonksiyonlar)
// ----------------------------------------------------------------------------

// BaseGrammar, tüm gramer implementasyonları için ortak fonksiyonellik sağlar.
type BaseGrammar struct {
	name string
}

// Name, gramerin adını döndürür.
func (g *BaseGrammar) Name() string {
	return g.name
}

// ----------------------------------------------------------------------------
// ORDER BY Types
// ----------------------------------------------------------------------------

// OrderDirection, sıralama yönünü belirtir.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// IsValid, yönün geçerli olup olmadığını kontrol eder.
func (d OrderDirection) IsValid() bool {
	return d == OrderAsc || d == OrderDesc
}

// ----------------------------------------------------------------------------
// JOIN Types
// ----------------------------------------------------------------------------

// JoinType, JOIN türünü belirtir.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
)

// Keyword, JOIN türünün SQL anahtar kelimesini döndürür (örn. "LEFT JOIN").
func (t JoinType) Keyword() string {
	return string(t) + " JOIN"
}

// IsValid, JOIN türünün desteklenip desteklenmediğini kontrol eder.
func (t JoinType) IsValid() bool {
	switch t {
	case JoinInner, JoinLeft, JoinRight:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Sentinel Errors (dialect-specific)
// ----------------------------------------------------------------------------

// ErrNegativeLimit, LIMIT veya OFFSET için negatif değer verildiğinde döner.
// Ana paket ile import döngüsünü önlemek için burada tanımlanmıştır.
var ErrNegativeLimit = &DialectError{Message: "limit and offset must not be negative"}

// DialectError, dialect'e özgü hataları temsil eder.
type DialectError struct {
	Message string
}

// Error, hatayı string olarak döndürür.
func (e *DialectError) Error() string {
	return "dialect: " + e.Message
}
