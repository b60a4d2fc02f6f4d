// sqlselect, Go dilinde programatik SELECT ifadeleri oluşturmayı ve çalıştırmayı
// sağlayan bir kütüphanedir. İfadeler bir durum makinesiyle kurulur, koşullar cond
// paketindeki ağaçla ifade edilir ve değerler her zaman yer tutucularla bağlanır.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com

package sqlselect

import (
	"context"
	"database/sql"

	"github.com/biyonik/sqlselect/dialect"
)

// Version, sqlselect kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// Connect, verilen driver ve veri kaynağıyla yeni bir veritabanı bağlantısı oluşturur ve DB örneğini döndürür.
// Bağlantının doğruluğunu kontrol eder ve hata oluşursa WrapError ile sarar.
//
// Örnek:
//
//	db, err := sqlselect.Connect(ctx, "mysql", "user:pass@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func Connect(ctx context.Context, driverName, dataSourceName string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, WrapError("connect", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, WrapError("ping", err)
	}

	return NewDB(sqlDB, opts...), nil
}

// Open, Config yapısı kullanarak yeni bir veritabanı bağlantısı oluşturur.
// Bağlantı havuz ayarlarını uygular ve DSN oluşturur.
//
// Örnek:
//
//	cfg := sqlselect.DefaultConfig()
//	cfg.Database = "blog"
//	db, err := sqlselect.Open(ctx, cfg)
func Open(ctx context.Context, cfg *Config, opts ...Option) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	db, err := Connect(ctx, cfg.Driver, cfg.DSN(), opts...)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.DB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.DB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		db.DB.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	if cfg.ConnMaxIdle > 0 {
		db.DB.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	}

	return db, nil
}

// Select, bağlantısız yeni bir Statement başlatır. SQL metni üretmek için kullanılır;
// çalıştırma metotları ErrNoExecutor döndürür.
//
// Örnek:
//
//	sql, args, err := sqlselect.Select("id", "title").
//	    From("article").
//	    Where(cond.Eq("category").Bind(5)).
//	    ToSQL()
func Select(columns ...any) *Statement {
	return NewStatement(nil).Select(columns...)
}

// ----------------------------------------------------------------------------
// Column Helpers
// ----------------------------------------------------------------------------

// SelectOption, SELECT anahtar kelimesinden sonra gelen MySQL seçeneğidir.
// Select'e kolonlarla birlikte verilir; sırası korunur.
type SelectOption string

const (
	All              SelectOption = "ALL"
	Distinct         SelectOption = "DISTINCT"
	DistinctRow      SelectOption = "DISTINCTROW"
	HighPriority     SelectOption = "HIGH_PRIORITY"
	StraightJoin     SelectOption = "STRAIGHT_JOIN"
	SQLSmallResult   SelectOption = "SQL_SMALL_RESULT"
	SQLBigResult     SelectOption = "SQL_BIG_RESULT"
	SQLBufferResult  SelectOption = "SQL_BUFFER_RESULT"
	SQLNoCache       SelectOption = "SQL_NO_CACHE"
	SQLCalcFoundRows SelectOption = "SQL_CALC_FOUND_ROWS"
)

// Alias, takma adlı bir kolon ya da tablo referansıdır: `Name` AS `As`.
type Alias struct {
	Name string
	As   string
}

// As, Alias için kısayoldur.
//
// Örnek:
//
//	sqlselect.Select(sqlselect.As("u.name", "author")).From(sqlselect.As("users", "u"))
func As(name, alias string) Alias {
	return Alias{Name: name, As: alias}
}

// Raw, kaçış yapılmayacak ham SQL ifadesini temsil eder.
// Yalnızca SELECT listesinde kabul edilir ve argüman bağlamaz.
// Sadece güvenli ve kontrol edilen girdi için kullanın.
type Raw struct {
	SQL   string
	alias string
}

// NewRaw, yeni bir Raw SQL ifadesi oluşturur.
//
// Örnek:
//
//	sqlselect.Select(sqlselect.NewRaw("COUNT(*)").As("total"))
func NewRaw(sql string) Raw {
	return Raw{SQL: sql}
}

// As, ifadeye takma ad verir. Takma ad doğrulanır ve tırnaklanır.
func (r Raw) As(alias string) Raw {
	r.alias = alias
	return r
}

// String, ham SQL ifadesini string olarak döndürür.
func (r Raw) String() string {
	return r.SQL
}

// Order, ORDER BY listesindeki tek bir kolondur.
type Order struct {
	Column    string
	Direction dialect.OrderDirection
}

// Asc, artan sıralama oluşturur.
func Asc(column string) Order {
	return Order{Column: column, Direction: dialect.OrderAsc}
}

// Desc, azalan sıralama oluşturur.
func Desc(column string) Order {
	return Order{Column: column, Direction: dialect.OrderDesc}
}

// ForPage, sayfa numarasına göre LIMIT ve OFFSET ayarlar. Geçersiz değerler
// Pagination'ın varsayılanlarına çekilir.
func (s *Statement) ForPage(page, perPage int) *Statement {
	p := NewPagination(page, perPage, 0)
	return s.Limit(p.PerPage, p.Offset())
}
