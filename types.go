package sqlselect

import (
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

/*
 * ----------------------------------------------------------------------------
 * SQLSELECT TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, paketin veri taşıma, yapılandırma ve loglama tiplerini içerir.
 *
 * Burada yapılanlar:
 * 1. Artifact: Query, oluşturulan SQL metnini ve sıralı argümanlarını taşır.
 * 2. Navigation (Navigasyon): Pagination, LIMIT/OFFSET hesaplamalarını yapar.
 * 3. Configuration (Yapılandırma): Config, bağlantının "nereye" ve "nasıl"
 * yapılacağını (pooling, charset, TLS) tek yerde toplar.
 * 4. Logging: Logger arayüzü ve zap adaptörü.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Query
// ----------------------------------------------------------------------------

// Query, serileştirilmiş bir SELECT ifadesidir.
// N. yer tutucu Args içindeki N. değere karşılık gelir.
type Query struct {
	SQL  string
	Args []any
}

// String, SQL metnini döndürür.
func (q Query) String() string {
	return q.SQL
}

// clone, Args dilimini kopyalar; çağıran tarafın değişiklikleri ifadeye sızmaz.
func (q Query) clone() Query {
	args := make([]any, len(q.Args))
	copy(args, q.Args)
	return Query{SQL: q.SQL, Args: args}
}

// ----------------------------------------------------------------------------
// Pagination Types
// ----------------------------------------------------------------------------

// Pagination, sayfalama mantığını yöneten veri yapısıdır.
type Pagination struct {
	Page       int   // Mevcut sayfa numarası (1'den başlar)
	PerPage    int   // Sayfa başına gösterilecek kayıt sayısı
	Total      int64 // Veritabanındaki toplam kayıt sayısı
	TotalPages int   // Hesaplanan toplam sayfa sayısı
	HasMore    bool  // Sonraki sayfaların olup olmadığını belirten bayrak
}

// NewPagination, ham sayfalama parametrelerinden bir Pagination nesnesi oluşturur.
// Geçersiz değerler varsayılanlara çekilir (sayfa 1, sayfa başına 15 kayıt).
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Offset, SQL sorgusu için atlanacak kayıt sayısını hesaplar.
//
// Örnek: 3. sayfa, sayfa başına 10 kayıt → Offset = 20.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev, mevcut sayfadan geriye gidilip gidilemeyeceğini kontrol eder.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext, mevcut sayfadan ileriye gidilip gidilemeyeceğini kontrol eder.
func (p *Pagination) HasNext() bool {
	return p.HasMore
}

// ----------------------------------------------------------------------------
// Configuration Types
// ----------------------------------------------------------------------------

// Config, veritabanı bağlantısının yapılandırma şemasıdır.
type Config struct {
	Driver       string        `mapstructure:"driver"`         // "mysql" veya "sqlite3"
	Host         string        `mapstructure:"host"`           // Sunucu adresi
	Port         int           `mapstructure:"port"`           // Bağlantı portu
	Database     string        `mapstructure:"database"`       // Veritabanı adı; sqlite3 için dosya yolu
	Username     string        `mapstructure:"username"`       // Kullanıcı adı
	Password     string        `mapstructure:"password"`       // Parola
	Charset      string        `mapstructure:"charset"`        // Karakter seti (varsayılan: utf8mb4)
	Collation    string        `mapstructure:"collation"`      // Sıralama kuralları
	MaxOpenConns int           `mapstructure:"max_open_conns"` // Havuzdaki maksimum açık bağlantı sayısı
	MaxIdleConns int           `mapstructure:"max_idle_conns"` // Boşta bekletilecek maksimum bağlantı sayısı
	ConnMaxLife  time.Duration `mapstructure:"conn_max_life"`  // Bir bağlantının yaşam süresi
	ConnMaxIdle  time.Duration `mapstructure:"conn_max_idle"`  // Boşta kalabileceği maksimum süre
	TLS          bool          `mapstructure:"tls"`            // TLS/SSL zorunluluğu
}

// DefaultConfig, varsayılan ayarlarla dolu bir yapılandırma döndürür.
func DefaultConfig() *Config {
	return &Config{
		Driver:       "mysql",
		Host:         "localhost",
		Port:         3306,
		Charset:      "utf8mb4",
		Collation:    "utf8mb4_unicode_ci",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
	}
}

// DSN (Data Source Name), sürücünün anlayacağı bağlantı dizesini oluşturur.
//
// sqlite3 için Database alanı (dosya yolu veya ":memory:") olduğu gibi döner.
// MySQL için dize go-sql-driver/mysql'in Config.FormatDSN'i ile üretilir; parseTime
// her zaman açıktır.
func (c *Config) DSN() string {
	switch c.Driver {
	case "sqlite3", "sqlite":
		return c.Database
	}

	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Host
	if c.Port > 0 {
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	mc.DBName = c.Database
	mc.ParseTime = true
	mc.Collation = c.Collation
	if c.Charset != "" {
		mc.Params = map[string]string{"charset": c.Charset}
	}
	if c.TLS {
		mc.TLSConfig = "true"
	}

	return mc.FormatDSN()
}

// ----------------------------------------------------------------------------
// Logger Interface
// ----------------------------------------------------------------------------

// Logger, çalışan SQL sorgularını, parametreleri, süreyi ve olası hataları
// izlemek için kullanılan arayüzdür.
type Logger interface {
	Log(query string, args []any, duration time.Duration, err error)
}

// NopLogger (No-Operation Logger), tüm logları yutar.
type NopLogger struct{}

// Log, gelen tüm veriyi yok sayar.
func (NopLogger) Log(string, []any, time.Duration, error) {}

// ZapLogger, Logger arayüzünü go.uber.org/zap ile implemente eder.
// Başarılı sorgular debug, hatalı sorgular error seviyesinde yazılır.
type ZapLogger struct {
	l *zap.Logger
}

// NewZapLogger, verilen zap logger'ını saran bir Logger döndürür.
// nil verilirse zap.NewNop kullanılır.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{l: l}
}

// Log, sorguyu query, args ve elapsed alanlarıyla yazar.
func (z *ZapLogger) Log(query string, args []any, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("query", query),
		zap.Any("args", args),
		zap.Duration("elapsed", duration),
	}

	if err != nil {
		z.l.Error("query failed", append(fields, zap.Error(err))...)
		return
	}
	z.l.Debug("query executed", fields...)
}
