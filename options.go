package sqlselect

import (
	"go.uber.org/zap"

	"github.com/biyonik/sqlselect/dialect"
)

// -----------------------------------------------------------------------------
//  Bu dosya; DB yapısının davranışını tek noktadan yöneten *Option* mimarisini
//  içerir. Her bir With* fonksiyonu, DB kurulurken dışarıdan enjekte edilen
//  küçük bir yapılandırma adımıdır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option tipi, bir *DB* örneği üzerinde çalışan yapılandırma fonksiyonlarının
// temel imzasıdır.
type Option func(*DB)

// WithGrammar fonksiyonu, ifadelerin yazımında kullanılacak grameri değiştirir.
// Varsayılan olarak MySQLGrammar kullanılır.
//
// Örnek:
//
//	db := sqlselect.NewDB(sqlDB, sqlselect.WithGrammar(dialect.MySQL()))
func WithGrammar(g dialect.Grammar) Option {
	return func(d *DB) {
		d.grammar = g
	}
}

// WithScanner fonksiyonu, sonuçları struct'lara taşıyan tarayıcıyı değiştirir.
//
// Örnek:
//
//	db := sqlselect.NewDB(sqlDB, sqlselect.WithScanner(customScanner))
func WithScanner(s Scanner) Option {
	return func(d *DB) {
		d.scanner = s
	}
}

// WithDebug fonksiyonu debug modunu aktif veya pasif hâle getirir.
// Debug açık olduğunda çalıştırılan her sorgu Logger'a yazılır.
func WithDebug(enabled bool) Option {
	return func(d *DB) {
		d.debug = enabled
	}
}

// WithLogger fonksiyonu özel bir logger tanımlamaya yarar.
//
// Örnek:
//
//	db := sqlselect.NewDB(sqlDB,
//	    sqlselect.WithDebug(true),
//	    sqlselect.WithLogger(myLogger),
//	)
func WithLogger(logger Logger) Option {
	return func(d *DB) {
		d.logger = logger
	}
}

// WithZap, zap logger'ını sorgu logger'ı olarak ayarlar ve debug modunu açar.
func WithZap(l *zap.Logger) Option {
	return func(d *DB) {
		d.logger = NewZapLogger(l)
		d.debug = true
	}
}

// applyOptions fonksiyonu, DB oluşturulurken verilen bütün Option'ları
// sırayla işler. Nil Option'lar atlanır.
func applyOptions(d *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
}
