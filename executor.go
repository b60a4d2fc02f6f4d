package sqlselect

import (
	"context"
	"database/sql"
	"time"

	"github.com/biyonik/sqlselect/dialect"
)

/*
=======================================================================================================================
  SQLSELECT – Oluşturulan SELECT İfadelerini Çalıştıran Katman

  Bu dosya; Go'nun standart `database/sql` yapısının üzerine, Statement ile kurulan ifadeleri
  çalıştıran ve sonuçları struct'lara taşıyan ince bir katman ekler.

  Bu yapı sayesinde:
  - `db.Select("id", "name").From("users").Where(...).GetContext(ctx, &users)` gibi tek zincirde
    hem ifade kurulur hem çalıştırılır.
  - İster normal bağlantı (`*sql.DB`), ister salt-okunur transaction (`*sql.Tx`) üzerinde çalışalım,
    aynı interface'i kullanarak kod akışına devam ederiz.
  - Debug modu açıksa her sorgu, argümanları ve süresiyle birlikte Logger'a yazılır.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// QueryExecutor arayüzü; *sql.DB, *sql.Tx ve *sql.Conn yapılarının ortak olarak sağladığı
// satır döndüren sorgu fonksiyonunu soyutlar. Böylece sorgu ister doğrudan DB'de ister
// Transaction içinde çalışsın, çağrım şekli değişmez.
// ---------------------------------------------------------------------
type QueryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Compile-time kontrolü: standart tipler gerçekten QueryExecutor'ı implement ediyor mu?
// ---------------------------------------------------------------------
var (
	_ QueryExecutor = (*sql.DB)(nil)
	_ QueryExecutor = (*sql.Tx)(nil)
	_ QueryExecutor = (*sql.Conn)(nil)
	_ QueryExecutor = (*Transaction)(nil)
)

// session, bir Statement'ın çalıştırılması için gereken her şeyi taşır.
// DB ve Transaction kendi session'larını üretir.
type session struct {
	exec    QueryExecutor
	scanner Scanner
	logger  Logger
	debug   bool
}

// query, sorguyu çalıştırır, debug açıksa loglar ve hatayı QueryError ile sarar.
func (s *session) query(ctx context.Context, q Query) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.exec.QueryContext(ctx, q.SQL, q.Args...)
	if s.debug {
		s.logger.Log(q.SQL, q.Args, time.Since(start), err)
	}
	if err != nil {
		return nil, NewQueryError("select", q.SQL, err)
	}
	return rows, nil
}

// DB struct'ı veritabanı bağlantısını sarar ve üzerine grammar, scanner ve logging
// davranışlarını ekler.
// ---------------------------------------------------------------------
type DB struct {
	*sql.DB                 // Standart Go DB nesnesi gömülü olarak bulunur.
	grammar dialect.Grammar // Kolon/tablo tırnaklama ve yer tutucu kuralları.
	scanner Scanner         // DB satırlarını struct'lara tarayıp dönüştüren bileşen.
	logger  Logger          // İsteğe bağlı kayıtlama sistemi, debug durumunda detay sağlar.
	debug   bool            // Sorgular loglansın mı?
}

// NewDB -> DB sarmalayıcısının oluşturulduğu yerdir.
// Varsayılan Grammar ve Scanner atanır, opsiyonlar ile davranış şekillendirilebilir.
// ---------------------------------------------------------------------
func NewDB(db *sql.DB, opts ...Option) *DB {
	d := &DB{
		DB:     db,
		logger: NopLogger{},
	}

	applyOptions(d, opts)

	if d.grammar == nil {
		d.grammar = dialect.MySQL()
	}
	if d.scanner == nil {
		d.scanner = NewDefaultScanner()
	}
	if d.logger == nil {
		d.logger = NopLogger{}
	}

	return d
}

// Grammar -> Aktif gramer.
func (d *DB) Grammar() dialect.Grammar {
	return d.grammar
}

// Scanner -> Satır–>struct tarama mekanizmasını verir.
func (d *DB) Scanner() Scanner {
	return d.scanner
}

// Logger -> Sorgu izleme/raporlama sistemine dışarıdan erişim sağlar.
func (d *DB) Logger() Logger {
	return d.logger
}

// IsDebug -> Debug modunda mıyız? Sorgular loglanacak mı?
func (d *DB) IsDebug() bool {
	return d.debug
}

func (d *DB) session(exec QueryExecutor) *session {
	return &session{
		exec:    exec,
		scanner: d.scanner,
		logger:  d.logger,
		debug:   d.debug,
	}
}

// Select -> Bu bağlantıya bağlı yeni bir Statement başlatır. Zincirin başlangıç halkasıdır.
// ---------------------------------------------------------------------
func (d *DB) Select(columns ...any) *Statement {
	stmt := NewStatement(d.grammar)
	stmt.sess = d.session(d.DB)
	return stmt.Select(columns...)
}

// QueryContext -> Önceden oluşturulmuş bir Query'yi çalıştırır ve ham satırları döndürür.
// Satırları kapatmak çağıranın sorumluluğundadır.
// ---------------------------------------------------------------------
func (d *DB) QueryContext(ctx context.Context, q Query) (*sql.Rows, error) {
	return d.session(d.DB).query(ctx, q)
}

// BeginReadTx -> Salt-okunur bir transaction başlatır.
// ---------------------------------------------------------------------
func (d *DB) BeginReadTx(ctx context.Context) (*Transaction, error) {
	tx, err := d.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, WrapError("begin transaction", err)
	}

	t := &Transaction{tx: tx, grammar: d.grammar}
	t.sess = d.session(t)
	return t, nil
}

// ReadTx -> Verilen fonksiyonu tek bir salt-okunur transaction içinde çalıştırır.
// Başarılı olursa commit, hata veya panic durumunda rollback yapar.
// Böylece birden fazla SELECT aynı anlık görüntüyü okur.
// ---------------------------------------------------------------------
func (d *DB) ReadTx(ctx context.Context, fn func(*Transaction) error) error {
	tx, err := d.BeginReadTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return WrapError("rollback after error", rbErr)
		}
		return err
	}

	return tx.Commit()
}

// Close -> Veritabanı bağlantısını kapatır.
func (d *DB) Close() error {
	return d.DB.Close()
}

// Ping -> Bağlantı canlı mı? Kontrol eder.
func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}
