package sqlselect

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/biyonik/sqlselect/dialect"
)

// -----------------------------------------------------------------------------
//  Transaction Yapısı: Salt-Okunur Tutarlı Okumalar
//
//  Bu dosya, birden fazla SELECT ifadesinin aynı *sql.Tx* üzerinde, yani aynı
//  veri anlık görüntüsü üzerinde çalıştırılmasını sağlayan *Transaction*
//  nesnesini barındırır. Transaction `ReadOnly: true` ile açılır; yazma
//  yapılmaz, bu yüzden Commit ile Rollback arasındaki fark yalnızca kilitlerin
//  ve bağlantının bırakılmasıdır.
//
//   • Aynı bağlantı üzerinde birden çok SELECT art arda yürütülebilir
//   • Commit veya Rollback sonrası her kullanım ErrTxClosed döndürür
//   • Rollback idempotenttir
//
//  Aynı transaction birden çok goroutine tarafından kullanılmamalıdır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Transaction struct'ı, salt-okunur bir SQL transaction'ı temsil eder.
type Transaction struct {
	tx      *sql.Tx
	sess    *session
	grammar dialect.Grammar

	mu     sync.Mutex
	closed bool
}

// Select metodu, transaction kapsamında çalışacak yeni bir Statement üretir.
//
// Örnek:
//
//	err := db.ReadTx(ctx, func(tx *sqlselect.Transaction) error {
//	    if err := tx.Select().From("users").GetContext(ctx, &users); err != nil {
//	        return err
//	    }
//	    return tx.Select("id").From("orders").GetContext(ctx, &orders)
//	})
func (t *Transaction) Select(columns ...any) *Statement {
	stmt := NewStatement(t.grammar)
	stmt.sess = t.sess
	return stmt.Select(columns...)
}

// Commit metodu transaction'ı kapatır. Kapanmış transaction'da ErrTxClosed döner.
func (t *Transaction) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTxClosed
	}

	t.closed = true
	if err := t.tx.Commit(); err != nil {
		return WrapError("commit transaction", err)
	}
	return nil
}

// Rollback metodu transaction'ı geri alır. Tekrar çağrıldığında hata vermez.
func (t *Transaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.closed = true
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return nil
		}
		return WrapError("rollback transaction", err)
	}
	return nil
}

// IsClosed transaction'ın commit ya da rollback sonrası kapanıp kapanmadığını bildirir.
func (t *Transaction) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// QueryContext → transaction üzerinde ham bir SELECT çalıştırır.
// Statement'lar da bu metot üzerinden çalışır, böylece kapanmış transaction yakalanır.
func (t *Transaction) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrTxClosed
	}
	t.mu.Unlock()

	return t.tx.QueryContext(ctx, query, args...)
}

// Run → önceden oluşturulmuş bir Query'yi transaction içinde çalıştırır.
func (t *Transaction) Run(ctx context.Context, q Query) (*sql.Rows, error) {
	return t.sess.query(ctx, q)
}

// Tx → alttaki *sql.Tx* referansına doğrudan erişim sağlar.
func (t *Transaction) Tx() *sql.Tx {
	return t.tx
}
