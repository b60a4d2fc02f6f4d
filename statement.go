package sqlselect

import (
	"context"
	"sort"

	"github.com/biyonik/sqlselect/cond"
	"github.com/biyonik/sqlselect/dialect"
	"github.com/biyonik/sqlselect/internal/validation"
)

// Statement, SELECT ifadelerini akıcı bir arayüz (fluent interface) ile oluşturan yapıdır.
//
// Cümleler yalnızca SQL'in izin verdiği sırada eklenebilir:
// Select → From → Join* → Where? → GroupBy? → Having? → OrderBy? → Limit?
// Sıra dışı bir çağrı IllegalSequenceError kaydeder ve durum ilerlemez.
// Zincirdeki ilk hata saklanır; Err() onu hemen gösterir, ToSQL ve Build onu döndürür.
//
// Genel kullanım örneği:
//
//	q, err := sqlselect.Select("id", "title").
//	    From("article").
//	    InnerJoin("users", "userId").
//	    Where(cond.Eq("category").Bind(5)).
//	    Limit(10, 20).
//	    Build()
//
// Başarılı bir serileştirme ifadeyi kapatır (StateFinal); sonraki zincir çağrıları
// IllegalSequenceError üretir, tekrar eden serileştirmeler aynı sonucu döndürür.
// Statement örnekleri **concurrent-safe** değildir; paylaşmak için Clone() kullanın.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type Statement struct {
	sess    *session
	grammar dialect.Grammar

	state     State
	fragments []fragment

	// Kapatılmadan önceki durum; Clone bu durumdan devam eder.
	open     State
	compiled Query

	// Accumulated error
	err error
}

// NewStatement, verilen gramerle Initial durumunda boş bir Statement oluşturur.
// Gramer nil ise MySQL kullanılır.
func NewStatement(g dialect.Grammar) *Statement {
	if g == nil {
		g = dialect.MySQL()
	}
	return &Statement{
		grammar:   g,
		state:     StateInitial,
		fragments: make([]fragment, 0, 8),
	}
}

// advance, çağrıyı geçiş tablosuna karşı kontrol eder, parçayı doğrular ve ekler.
func (s *Statement) advance(op operation, f fragment) *Statement {
	if s.err != nil {
		return s
	}

	to, ok := next(s.state, op)
	if !ok {
		s.err = &IllegalSequenceError{Operation: string(op), State: s.state}
		return s
	}

	if err := f.check(s.grammar); err != nil {
		s.err = err
		return s
	}

	s.fragments = append(s.fragments, f)
	s.state = to
	return s
}

// fail, ilk hatayı kaydeder. Sıra hatası içerik hatasından önce gelir.
func (s *Statement) fail(op operation, err error) *Statement {
	if s.err != nil {
		return s
	}
	if _, ok := next(s.state, op); !ok {
		s.err = &IllegalSequenceError{Operation: string(op), State: s.state}
		return s
	}
	s.err = err
	return s
}

// ----------------------------------------------------------------------------
// SELECT
// ----------------------------------------------------------------------------

// Select, seçilecek kolonları ve SELECT seçeneklerini ayarlar.
//
// Girdiler: kolon adı (string), Alias, tek elemanlı map[string]string (ad → takma ad),
// Raw ifade veya SelectOption (Distinct, SQLNoCache vb.). Kolon verilmezse "*" yazılır.
func (s *Statement) Select(columns ...any) *Statement {
	f := columnsFragment{}
	for _, entry := range columns {
		if opt, ok := entry.(SelectOption); ok {
			normalized, err := validation.NormalizeSelectOption(string(opt))
			if err != nil {
				return s.fail(opSelect, err)
			}
			f.options = append(f.options, normalized)
			continue
		}

		col, err := parseColumn(opSelect, entry, true)
		if err != nil {
			return s.fail(opSelect, err)
		}
		f.columns = append(f.columns, col)
	}
	return s.advance(opSelect, f)
}

// ----------------------------------------------------------------------------
// FROM / JOIN
// ----------------------------------------------------------------------------

// From, sorgunun kaynak tablolarını ayarlar. Girdiler: string, Alias veya
// tek elemanlı map[string]string (tablo → takma ad).
func (s *Statement) From(sources ...any) *Statement {
	if len(sources) == 0 {
		return s.fail(opFrom, &InvalidOperationError{Op: string(opFrom), Reason: "at least one source is required"})
	}

	f := fromFragment{sources: make([]column, 0, len(sources))}
	for _, entry := range sources {
		col, err := parseColumn(opFrom, entry, false)
		if err != nil {
			return s.fail(opFrom, err)
		}
		f.sources = append(f.sources, col)
	}
	return s.advance(opFrom, f)
}

// InnerJoin, INNER JOIN ekler. on bir cond.Node ise ON, string veya []string ise USING yazılır.
func (s *Statement) InnerJoin(table any, on any) *Statement {
	return s.join(dialect.JoinInner, table, on)
}

// LeftJoin, LEFT JOIN ekler.
func (s *Statement) LeftJoin(table any, on any) *Statement {
	return s.join(dialect.JoinLeft, table, on)
}

// RightJoin, RIGHT JOIN ekler.
func (s *Statement) RightJoin(table any, on any) *Statement {
	return s.join(dialect.JoinRight, table, on)
}

func (s *Statement) join(kind dialect.JoinType, table any, on any) *Statement {
	col, err := parseColumn(opJoin, table, false)
	if err != nil {
		return s.fail(opJoin, err)
	}

	f := joinFragment{kind: kind, table: col}
	switch v := on.(type) {
	case nil:
		return s.fail(opJoin, &InvalidOperationError{Op: string(opJoin), Reason: "join condition is nil"})
	case cond.Node:
		if cond.IsNil(v) {
			return s.fail(opJoin, &InvalidOperationError{Op: string(opJoin), Reason: "join condition is nil"})
		}
		f.on = v
	case string:
		f.using = []string{v}
	case []string:
		if len(v) == 0 {
			return s.fail(opJoin, &InvalidOperationError{Op: string(opJoin), Reason: "USING requires at least one column"})
		}
		f.using = append([]string(nil), v...)
	default:
		return s.fail(opJoin, &InvalidOperationError{Op: string(opJoin), Reason: "join condition must be a condition or a shared column"})
	}
	return s.advance(opJoin, f)
}

// ----------------------------------------------------------------------------
// WHERE / GROUP BY / HAVING
// ----------------------------------------------------------------------------

// Where, WHERE koşulunu ayarlar. Birden fazla koşul için cond.And/cond.Or kullanın.
func (s *Statement) Where(node cond.Node) *Statement {
	if cond.IsNil(node) {
		return s.fail(opWhere, &InvalidOperationError{Op: string(opWhere), Reason: "condition is nil"})
	}
	return s.advance(opWhere, conditionFragment{kind: clauseWhere, node: node})
}

// GroupBy, GROUP BY kolonlarını ayarlar.
func (s *Statement) GroupBy(columns ...string) *Statement {
	if len(columns) == 0 {
		return s.fail(opGroupBy, &InvalidOperationError{Op: string(opGroupBy), Reason: "at least one column is required"})
	}
	return s.advance(opGroupBy, groupByFragment{columns: append([]string(nil), columns...)})
}

// Having, HAVING koşulunu ayarlar. Yalnızca GroupBy'dan sonra çağrılabilir.
func (s *Statement) Having(node cond.Node) *Statement {
	if cond.IsNil(node) {
		return s.fail(opHaving, &InvalidOperationError{Op: string(opHaving), Reason: "condition is nil"})
	}
	return s.advance(opHaving, conditionFragment{kind: clauseHaving, node: node})
}

// ----------------------------------------------------------------------------
// ORDER BY / LIMIT
// ----------------------------------------------------------------------------

// OrderBy, sıralama ekler. Girdiler: kolon adı (ASC), Order (Asc/Desc ile) veya
// tek elemanlı map[string]string (kolon → "ASC"/"DESC").
func (s *Statement) OrderBy(entries ...any) *Statement {
	if len(entries) == 0 {
		return s.fail(opOrderBy, &InvalidOperationError{Op: string(opOrderBy), Reason: "at least one column is required"})
	}

	f := orderByFragment{entries: make([]Order, 0, len(entries))}
	for _, entry := range entries {
		o, err := parseOrder(entry)
		if err != nil {
			return s.fail(opOrderBy, err)
		}
		f.entries = append(f.entries, o)
	}
	return s.advance(opOrderBy, f)
}

// Limit, LIMIT ve isteğe bağlı OFFSET ayarlar. Limit'ten sonra başka cümle eklenemez.
func (s *Statement) Limit(count int, offset ...int) *Statement {
	f := limitFragment{count: count}
	switch len(offset) {
	case 0:
	case 1:
		o := offset[0]
		f.offset = &o
	default:
		return s.fail(opLimit, &InvalidOperationError{Op: string(opLimit), Reason: "at most one offset is allowed"})
	}
	return s.advance(opLimit, f)
}

// ----------------------------------------------------------------------------
// Serialization
// ----------------------------------------------------------------------------

// ToSQL, ifadeyi SQL metni ve sıralı argümanlarla döndürür.
//
// Argümanlar JOIN ON koşulları (join sırasıyla), WHERE ve HAVING sırasıyla toplanır.
// İlk başarılı çağrı ifadeyi kapatır; sonraki çağrılar aynı sonucu döndürür.
func (s *Statement) ToSQL() (string, []any, error) {
	q, err := s.Build()
	if err != nil {
		return "", nil, err
	}
	return q.SQL, q.Args, nil
}

// Build, ifadeyi Query olarak döndürür. ToSQL ile aynı kurallara uyar.
func (s *Statement) Build() (Query, error) {
	if s.err != nil {
		return Query{}, s.err
	}

	switch s.state {
	case StateFinal:
		return s.compiled.clone(), nil
	case StateInitial:
		return Query{}, &IllegalSequenceError{Operation: "Build", State: s.state}
	}

	// Durum makinesi sırayı zaten garanti eder; sıralama parçaların kopyası üzerinde yapılır.
	ordered := make([]fragment, len(s.fragments))
	copy(ordered, s.fragments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].clause() < ordered[j].clause()
	})

	w := &sqlWriter{g: s.grammar, args: make([]any, 0)}
	for i, f := range ordered {
		if i > 0 {
			w.write(" ")
		}
		if err := f.writeTo(w); err != nil {
			return Query{}, err
		}
	}

	s.compiled = Query{SQL: w.sql.String(), Args: w.args}
	s.open = s.state
	s.state = StateFinal
	return s.compiled.clone(), nil
}

// Text, ifadenin SQL metnini döndürür.
func (s *Statement) Text() (string, error) {
	q, err := s.Build()
	return q.SQL, err
}

// BoundArgs, ifadenin bağlı argümanlarını yer tutucu sırasıyla döndürür.
func (s *Statement) BoundArgs() ([]any, error) {
	q, err := s.Build()
	return q.Args, err
}

// String, ifadenin SQL metnini döndürür; hata varsa boş döner.
// Metin bir kopyadan üretilir, ifadenin durumu değişmez.
func (s *Statement) String() string {
	sql, _ := s.Clone().Text()
	return sql
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// State, ifadenin mevcut durumunu döndürür.
func (s *Statement) State() State {
	return s.state
}

// Err, birikmiş hatayı döndürür.
func (s *Statement) Err() error {
	return s.err
}

// Grammar, ifadenin kullandığı grameri döndürür.
func (s *Statement) Grammar() dialect.Grammar {
	return s.grammar
}

// Clone, ifadenin kopyasını oluşturur. Kapatılmış bir ifadenin kopyası kapatılmadan
// önceki durumdan devam eder. Koşul düğümleri paylaşılır.
func (s *Statement) Clone() *Statement {
	clone := &Statement{
		sess:    s.sess,
		grammar: s.grammar,
		state:   s.state,
		err:     s.err,
	}
	if clone.state == StateFinal {
		clone.state = s.open
	}

	clone.fragments = make([]fragment, len(s.fragments))
	copy(clone.fragments, s.fragments)

	return clone
}

// When, koşullu olarak callback uygular.
func (s *Statement) When(condition bool, fn func(*Statement)) *Statement {
	if condition {
		fn(s)
	}
	return s
}

// Unless, When'in tersidir.
func (s *Statement) Unless(condition bool, fn func(*Statement)) *Statement {
	return s.When(!condition, fn)
}

// allows, verilen çağrının mevcut durumdan yapılıp yapılamayacağını söyler.
func (s *Statement) allows(op operation) bool {
	_, ok := next(s.state, op)
	return ok
}

// ----------------------------------------------------------------------------
// Execution
// ----------------------------------------------------------------------------

// GetContext, ifadeyi çalıştırır ve sonuçları dest (struct slice pointer) içine tarar.
func (s *Statement) GetContext(ctx context.Context, dest any) error {
	if s.sess == nil {
		return ErrNoExecutor
	}

	q, err := s.Build()
	if err != nil {
		return err
	}

	rows, err := s.sess.query(ctx, q)
	if err != nil {
		return err
	}
	return s.sess.scanner.ScanRows(rows, dest)
}

// Get, GetContext'in context.Background() versiyonudur.
func (s *Statement) Get(dest any) error {
	return s.GetContext(context.Background(), dest)
}

// FirstContext, ilk satırı dest (struct pointer) içine tarar.
// Zincir hâlâ Limit'e izin veriyorsa LIMIT 1 eklenir; ifadenin kendisi değişmez.
// Satır yoksa ErrNoRows döner.
func (s *Statement) FirstContext(ctx context.Context, dest any) error {
	if s.sess == nil {
		return ErrNoExecutor
	}

	first := s.Clone()
	if first.allows(opLimit) {
		first.Limit(1)
	}

	q, err := first.Build()
	if err != nil {
		return err
	}

	rows, err := s.sess.query(ctx, q)
	if err != nil {
		return err
	}
	return s.sess.scanner.ScanRow(rows, dest)
}

// First, FirstContext'in context.Background() versiyonudur.
func (s *Statement) First(dest any) error {
	return s.FirstContext(context.Background(), dest)
}
