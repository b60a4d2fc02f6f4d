package sqlselect

import (
	"database/sql"
	"reflect"
	"sort"
	"strings"
	"sync"
)

//
// =====================================================================================
// SQLSELECT – SCANNER BİRİMİ
// -------------------------------------------------------------------------------------
// Bu dosya, SELECT sonuçlarının Go struct'larına güvenli ve otomatik şekilde
// aktarılmasını sağlayan *Scanner* altyapısını içerir.
//
// Bu sistemin çalışma biçimi:
//   1. Struct field'ları reflection ile taranır
//   2. `db:"column"` tag'lerine göre kolon–field eşlemesi oluşturulur
//   3. Çıkan sonuç cache'e alınır → tekrar eden scan'lar yüksek hızda çalışır
//   4. Sonuç kümesinin kolon adları okunur, her kolon ilgili alana yazılır;
//      karşılığı olmayan kolonlar atlanır
//
// Eşleme kolon sırasına değil kolon adına göre yapılır; bu yüzden SELECT listesinin
// sırası struct alanlarının sırasıyla aynı olmak zorunda değildir.
//
// YAZAR BİLGİSİ
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================
//

// Scanner veritabanından okunan satırları Go modellerine map eden davranış sözleşmesidir.
// Tüm metotlar rows'u kapatır.
type Scanner interface {
	// ScanRow → İlk satırı dest'e işler. dest bir struct pointer'ı ya da tek kolonlu
	// sonuçlar için skaler bir pointer olabilir. Satır yoksa ErrNoRows döner.
	ScanRow(rows *sql.Rows, dest any) error

	// ScanRows → Tüm satırları dest slice'ına ekler ([]T veya []*T).
	ScanRows(rows *sql.Rows, dest any) error

	// ScanMaps → Satırları kolon adı → değer map'lerine çevirir.
	ScanMaps(rows *sql.Rows) ([]map[string]any, error)
}

// DefaultScanner → Kütüphanenin standart tarama motorudur.
// Reflection kullanır, `db:"field"` tag'i ile eşleme yapar.
type DefaultScanner struct {
	cache sync.Map // reflect.Type → *structInfo
}

// NewDefaultScanner → Varsayılan scanner oluşturur.
func NewDefaultScanner() *DefaultScanner {
	return &DefaultScanner{}
}

// structInfo → Bir struct'ın kolon adından alan index yoluna eşlemesi.
type structInfo struct {
	columns map[string][]int
}

// ScanRow → İlk satırı tarar.
func (s *DefaultScanner) ScanRow(rows *sql.Rows, dest any) error {
	if rows == nil {
		return ErrNoRows
	}
	defer rows.Close()

	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNotAPointer
	}

	columns, err := rows.Columns()
	if err != nil {
		return WrapError("get columns", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return WrapError("rows iteration", err)
		}
		return ErrNoRows
	}

	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		if len(columns) != 1 {
			return ErrNotAStruct
		}
		if err := rows.Scan(dest); err != nil {
			return WrapError("scan value", err)
		}
		return rows.Err()
	}

	targets := s.targets(elem, columns)
	if err := rows.Scan(targets...); err != nil {
		return WrapError("scan row", err)
	}
	return rows.Err()
}

// ScanRows → Çoklu sonuç tarayıcı.
// rows sonuç kümesini slice'a aktarır. (users → []User şeklinde)
func (s *DefaultScanner) ScanRows(rows *sql.Rows, dest any) error {
	if rows == nil {
		return ErrNoRows
	}
	defer rows.Close()

	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNotAPointer
	}

	sliceVal := v.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return ErrNotASlice
	}

	elemType := sliceVal.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return ErrNotAStruct
	}

	columns, err := rows.Columns()
	if err != nil {
		return WrapError("get columns", err)
	}

	for rows.Next() {
		elemPtr := reflect.New(elemType)
		if err := rows.Scan(s.targets(elemPtr.Elem(), columns)...); err != nil {
			return WrapError("scan row", err)
		}

		if isPtr {
			sliceVal.Set(reflect.Append(sliceVal, elemPtr))
		} else {
			sliceVal.Set(reflect.Append(sliceVal, elemPtr.Elem()))
		}
	}

	if err := rows.Err(); err != nil {
		return WrapError("rows iteration", err)
	}

	return nil
}

// ScanMaps → Satırları kolon adı → değer map'lerine çevirir.
// []byte değerler string'e çevrilir; JSON çıktısı üreten araçlar için uygundur.
func (s *DefaultScanner) ScanMaps(rows *sql.Rows) ([]map[string]any, error) {
	if rows == nil {
		return nil, ErrNoRows
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, WrapError("get columns", err)
	}

	result := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, WrapError("scan row", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, WrapError("rows iteration", err)
	}
	return result, nil
}

// targets → Her kolon için struct içindeki alanın adresini, eşleşmeyenler için
// atılacak bir hedef döndürür.
func (s *DefaultScanner) targets(elem reflect.Value, columns []string) []any {
	info := s.getStructInfo(elem.Type())
	targets := make([]any, len(columns))

	for i, col := range columns {
		index, ok := info.columns[strings.ToLower(col)]
		if !ok {
			var ignore any
			targets[i] = &ignore
			continue
		}
		targets[i] = elem.FieldByIndex(index).Addr().Interface()
	}
	return targets
}

// getStructInfo → Struct metadata cache erişim fonksiyonu.
func (s *DefaultScanner) getStructInfo(t reflect.Type) *structInfo {
	if cached, ok := s.cache.Load(t); ok {
		return cached.(*structInfo)
	}

	info := &structInfo{columns: make(map[string][]int)}
	s.parseStruct(t, nil, info)
	s.cache.Store(t, info)

	return info
}

// parseStruct → Struct içindeki tüm alanları tarar.
// Gömülü struct'lar dahil derin tarama yapılır; dıştaki alan öncelik kazanır.
func (s *DefaultScanner) parseStruct(t reflect.Type, index []int, info *structInfo) {
	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded = append(embedded, field)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}

		name := strings.ToLower(field.Name)
		if tag != "" {
			name = strings.ToLower(strings.Split(tag, ",")[0])
		}
		if _, exists := info.columns[name]; exists {
			continue
		}
		info.columns[name] = append(append([]int{}, index...), i)
	}

	for _, field := range embedded {
		s.parseStruct(field.Type, append(append([]int{}, index...), field.Index...), info)
	}
}

// GetFieldNames → Struct içerisinde veritabanına karşılık gelen bütün kolon adlarını
// alfabetik sırayla döner. SELECT * yerine açık kolon listesi üretmek için kullanılır.
func (s *DefaultScanner) GetFieldNames(dest any) ([]string, error) {
	t := reflect.TypeOf(dest)
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice) {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrNotAStruct
	}

	info := s.getStructInfo(t)
	names := make([]string, 0, len(info.columns))
	for name := range info.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
