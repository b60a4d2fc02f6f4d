package validation

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidKeyword, beyaz listede olmayan anahtar kelimeler için sentinel hatadır.
var ErrInvalidKeyword = errors.New("sqlselect: invalid SQL keyword")

// allowedSelectOptions, SELECT ile kolon listesi arasına yazılabilecek seçeneklerdir.
// Yalnızca bu kelimeler metne ham olarak yazılır.
var allowedSelectOptions = map[string]bool{
	"ALL":                 true,
	"DISTINCT":            true,
	"DISTINCTROW":         true,
	"HIGH_PRIORITY":       true,
	"STRAIGHT_JOIN":       true,
	"SQL_SMALL_RESULT":    true,
	"SQL_BIG_RESULT":      true,
	"SQL_BUFFER_RESULT":   true,
	"SQL_NO_CACHE":        true,
	"SQL_CALC_FOUND_ROWS": true,
}

// exclusiveSelectOptions, aynı ifadede birlikte kullanılamayan seçenek gruplarıdır.
var exclusiveSelectOptions = [][]string{
	{"ALL", "DISTINCT", "DISTINCTROW"},
	{"SQL_SMALL_RESULT", "SQL_BIG_RESULT"},
}

// NormalizeSelectOption, bir SELECT seçeneğini büyük harfe çevirip beyaz listeye karşı doğrular.
func NormalizeSelectOption(opt string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(opt))
	if !allowedSelectOptions[normalized] {
		return "", &KeywordError{
			Keyword: opt,
			Context: "select option",
			Reason:  "option not in allowed list",
		}
	}
	return normalized, nil
}

// ValidateSelectOptions, seçenek listesini tekrar ve birbirini dışlama açısından kontrol eder.
// Listenin normalize edilmiş olduğu varsayılır.
func ValidateSelectOptions(opts []string) error {
	seen := make(map[string]bool, len(opts))
	for _, opt := range opts {
		if seen[opt] {
			return &KeywordError{
				Keyword: opt,
				Context: "select option",
				Reason:  "option given more than once",
			}
		}
		seen[opt] = true
	}

	for _, group := range exclusiveSelectOptions {
		var found []string
		for _, opt := range group {
			if seen[opt] {
				found = append(found, opt)
			}
		}
		if len(found) > 1 {
			return &KeywordError{
				Keyword: strings.Join(found, ", "),
				Context: "select option",
				Reason:  "options are mutually exclusive",
			}
		}
	}
	return nil
}

// NormalizeDirection, ORDER BY yönünü "ASC" veya "DESC" biçimine getirir.
// Boş yön ASC kabul edilir.
func NormalizeDirection(dir string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(dir))
	switch normalized {
	case "", "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	default:
		return "", &KeywordError{
			Keyword: dir,
			Context: "order direction",
			Reason:  "direction must be ASC or DESC",
		}
	}
}

// AllowedSelectOptions, izin verilen tüm SELECT seçeneklerini sıralı döndürür.
// Dokümantasyon veya hata mesajları için faydalıdır.
func AllowedSelectOptions() []string {
	opts := make([]string, 0, len(allowedSelectOptions))
	for opt := range allowedSelectOptions {
		opts = append(opts, opt)
	}
	sort.Strings(opts)
	return opts
}

// KeywordError, anahtar kelime doğrulama hatasını temsil eder.
type KeywordError struct {
	Keyword string
	Context string
	Reason  string
}

// Error, error arayüzünü uygular.
func (e *KeywordError) Error() string {
	return "sqlselect: invalid " + e.Context + " '" + e.Keyword + "': " + e.Reason
}

// Is, hatanın ErrInvalidKeyword ile eşleşmesini sağlar.
func (e *KeywordError) Is(target error) bool {
	return target == ErrInvalidKeyword
}
