// Package validation, SELECT ifadelerinde kullanılan tablo, kolon ve alias isimlerini
// ve sorguya yazılan anahtar kelimeleri doğrulamak için dahili yardımcı fonksiyonlar sağlar.
// Bu paket, tırnaklanarak SQL metnine yazılacak her ismin önce burada kontrol edilmesini
// ve geçersiz girdinin metne hiç ulaşmamasını amaçlar.
//
// Doğrulamalar şu sorulara cevap verir:
// 1. Bu isim geçerli bir SQL identifier mı? (harf, rakam, alt çizgi, tek nokta)
// 2. Alias verilmişse alias da geçerli mi? (nokta içeremez)
// 3. Anahtar kelime (SELECT seçeneği, sıralama yönü) beyaz listede mi?
//
// Tüm fonksiyonlar, doğrulama başarısız olduğunda detaylı bir `IdentifierError` veya
// `KeywordError` döndürür.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package validation

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier, tüm identifier hatalarının errors.Is ile eşleştiği sentinel hatadır.
var ErrInvalidIdentifier = errors.New("sqlselect: invalid SQL identifier")

// MaxIdentifierLength, bir identifier parçasının izin verilen en uzun hâlidir.
const MaxIdentifierLength = 128

// identifierRegex, SQL tabloları ve kolonları için geçerli identifier'ları doğrular.
// İlk karakter harf veya alt çizgi olmalıdır. Tek bir nokta table.column referansına izin verir.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// aliasRegex, alias'lar için kullanılır; alias nitelikli (nokta içeren) olamaz.
var aliasRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateIdentifier, verilen identifier'ın geçerli bir SQL identifier olup olmadığını kontrol eder.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier cannot be empty",
		}
	}

	if len(id) > MaxIdentifierLength {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier exceeds maximum length of 128 characters",
		}
	}

	if !identifierRegex.MatchString(id) {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier contains invalid characters; only letters, numbers, underscores, and a single dot are allowed",
		}
	}

	return nil
}

// ValidateAlias, kolon veya tablo alias'ını doğrular.
// Alias'lar table.column biçiminde olamaz.
func ValidateAlias(alias string) error {
	if alias == "" {
		return &IdentifierError{
			Identifier: alias,
			Reason:     "alias cannot be empty",
		}
	}
	if len(alias) > MaxIdentifierLength {
		return &IdentifierError{
			Identifier: alias,
			Reason:     "alias exceeds maximum length of 128 characters",
		}
	}
	if !aliasRegex.MatchString(alias) {
		return &IdentifierError{
			Identifier: alias,
			Reason:     "alias must be a plain identifier without dots or special characters",
		}
	}
	return nil
}

// SplitTableColumn, "table.column" formatındaki referansı parçalar.
// Döndürür: tablo (yoksa ""), kolon ve hata.
func SplitTableColumn(ref string) (table, column string, err error) {
	if err := ValidateIdentifier(ref); err != nil {
		return "", "", err
	}
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return ref[:i], ref[i+1:], nil
	}
	return "", ref, nil
}

// IdentifierError, identifier doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "sqlselect: invalid identifier: " + e.Reason
	}
	return "sqlselect: invalid identifier '" + e.Identifier + "': " + e.Reason
}

// Is, hatanın ErrInvalidIdentifier ile eşleşmesini sağlar.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}
