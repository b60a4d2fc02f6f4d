package dialect

import (
	"strconv"
	"strings"

	"github.com/biyonik/sqlselect/internal/validation"
)

/*
 * ----------------------------------------------------------------------------
 * MYSQL GRAMMAR IMPLEMENTATION
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, SELECT ifadelerinde geçen isimleri MySQL/MariaDB kurallarına göre
 * tırnaklayan ve parametre yer tutucularını üreten katmandır.
 *
 * MySQL isimleri backtick (`) ile sarar; PostgreSQL çift tırnak (") kullanır.
 * Üretilen metin SQLite tarafından da kabul edilir, bu yüzden entegrasyon testleri
 * aynı metni bellek içi bir SQLite veritabanında çalıştırabilir.
 *
 * Bu yapının sorumlulukları:
 * 1. Sanitization (Temizleme): Tablo ve kolon isimlerini doğrular ve rezerve
 * kelimelerle (örn: "order", "group") çakışmaması için sarmalar.
 * 2. Placeholder: Her bağlı değer için sıralı "?" üretir.
 * 3. Limit: LIMIT/OFFSET cümlesini tamsayı olarak yazar.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// MySQLGrammar, Grammar arayüzünü MySQL ve MariaDB veritabanları için implemente eder.
type MySQLGrammar struct {
	BaseGrammar
}

// MySQL, yeni bir MySQL dilbilgisi örneği oluşturur.
func MySQL() *MySQLGrammar {
	return &MySQLGrammar{
		BaseGrammar: BaseGrammar{name: "mysql"},
	}
}

// Wrap, bir veritabanı tanımlayıcısını (tablo veya kolon adı) MySQL standartlarına
// uygun kaçış karakterleriyle (backtick) sarmalar.
//
// "*" ve "tablo.*" olduğu gibi (tablo kısmı sarılarak) yazılır.
//
// Örnek: "users.name" -> "`users`.`name`"
func (g *MySQLGrammar) Wrap(identifier string) (string, error) {
	if identifier == "*" {
		return "*", nil
	}

	if table, ok := strings.CutSuffix(identifier, ".*"); ok {
		if err := validation.ValidateAlias(table); err != nil {
			return "", err
		}
		return "`" + table + "`.*", nil
	}

	table, column, err := validation.SplitTableColumn(identifier)
	if err != nil {
		return "", err
	}

	if table != "" {
		return "`" + table + "`.`" + column + "`", nil
	}
	return "`" + column + "`", nil
}

// WrapAlias, bir ismi ve takma adını (alias) güvenli bir şekilde sarmalar.
//
// Örnek: ("users", "u") -> "`users` AS `u`"
func (g *MySQLGrammar) WrapAlias(name, alias string) (string, error) {
	wrapped, err := g.Wrap(name)
	if err != nil {
		return "", err
	}
	if alias == "" {
		return wrapped, nil
	}
	if name == "*" || strings.HasSuffix(name, ".*") {
		return "", &validation.IdentifierError{Identifier: name, Reason: "wildcard cannot have an alias"}
	}

	if err := validation.ValidateAlias(alias); err != nil {
		return "", err
	}
	return wrapped + " AS `" + alias + "`", nil
}

// Placeholder, sorgu parametreleri için kullanılan yer tutucuyu döndürür.
//
// PostgreSQL ($1, $2) aksine, MySQL sıralı soru işareti (?) kullanır.
// Index parametresi MySQL için önemsizdir ancak arayüz uyumluluğu için tutulur.
func (g *MySQLGrammar) Placeholder(index int) string {
	return "?"
}

// CompileLimit, "LIMIT n" ve varsa "OFFSET m" cümlesini oluşturur.
func (g *MySQLGrammar) CompileLimit(count int, offset *int) string {
	var sql strings.Builder
	sql.WriteString("LIMIT ")
	sql.WriteString(strconv.Itoa(count))

	if offset != nil {
		sql.WriteString(" OFFSET ")
		sql.WriteString(strconv.Itoa(*offset))
	}
	return sql.String()
}
