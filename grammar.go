package sqlselect

import "github.com/biyonik/sqlselect/dialect"

/*
=======================================================================================================================
 GRAMMAR: SQL'in Diline Şekil Veren Katman

 Aynı anlam, farklı motorlarda farklı biçimde yazılır:

   MySQL      → SELECT * FROM `users` WHERE `id` = ?
   PostgreSQL → SELECT * FROM "users" WHERE "id" = $1

 Statement ve cond paketi yalnızca dialect.Grammar üzerinden konuşur: identifier
 sarmalama, yer tutucu üretimi ve LIMIT yazımı gramerin işidir. Buradaki takma adlar,
 kullanıcıların dialect paketini import etmeden gramer seçebilmesini sağlar.

 @author    Ahmet ALTUN
 @github    github.com/biyonik
 @linkedin  linkedin.com/in/biyonik
 @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// Grammar, dialect.Grammar'ın takma adıdır.
type Grammar = dialect.Grammar

// MySQL, varsayılan MySQL gramerini döndürür.
func MySQL() Grammar {
	return dialect.MySQL()
}
