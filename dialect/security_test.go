package dialect_test

import (
	"testing"

	"github.com/biyonik/sqlselect/dialect"
)

// TestSQLInjection_Identifiers tests SQL injection via identifiers
func TestSQLInjection_Identifiers(t *testing.T) {
	g := dialect.MySQL()

	// All of these should fail validation
	maliciousIdentifiers := []string{
		// Classic SQL injection
		"users; DROP TABLE users;--",
		"users'; DROP TABLE users;--",
		`users"; DROP TABLE users;--`,
		"users`; DROP TABLE users;--",

		// Union-based injection
		"users UNION SELECT * FROM passwords",
		"id UNION SELECT password FROM users",

		// Comment injection
		"users--",
		"users#",
		"users/**/",

		// Boolean-based injection
		"users OR 1=1",
		"1 OR 1=1",

		// Time-based injection
		"users; SLEEP(10)--",

		// Special characters
		"users\x00",
		"users\n",
		"users\t",
		"users%00",

		// Subqueries
		"(SELECT * FROM passwords)",
		"../../../etc/passwd",
	}

	for _, identifier := range maliciousIdentifiers {
		t.Run(identifier[:min(len(identifier), 30)], func(t *testing.T) {
			if _, err := g.Wrap(identifier); err == nil {
				t.Errorf("Wrap(%q) should have returned error for malicious input", identifier)
			}
			if _, err := g.WrapAlias("users", identifier); err == nil {
				t.Errorf("WrapAlias(users, %q) should have returned error for malicious alias", identifier)
			}
		})
	}
}
