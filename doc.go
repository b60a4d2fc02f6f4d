// Package sqlselect builds MySQL SELECT statements programmatically.
//
// A statement is assembled through a fixed clause order and every value reaches
// the database as a bound argument, never as SQL text.
//
// # Quick Start
//
// Build a statement without a connection:
//
//	sql, args, err := sqlselect.Select("id", "title").
//	    From("article").
//	    Where(cond.And(
//	        cond.Eq("category").Bind(5),
//	        cond.Like("title", "%go%"),
//	    )).
//	    OrderBy(sqlselect.Desc("created")).
//	    Limit(10, 20).
//	    ToSQL()
//
//	// SELECT `id`, `title` FROM `article` WHERE `category` = ? AND `title` LIKE ?
//	//   ORDER BY `created` DESC LIMIT 10 OFFSET 20
//	// args: [5 %go%]
//
// # Clause Order
//
// Clauses may only be added in the order SQL requires:
//
//	Select → From → Join* → Where? → GroupBy? → Having? → OrderBy? → Limit?
//
// A call made out of order records an IllegalSequenceError. The first error
// recorded on a statement is kept; Err reports it at once and ToSQL returns it.
//
// # Conditions
//
// Conditions live in the cond package. Predicates are created unbound and
// receive their value with Bind:
//
//	cond.Eq("author").Bind(nil)           // `author` IS NULL
//	cond.Ne("category").Bind(cond.Null)   // `category` IS NOT NULL
//	cond.In("id").Bind([]int{1, 2, 3})    // `id` IN(?,?,?)
//	cond.Eq("a.id", "b.author_id")        // column against column
//
// And, Or and Not combine predicates; nested groups of a different
// conjunction are parenthesized.
//
// # Executing
//
// A DB wraps *sql.DB and runs statements with name-based struct scanning:
//
//	db := sqlselect.NewDB(sqlDB, sqlselect.WithZap(logger))
//
//	var articles []Article
//	err := db.Select("id", "title").From("article").GetContext(ctx, &articles)
//
// Several reads can share one snapshot through ReadTx.
//
// # Thread Safety
//
// Statement instances are NOT thread-safe. Use Clone to branch a statement.
// A serialized statement is final; its Clone resumes where it left off.
package sqlselect
