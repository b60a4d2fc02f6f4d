package sqlselect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/sqlselect"
	"github.com/biyonik/sqlselect/cond"
)

func build(t *testing.T, s *sqlselect.Statement) (string, []any) {
	t.Helper()
	sql, args, err := s.ToSQL()
	require.NoError(t, err)
	return sql, args
}

// =============================================================================
// Full statements
// =============================================================================

func TestStatement_JoinWhereLimit(t *testing.T) {
	sql, args := build(t, sqlselect.Select("id", "title").
		From("article").
		InnerJoin("users", "userId").
		Where(cond.Eq("category").Bind(5)).
		Limit(10, 20))

	assert.Equal(t,
		"SELECT `id`, `title` FROM `article` INNER JOIN `users` USING(`userId`) WHERE `category` = ? LIMIT 10 OFFSET 20",
		sql)
	assert.Equal(t, []any{5}, args)
}

func TestStatement_SelectAll(t *testing.T) {
	sql, args := build(t, sqlselect.Select().From("users"))
	assert.Equal(t, "SELECT * FROM `users`", sql)
	assert.Empty(t, args)
}

func TestStatement_EveryClause(t *testing.T) {
	s := sqlselect.Select("a.id").
		From("a").
		InnerJoin("b", cond.Eq("b.kind").Bind("j1")).
		LeftJoin("c", cond.And(cond.Eq("c.a_id", "a.id"), cond.Gt("c.n").Bind(2))).
		Where(cond.Eq("a.s").Bind("w")).
		GroupBy("a.id").
		Having(cond.Gt("a.total").Bind(10)).
		OrderBy(sqlselect.Desc("a.id")).
		Limit(5)

	sql, args := build(t, s)

	assert.Equal(t,
		"SELECT `a`.`id` FROM `a` "+
			"INNER JOIN `b` ON(`b`.`kind` = ?) "+
			"LEFT JOIN `c` ON(`c`.`a_id` = `a`.`id` AND `c`.`n` > ?) "+
			"WHERE `a`.`s` = ? "+
			"GROUP BY `a`.`id` "+
			"HAVING `a`.`total` > ? "+
			"ORDER BY `a`.`id` DESC "+
			"LIMIT 5",
		sql)
	assert.Equal(t, []any{"j1", 2, "w", 10}, args)
	assert.Equal(t, len(args), cond.Placeholders(sql))
}

func TestStatement_NullRewriteInWhere(t *testing.T) {
	sql, args := build(t, sqlselect.Select("id").
		From("article").
		Where(cond.Or(cond.Eq("author").Bind(nil), cond.Ne("category").Bind(cond.Null))))

	assert.Equal(t, "SELECT `id` FROM `article` WHERE `author` IS NULL OR `category` IS NOT NULL", sql)
	assert.Empty(t, args)
}

func TestStatement_InExpandsPlaceholders(t *testing.T) {
	sql, args := build(t, sqlselect.Select("id").
		From("article").
		Where(cond.And(cond.In("category").Bind([]int{1, 2, 3}), cond.Like("title", "%go%"))))

	assert.Equal(t, "SELECT `id` FROM `article` WHERE `category` IN(?,?,?) AND `title` LIKE ?", sql)
	assert.Equal(t, []any{1, 2, 3, "%go%"}, args)
}

// =============================================================================
// Column, source and order entries
// =============================================================================

func TestStatement_Aliases(t *testing.T) {
	sql, _ := build(t, sqlselect.Select(
		map[string]string{"u.name": "author"},
		sqlselect.As("id", "uid"),
		"u.*",
	).From(map[string]string{"users": "u"}))

	assert.Equal(t, "SELECT `u`.`name` AS `author`, `id` AS `uid`, `u`.* FROM `users` AS `u`", sql)
}

func TestStatement_JoinAlias(t *testing.T) {
	sql, _ := build(t, sqlselect.Select("a.id").
		From(sqlselect.As("article", "a")).
		RightJoin(sqlselect.As("users", "u"), cond.Eq("u.id", "a.user_id")))

	assert.Equal(t, "SELECT `a`.`id` FROM `article` AS `a` RIGHT JOIN `users` AS `u` ON(`u`.`id` = `a`.`user_id`)", sql)
}

func TestStatement_JoinUsingList(t *testing.T) {
	sql, _ := build(t, sqlselect.Select().From("a").LeftJoin("b", []string{"x", "y"}))
	assert.Equal(t, "SELECT * FROM `a` LEFT JOIN `b` USING(`x`, `y`)", sql)
}

func TestStatement_MultipleSources(t *testing.T) {
	sql, _ := build(t, sqlselect.Select().From("a", sqlselect.As("b", "bb")))
	assert.Equal(t, "SELECT * FROM `a`, `b` AS `bb`", sql)
}

func TestStatement_Raw(t *testing.T) {
	sql, args := build(t, sqlselect.Select(
		"category",
		sqlselect.NewRaw("COUNT(*)").As("total"),
	).From("article").GroupBy("category"))

	assert.Equal(t, "SELECT `category`, COUNT(*) AS `total` FROM `article` GROUP BY `category`", sql)
	assert.Empty(t, args)
}

func TestStatement_RawOnlyInSelectList(t *testing.T) {
	s := sqlselect.Select().From(sqlselect.NewRaw("dual"))
	assert.ErrorIs(t, s.Err(), sqlselect.ErrInvalidOperation)
}

func TestStatement_SelectOptions(t *testing.T) {
	sql, _ := build(t, sqlselect.Select(sqlselect.Distinct, sqlselect.SQLNoCache, "id").From("t"))
	assert.Equal(t, "SELECT DISTINCT SQL_NO_CACHE `id` FROM `t`", sql)
}

func TestStatement_SelectOptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns []any
	}{
		{"unknown", []any{sqlselect.SelectOption("FOR UPDATE"), "id"}},
		{"duplicate", []any{sqlselect.Distinct, sqlselect.Distinct}},
		{"exclusive", []any{sqlselect.Distinct, sqlselect.All}},
		{"exclusive result size", []any{sqlselect.SQLSmallResult, sqlselect.SQLBigResult}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sqlselect.Select(tt.columns...)
			assert.ErrorIs(t, s.Err(), sqlselect.ErrInvalidKeyword)
			assert.Equal(t, sqlselect.StateInitial, s.State())
		})
	}
}

func TestStatement_OrderByForms(t *testing.T) {
	sql, _ := build(t, sqlselect.Select().From("t").OrderBy(
		"a",
		sqlselect.Desc("b"),
		map[string]string{"c": "desc"},
		sqlselect.Asc("d"),
	))
	assert.Equal(t, "SELECT * FROM `t` ORDER BY `a` ASC, `b` DESC, `c` DESC, `d` ASC", sql)
}

func TestStatement_OrderByInvalidDirection(t *testing.T) {
	s := sqlselect.Select().From("t").OrderBy(map[string]string{"a": "sideways"})
	assert.ErrorIs(t, s.Err(), sqlselect.ErrInvalidKeyword)
}

func TestStatement_EntryErrors(t *testing.T) {
	tests := []struct {
		name string
		stmt *sqlselect.Statement
		want error
	}{
		{"invalid column", sqlselect.Select("id; DROP TABLE users"), sqlselect.ErrInvalidIdentifier},
		{"invalid source", sqlselect.Select().From("users u"), sqlselect.ErrInvalidIdentifier},
		{"invalid alias", sqlselect.Select(sqlselect.As("id", "a.b")), sqlselect.ErrInvalidIdentifier},
		{"invalid raw alias", sqlselect.Select(sqlselect.NewRaw("1").As("x y")), sqlselect.ErrInvalidIdentifier},
		{"empty raw", sqlselect.Select(sqlselect.NewRaw("  ")), sqlselect.ErrInvalidOperation},
		{"two entry mapping", sqlselect.Select(map[string]string{"a": "x", "b": "y"}), sqlselect.ErrInvalidOperation},
		{"unsupported entry", sqlselect.Select(42), sqlselect.ErrInvalidOperation},
		{"no sources", sqlselect.Select().From(), sqlselect.ErrInvalidOperation},
		{"nil join", sqlselect.Select().From("a").InnerJoin("b", nil), sqlselect.ErrInvalidOperation},
		{"empty using", sqlselect.Select().From("a").InnerJoin("b", []string{}), sqlselect.ErrInvalidOperation},
		{"bad join condition", sqlselect.Select().From("a").InnerJoin("b", 7), sqlselect.ErrInvalidOperation},
		{"invalid using column", sqlselect.Select().From("a").InnerJoin("b", "x-y"), sqlselect.ErrInvalidIdentifier},
		{"nil where", sqlselect.Select().From("a").Where(nil), sqlselect.ErrInvalidOperation},
		{"no group columns", sqlselect.Select().From("a").GroupBy(), sqlselect.ErrInvalidOperation},
		{"invalid group column", sqlselect.Select().From("a").GroupBy("1a"), sqlselect.ErrInvalidIdentifier},
		{"nil having", sqlselect.Select().From("a").GroupBy("x").Having(nil), sqlselect.ErrInvalidOperation},
		{"no order entries", sqlselect.Select().From("a").OrderBy(), sqlselect.ErrInvalidOperation},
		{"negative limit", sqlselect.Select().From("a").Limit(-1), sqlselect.ErrNegativeLimit},
		{"negative offset", sqlselect.Select().From("a").Limit(1, -1), sqlselect.ErrNegativeLimit},
		{"two offsets", sqlselect.Select().From("a").Limit(1, 2, 3), sqlselect.ErrInvalidOperation},
		{"empty in", sqlselect.Select().From("a").Where(cond.In("id").Bind([]int{})), sqlselect.ErrEmptyList},
		{"rebind", sqlselect.Select().From("a").Where(cond.Eq("id").Bind(1).Bind(2)), sqlselect.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.stmt.Err())
			assert.ErrorIs(t, tt.stmt.Err(), tt.want)

			_, _, err := tt.stmt.ToSQL()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// =============================================================================
// State machine
// =============================================================================

func TestStatement_States(t *testing.T) {
	s := sqlselect.NewStatement(nil)
	assert.Equal(t, sqlselect.StateInitial, s.State())

	steps := []struct {
		apply func(*sqlselect.Statement)
		want  sqlselect.State
	}{
		{func(s *sqlselect.Statement) { s.Select("id") }, sqlselect.StateColumns},
		{func(s *sqlselect.Statement) { s.From("a") }, sqlselect.StateFrom},
		{func(s *sqlselect.Statement) { s.InnerJoin("b", "id") }, sqlselect.StateJoin},
		{func(s *sqlselect.Statement) { s.LeftJoin("c", "id") }, sqlselect.StateJoin},
		{func(s *sqlselect.Statement) { s.Where(cond.IsNotNull("id")) }, sqlselect.StateWhere},
		{func(s *sqlselect.Statement) { s.GroupBy("id") }, sqlselect.StateGroupBy},
		{func(s *sqlselect.Statement) { s.Having(cond.IsNotNull("id")) }, sqlselect.StateHaving},
		{func(s *sqlselect.Statement) { s.OrderBy("id") }, sqlselect.StateOrderBy},
		{func(s *sqlselect.Statement) { s.Limit(1) }, sqlselect.StateLimit},
	}

	for _, step := range steps {
		step.apply(s)
		require.NoError(t, s.Err())
		assert.Equal(t, step.want, s.State())
	}

	_, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, sqlselect.StateFinal, s.State())
}

func TestStatement_IllegalSequences(t *testing.T) {
	tests := []struct {
		name      string
		stmt      func() *sqlselect.Statement
		operation string
		state     sqlselect.State
	}{
		{
			"where before from",
			func() *sqlselect.Statement { return sqlselect.Select("id").Where(cond.Eq("id").Bind(1)) },
			"Where", sqlselect.StateColumns,
		},
		{
			"from twice",
			func() *sqlselect.Statement { return sqlselect.Select().From("a").From("b") },
			"From", sqlselect.StateFrom,
		},
		{
			"select twice",
			func() *sqlselect.Statement { return sqlselect.Select().Select("id") },
			"Select", sqlselect.StateColumns,
		},
		{
			"from without select",
			func() *sqlselect.Statement { return sqlselect.NewStatement(nil).From("a") },
			"From", sqlselect.StateInitial,
		},
		{
			"join after where",
			func() *sqlselect.Statement {
				return sqlselect.Select().From("a").Where(cond.IsNull("x")).InnerJoin("b", "id")
			},
			"Join", sqlselect.StateWhere,
		},
		{
			"having without group by",
			func() *sqlselect.Statement { return sqlselect.Select().From("a").Having(cond.IsNull("x")) },
			"Having", sqlselect.StateFrom,
		},
		{
			"where twice",
			func() *sqlselect.Statement {
				return sqlselect.Select().From("a").Where(cond.IsNull("x")).Where(cond.IsNull("y"))
			},
			"Where", sqlselect.StateWhere,
		},
		{
			"group by after order by",
			func() *sqlselect.Statement { return sqlselect.Select().From("a").OrderBy("x").GroupBy("x") },
			"GroupBy", sqlselect.StateOrderBy,
		},
		{
			"order by after limit",
			func() *sqlselect.Statement { return sqlselect.Select().From("a").Limit(1).OrderBy("x") },
			"OrderBy", sqlselect.StateLimit,
		},
		{
			"limit twice",
			func() *sqlselect.Statement { return sqlselect.Select().From("a").Limit(1).Limit(2) },
			"Limit", sqlselect.StateLimit,
		},
		{
			"limit without select",
			func() *sqlselect.Statement { return sqlselect.NewStatement(nil).Limit(1) },
			"Limit", sqlselect.StateInitial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.stmt()

			assert.ErrorIs(t, s.Err(), sqlselect.ErrIllegalSequence)

			var seqErr *sqlselect.IllegalSequenceError
			require.True(t, errors.As(s.Err(), &seqErr))
			assert.Equal(t, tt.operation, seqErr.Operation)
			assert.Equal(t, tt.state, seqErr.State)
			assert.Equal(t, tt.state, s.State(), "state must not advance")

			_, _, err := s.ToSQL()
			assert.ErrorIs(t, err, sqlselect.ErrIllegalSequence)
		})
	}
}

func TestStatement_SequenceErrorMessage(t *testing.T) {
	s := sqlselect.Select("id").Where(cond.Eq("id").Bind(1))
	assert.EqualError(t, s.Err(), "sqlselect: Where is not allowed after Columns")
}

func TestStatement_FirstErrorWins(t *testing.T) {
	s := sqlselect.Select("id").
		Where(cond.Eq("id").Bind(1)).
		From("bad table").
		Limit(-1)

	var seqErr *sqlselect.IllegalSequenceError
	require.True(t, errors.As(s.Err(), &seqErr))
	assert.Equal(t, "Where", seqErr.Operation)
}

func TestStatement_SequenceErrorBeforeContentError(t *testing.T) {
	s := sqlselect.Select().From("a").Limit(1).Where(nil)
	assert.ErrorIs(t, s.Err(), sqlselect.ErrIllegalSequence)
}

func TestStatement_LimitFromColumns(t *testing.T) {
	sql, _ := build(t, sqlselect.Select(sqlselect.NewRaw("1").As("one")).Limit(1))
	assert.Equal(t, "SELECT 1 AS `one` LIMIT 1", sql)
}

func TestStatement_BuildFromInitial(t *testing.T) {
	_, err := sqlselect.NewStatement(nil).Build()
	assert.ErrorIs(t, err, sqlselect.ErrIllegalSequence)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Initial", sqlselect.StateInitial.String())
	assert.Equal(t, "GroupBy", sqlselect.StateGroupBy.String())
	assert.Equal(t, "Final", sqlselect.StateFinal.String())
	assert.Equal(t, "Unknown", sqlselect.State(99).String())

	assert.True(t, sqlselect.StateLimit.IsTerminal())
	assert.True(t, sqlselect.StateFinal.IsTerminal())
	assert.False(t, sqlselect.StateOrderBy.IsTerminal())
}

// =============================================================================
// Finalization
// =============================================================================

func TestStatement_Idempotent(t *testing.T) {
	s := sqlselect.Select("id").
		From("a").
		Where(cond.And(cond.Eq("id").Bind(1337), cond.Between("stamp", "2013-01-06", "2014-03-31")))

	sql1, args1, err := s.ToSQL()
	require.NoError(t, err)

	text, err := s.Text()
	require.NoError(t, err)
	args, err := s.BoundArgs()
	require.NoError(t, err)
	sql2, args2, err := s.ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT `id` FROM `a` WHERE `id` = ? AND `stamp` BETWEEN ? AND ?", sql1)
	assert.Equal(t, []any{1337, "2013-01-06", "2014-03-31"}, args1)
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, sql1, text)
	assert.Equal(t, args1, args2)
	assert.Equal(t, args1, args)
	assert.Equal(t, sql1, s.String())
}

func TestStatement_BuildReturnsCopy(t *testing.T) {
	s := sqlselect.Select().From("a").Where(cond.Eq("id").Bind(1))

	q, err := s.Build()
	require.NoError(t, err)
	q.Args[0] = 99

	again, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, []any{1}, again.Args)
	assert.Equal(t, again.SQL, again.String())
}

func TestStatement_FinalRejectsChain(t *testing.T) {
	s := sqlselect.Select().From("a")
	_, _, err := s.ToSQL()
	require.NoError(t, err)

	s.Where(cond.Eq("id").Bind(1))

	var seqErr *sqlselect.IllegalSequenceError
	require.True(t, errors.As(s.Err(), &seqErr))
	assert.Equal(t, sqlselect.StateFinal, seqErr.State)
}

func TestStatement_UnboundConditionDetectedAtSerialization(t *testing.T) {
	id := cond.Eq("id")
	s := sqlselect.Select().From("a").Where(id)

	require.NoError(t, s.Err())
	_, _, err := s.ToSQL()
	assert.ErrorIs(t, err, sqlselect.ErrInvalidOperation)
	assert.NotEqual(t, sqlselect.StateFinal, s.State())

	id.Bind(7)
	sql, args := build(t, s)
	assert.Equal(t, "SELECT * FROM `a` WHERE `id` = ?", sql)
	assert.Equal(t, []any{7}, args)
}

func TestStatement_TypedNilCondition(t *testing.T) {
	var missing *cond.Comparison

	tests := []struct {
		name string
		stmt func() *sqlselect.Statement
	}{
		{"where", func() *sqlselect.Statement {
			return sqlselect.Select("id").From("t").Where(missing)
		}},
		{"having", func() *sqlselect.Statement {
			return sqlselect.Select("id").From("t").GroupBy("id").Having(missing)
		}},
		{"join on", func() *sqlselect.Statement {
			return sqlselect.Select("id").From("t").InnerJoin("u", missing)
		}},
		{"nested in group", func() *sqlselect.Statement {
			return sqlselect.Select("id").From("t").Where(cond.And(cond.Eq("a").Bind(1), missing))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, _, err = tt.stmt().ToSQL()
			})
			assert.ErrorIs(t, err, sqlselect.ErrInvalidOperation)
		})
	}
}

func TestStatement_StringDoesNotFinalize(t *testing.T) {
	s := sqlselect.Select("id").From("t")

	assert.Equal(t, "SELECT `id` FROM `t`", s.String())
	assert.Equal(t, sqlselect.StateFrom, s.State())

	sql, args := build(t, s.Where(cond.Eq("a").Bind(1)))
	assert.Equal(t, "SELECT `id` FROM `t` WHERE `a` = ?", sql)
	assert.Equal(t, []any{1}, args)
	assert.Equal(t, sql, s.String())
}

// =============================================================================
// Clone / When / ForPage
// =============================================================================

func TestStatement_Clone(t *testing.T) {
	base := sqlselect.Select("id").From("a")

	left := base.Clone().Where(cond.Eq("x").Bind(1))
	right := base.Clone().OrderBy("id")

	leftSQL, _ := build(t, left)
	rightSQL, _ := build(t, right)
	baseSQL, _ := build(t, base)

	assert.Equal(t, "SELECT `id` FROM `a` WHERE `x` = ?", leftSQL)
	assert.Equal(t, "SELECT `id` FROM `a` ORDER BY `id` ASC", rightSQL)
	assert.Equal(t, "SELECT `id` FROM `a`", baseSQL)
}

func TestStatement_CloneOfFinalResumes(t *testing.T) {
	s := sqlselect.Select().From("a")
	_, _, err := s.ToSQL()
	require.NoError(t, err)

	c := s.Clone()
	assert.Equal(t, sqlselect.StateFrom, c.State())

	sql, args := build(t, c.Where(cond.Eq("id").Bind(1)))
	assert.Equal(t, "SELECT * FROM `a` WHERE `id` = ?", sql)
	assert.Equal(t, []any{1}, args)
}

func TestStatement_CloneKeepsError(t *testing.T) {
	s := sqlselect.Select().Where(cond.IsNull("x"))
	assert.ErrorIs(t, s.Clone().Err(), sqlselect.ErrIllegalSequence)
}

func TestStatement_WhenUnless(t *testing.T) {
	onlyActive := true
	sql, args := build(t, sqlselect.Select().From("users").
		When(onlyActive, func(s *sqlselect.Statement) {
			s.Where(cond.Eq("status").Bind("active"))
		}).
		Unless(onlyActive, func(s *sqlselect.Statement) {
			s.Where(cond.IsNotNull("deleted_at"))
		}))

	assert.Equal(t, "SELECT * FROM `users` WHERE `status` = ?", sql)
	assert.Equal(t, []any{"active"}, args)
}

func TestStatement_ForPage(t *testing.T) {
	tests := []struct {
		page, perPage int
		want          string
	}{
		{3, 10, "SELECT * FROM `a` LIMIT 10 OFFSET 20"},
		{1, 10, "SELECT * FROM `a` LIMIT 10 OFFSET 0"},
		{0, 0, "SELECT * FROM `a` LIMIT 15 OFFSET 0"},
	}

	for _, tt := range tests {
		sql, _ := build(t, sqlselect.Select().From("a").ForPage(tt.page, tt.perPage))
		assert.Equal(t, tt.want, sql)
	}
}

func TestStatement_ExecuteWithoutDB(t *testing.T) {
	var rows []struct{ ID int }
	assert.ErrorIs(t, sqlselect.Select().From("a").Get(&rows), sqlselect.ErrNoExecutor)

	var row struct{ ID int }
	assert.ErrorIs(t, sqlselect.Select().From("a").First(&row), sqlselect.ErrNoExecutor)
}

func TestStatement_Grammar(t *testing.T) {
	assert.Equal(t, "mysql", sqlselect.Select().Grammar().Name())
	assert.Equal(t, "mysql", sqlselect.NewStatement(sqlselect.MySQL()).Grammar().Name())
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkStatement_ToSQL(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = sqlselect.Select("id", "title").
			From("article").
			InnerJoin("users", "userId").
			Where(cond.And(cond.Eq("category").Bind(5), cond.In("tag").Bind([]string{"a", "b"}))).
			OrderBy(sqlselect.Desc("id")).
			Limit(10, 20).
			ToSQL()
	}
}
