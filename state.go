package sqlselect

// ----------------------------------------------------------------------------
// Statement States
// ----------------------------------------------------------------------------

// State, bir Statement'ın zincirde bulunduğu aşamadır.
// Cümleler yalnızca SQL'in izin verdiği sırada eklenebilir; her çağrı geçiş
// tablosuna karşı kontrol edilir.
type State int

const (
	StateInitial State = iota
	StateColumns
	StateFrom
	StateJoin
	StateWhere
	StateGroupBy
	StateHaving
	StateOrderBy
	StateLimit
	StateFinal
)

// String, State'in string temsilini döndürür.
func (s State) String() string {
	names := [...]string{
		"Initial", "Columns", "From", "Join", "Where",
		"GroupBy", "Having", "OrderBy", "Limit", "Final",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsTerminal, bu durumdan sonra yeni cümle eklenip eklenemeyeceğini söyler.
func (s State) IsTerminal() bool {
	return s == StateLimit || s == StateFinal
}

// ----------------------------------------------------------------------------
// Transition Table
// ----------------------------------------------------------------------------

// operation, zincirdeki bir çağrının geçiş tablosundaki adıdır.
type operation string

const (
	opSelect  operation = "Select"
	opFrom    operation = "From"
	opJoin    operation = "Join"
	opWhere   operation = "Where"
	opGroupBy operation = "GroupBy"
	opHaving  operation = "Having"
	opOrderBy operation = "OrderBy"
	opLimit   operation = "Limit"
)

// transitions, her durumdan hangi çağrının hangi duruma götürdüğünü tanımlar.
// Tabloda olmayan her çağrı IllegalSequenceError üretir.
var transitions = map[State]map[operation]State{
	StateInitial: {
		opSelect: StateColumns,
	},
	StateColumns: {
		opFrom:  StateFrom,
		opLimit: StateLimit,
	},
	StateFrom: {
		opJoin:    StateJoin,
		opWhere:   StateWhere,
		opGroupBy: StateGroupBy,
		opOrderBy: StateOrderBy,
		opLimit:   StateLimit,
	},
	StateJoin: {
		opJoin:    StateJoin,
		opWhere:   StateWhere,
		opGroupBy: StateGroupBy,
		opOrderBy: StateOrderBy,
		opLimit:   StateLimit,
	},
	StateWhere: {
		opGroupBy: StateGroupBy,
		opOrderBy: StateOrderBy,
		opLimit:   StateLimit,
	},
	StateGroupBy: {
		opHaving:  StateHaving,
		opOrderBy: StateOrderBy,
		opLimit:   StateLimit,
	},
	StateHaving: {
		opOrderBy: StateOrderBy,
		opLimit:   StateLimit,
	},
	StateOrderBy: {
		opLimit: StateLimit,
	},
}

// next, verilen durumdan çağrının gideceği durumu döndürür.
func next(from State, op operation) (State, bool) {
	to, ok := transitions[from][op]
	return to, ok
}
