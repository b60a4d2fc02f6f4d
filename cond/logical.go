package cond

// conjunction, bir grubun alt düğümlerini birleştiren bağlaçtır.
type conjunction string

const (
	conjAnd conjunction = "AND"
	conjOr  conjunction = "OR"
)

// ----------------------------------------------------------------------------
// AND / OR
// ----------------------------------------------------------------------------

// Group, alt düğümlerini AND veya OR ile birleştirir.
//
// Tek alt düğümlü grup, alt düğümün kendisi gibi yazılır. Bir AND içindeki OR grubu
// (ve tersi) parantez içine alınır; aynı bağlaçlı iç içe gruplar paranteze gerek duymaz.
type Group struct {
	conj     conjunction
	children []Node
	err      error
}

func newGroup(conj conjunction, children []Node) *Group {
	g := &Group{conj: conj, children: children}
	if len(children) == 0 {
		g.err = &InvalidOperationError{Op: string(conj), Reason: "at least one condition is required"}
		return g
	}
	for _, child := range children {
		if IsNil(child) {
			g.err = &InvalidOperationError{Op: string(conj), Reason: "condition is nil"}
			return g
		}
	}
	return g
}

// And, alt koşulları AND ile birleştirir. En az bir koşul gerekir.
func And(children ...Node) *Group { return newGroup(conjAnd, children) }

// Or, alt koşulları OR ile birleştirir. En az bir koşul gerekir.
func Or(children ...Node) *Group { return newGroup(conjOr, children) }

// Len, grubun alt düğüm sayısını döndürür.
func (g *Group) Len() int { return len(g.children) }

// Err, grubun veya alt düğümlerinin kaydettiği ilk hatayı döndürür.
func (g *Group) Err() error {
	if g.err != nil {
		return g.err
	}
	for _, child := range g.children {
		if err := child.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) writeTo(c *compiler) error {
	if g.err != nil {
		return g.err
	}
	if len(g.children) == 1 {
		return g.children[0].writeTo(c)
	}

	for i, child := range g.children {
		if i > 0 {
			c.write(" ", string(g.conj), " ")
		}

		if g.needsParens(child) {
			c.write("(")
			if err := child.writeTo(c); err != nil {
				return err
			}
			c.write(")")
			continue
		}

		if err := child.writeTo(c); err != nil {
			return err
		}
	}
	return nil
}

// needsParens, alt düğümün farklı bağlaçlı çok elemanlı bir grup olup olmadığını söyler.
func (g *Group) needsParens(child Node) bool {
	inner, ok := collapse(child).(*Group)
	return ok && inner.conj != g.conj && len(inner.children) > 1
}

// collapse, tek alt düğümlü grupları açarak yazılacak asıl düğümü bulur.
func collapse(n Node) Node {
	for {
		g, ok := n.(*Group)
		if !ok || g.err != nil || len(g.children) != 1 {
			return n
		}
		n = g.children[0]
	}
}

// ----------------------------------------------------------------------------
// NOT
// ----------------------------------------------------------------------------

// Negation, "NOT(koşul)" düğümüdür. Alt koşul her zaman parantez içine alınır.
type Negation struct {
	child Node
	err   error
}

// Not, koşulu olumsuzlar.
func Not(child Node) *Negation {
	n := &Negation{child: child}
	if IsNil(child) {
		n.err = &InvalidOperationError{Op: "NOT", Reason: "condition is nil"}
	}
	return n
}

// Err, kaydedilmiş veya alt koşulun ilk hatasını döndürür.
func (n *Negation) Err() error {
	if n.err != nil {
		return n.err
	}
	return n.child.Err()
}

func (n *Negation) writeTo(c *compiler) error {
	if n.err != nil {
		return n.err
	}
	c.write("NOT(")
	if err := n.child.writeTo(c); err != nil {
		return err
	}
	c.write(")")
	return nil
}
