package hir

// Mutability of a borrow or reference type.
type Mutability uint8

const (
	Not Mutability = iota
	Mut
)

func (m Mutability) String() string {
	if m == Mut {
		return "mut"
	}
	return "not"
}

// TyKind enumerates the type shapes the rules care about. Everything else is
// TyOther with a display name.
type TyKind uint8

const (
	TyOther TyKind = iota
	TyRef
	TyRawPtr
	TyBool
	TyInt
	TyAdt
	TyNever
)

var tyKindNames = [...]string{
	TyOther:  "other",
	TyRef:    "ref",
	TyRawPtr: "ptr",
	TyBool:   "bool",
	TyInt:    "int",
	TyAdt:    "adt",
	TyNever:  "never",
}

func (k TyKind) String() string {
	if int(k) < len(tyKindNames) {
		return tyKindNames[k]
	}
	return "unknown"
}

// ParseTyKind is the inverse of TyKind.String.
func ParseTyKind(s string) (TyKind, bool) {
	for k, name := range tyKindNames {
		if name == s {
			return TyKind(k), true
		}
	}
	return 0, false
}

// Ty is a resolved type. Elem is the pointee of references and raw pointers.
type Ty struct {
	Kind  TyKind
	Mutbl Mutability
	Name  string
	Elem  *Ty
}

// IsMutRef reports whether t is `&mut T`.
func (t Ty) IsMutRef() bool {
	return t.Kind == TyRef && t.Mutbl == Mut
}

func (t Ty) String() string {
	switch t.Kind {
	case TyRef, TyRawPtr:
		prefix := "&"
		if t.Kind == TyRawPtr {
			prefix = "*const "
			if t.Mutbl == Mut {
				prefix = "*mut "
			}
		} else if t.Mutbl == Mut {
			prefix = "&mut "
		}
		if t.Elem == nil {
			return prefix + "_"
		}
		return prefix + t.Elem.String()
	case TyNever:
		return "!"
	}
	if t.Name == "" {
		return "_"
	}
	return t.Name
}

// AdjustKind enumerates compiler-inserted coercions.
type AdjustKind uint8

const (
	AdjustNeverToAny AdjustKind = iota
	AdjustDeref
	AdjustBorrow
	AdjustPointer
)

var adjustKindNames = [...]string{
	AdjustNeverToAny: "never-to-any",
	AdjustDeref:      "deref",
	AdjustBorrow:     "borrow",
	AdjustPointer:    "pointer",
}

func (k AdjustKind) String() string {
	if int(k) < len(adjustKindNames) {
		return adjustKindNames[k]
	}
	return "unknown"
}

// ParseAdjustKind is the inverse of AdjustKind.String.
func ParseAdjustKind(s string) (AdjustKind, bool) {
	for k, name := range adjustKindNames {
		if name == s {
			return AdjustKind(k), true
		}
	}
	return 0, false
}

// Adjustment is one implicit coercion applied to an expression's value at its
// use site. Target is the type after the step.
type Adjustment struct {
	Kind   AdjustKind
	Target Ty
}

// TypeckResults holds per-node type information computed by the frontend.
// It is read-only for rules.
type TypeckResults struct {
	nodeTypes   map[HirID]Ty
	adjustments map[HirID][]Adjustment
}

func NewTypeckResults() *TypeckResults {
	return &TypeckResults{
		nodeTypes:   make(map[HirID]Ty),
		adjustments: make(map[HirID][]Adjustment),
	}
}

// SetNodeType records the type of the node with the given ID.
func (r *TypeckResults) SetNodeType(id HirID, ty Ty) {
	r.nodeTypes[id] = ty
}

// NodeType returns the recorded type of a node.
func (r *TypeckResults) NodeType(id HirID) (Ty, bool) {
	if r == nil {
		return Ty{}, false
	}
	ty, ok := r.nodeTypes[id]
	return ty, ok
}

// SetAdjustments replaces the adjustments recorded for a node.
func (r *TypeckResults) SetAdjustments(id HirID, adj ...Adjustment) {
	if len(adj) == 0 {
		delete(r.adjustments, id)
		return
	}
	r.adjustments[id] = adj
}

// Adjustments returns the coercions applied to the node, in order.
func (r *TypeckResults) Adjustments(id HirID) []Adjustment {
	if r == nil {
		return nil
	}
	return r.adjustments[id]
}

// AdjustedIDs returns the IDs that carry adjustments. Order is unspecified.
func (r *TypeckResults) AdjustedIDs() []HirID {
	ids := make([]HirID, 0, len(r.adjustments))
	for id := range r.adjustments {
		ids = append(ids, id)
	}
	return ids
}

// TypedIDs returns the IDs that carry a node type. Order is unspecified.
func (r *TypeckResults) TypedIDs() []HirID {
	ids := make([]HirID, 0, len(r.nodeTypes))
	for id := range r.nodeTypes {
		ids = append(ids, id)
	}
	return ids
}
