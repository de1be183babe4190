package dump

// SchemaVersion is bumped whenever the wire layout changes incompatibly.
const SchemaVersion uint16 = 1

// The wire types are shared by the JSON and MessagePack encodings.
//
// Expressions use one flat record for every kind; which fields are
// meaningful depends on Kind:
//
//	Lit         Text
//	Path        Text (the path as written)
//	Unary       Op, Operand
//	Binary      Op, Left, Right
//	AddrOf      Mut, Raw, Operand
//	Call        Callee, Args
//	MethodCall  Text (method name), Args (receiver first)
//	Tup, Array  Args
//	Field       Operand (base), Text (field name)
//	Index       Left (base), Right (index)
//	Match       Operand (scrutinee), Arms, Source
//	Block       Block
//	DropTemps   Operand
//	Closure     Params, Operand (body)
//	Assign      Left (target), Right (value)
//	Cast        Operand, Text (type)
//	Ret         Operand (optional)

type wireCrate struct {
	Schema      uint16            `json:"schema" msgpack:"schema"`
	Name        string            `json:"name" msgpack:"name"`
	Files       []wireFile        `json:"files" msgpack:"files"`
	Expansions  []wireExpn        `json:"expansions,omitempty" msgpack:"expansions,omitempty"`
	Bodies      []wireBody        `json:"bodies" msgpack:"bodies"`
	Types       []wireNodeType    `json:"types,omitempty" msgpack:"types,omitempty"`
	Adjustments []wireAdjustments `json:"adjustments,omitempty" msgpack:"adjustments,omitempty"`
}

type wireFile struct {
	Path string `json:"path" msgpack:"path"`
	// Source is the file content. When empty the file is read from disk
	// relative to the dump.
	Source string `json:"source,omitempty" msgpack:"source,omitempty"`
}

type wireSpan struct {
	File uint32 `json:"file" msgpack:"file"`
	Lo   uint32 `json:"lo" msgpack:"lo"`
	Hi   uint32 `json:"hi" msgpack:"hi"`
	// Expn is a 1-based index into wireCrate.Expansions; 0 means none.
	Expn uint32 `json:"expn,omitempty" msgpack:"expn,omitempty"`
}

type wireExpn struct {
	Kind     string   `json:"kind" msgpack:"kind"`
	Macro    string   `json:"macro,omitempty" msgpack:"macro,omitempty"`
	Name     string   `json:"name" msgpack:"name"`
	CallSite wireSpan `json:"call_site" msgpack:"call_site"`
	Parent   uint32   `json:"parent,omitempty" msgpack:"parent,omitempty"`
}

type wireBody struct {
	Owner string    `json:"owner" msgpack:"owner"`
	Span  wireSpan  `json:"span" msgpack:"span"`
	Allow []string  `json:"allow,omitempty" msgpack:"allow,omitempty"`
	Value *wireExpr `json:"value" msgpack:"value"`
}

type wireExpr struct {
	ID      uint32      `json:"id" msgpack:"id"`
	Kind    string      `json:"kind" msgpack:"kind"`
	Span    wireSpan    `json:"span" msgpack:"span"`
	Text    string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Op      string      `json:"op,omitempty" msgpack:"op,omitempty"`
	Mut     bool        `json:"mut,omitempty" msgpack:"mut,omitempty"`
	Raw     bool        `json:"raw,omitempty" msgpack:"raw,omitempty"`
	Source  string      `json:"source,omitempty" msgpack:"source,omitempty"`
	Callee  *wireExpr   `json:"callee,omitempty" msgpack:"callee,omitempty"`
	Args    []*wireExpr `json:"args,omitempty" msgpack:"args,omitempty"`
	Operand *wireExpr   `json:"operand,omitempty" msgpack:"operand,omitempty"`
	Left    *wireExpr   `json:"left,omitempty" msgpack:"left,omitempty"`
	Right   *wireExpr   `json:"right,omitempty" msgpack:"right,omitempty"`
	Arms    []wireArm   `json:"arms,omitempty" msgpack:"arms,omitempty"`
	Block   *wireBlock  `json:"block,omitempty" msgpack:"block,omitempty"`
	Params  []string    `json:"params,omitempty" msgpack:"params,omitempty"`
}

type wireBlock struct {
	ID    uint32     `json:"id" msgpack:"id"`
	Span  wireSpan   `json:"span" msgpack:"span"`
	Stmts []wireStmt `json:"stmts,omitempty" msgpack:"stmts,omitempty"`
	Expr  *wireExpr  `json:"expr,omitempty" msgpack:"expr,omitempty"`
}

type wireStmt struct {
	ID   uint32    `json:"id" msgpack:"id"`
	Kind string    `json:"kind" msgpack:"kind"`
	Span wireSpan  `json:"span" msgpack:"span"`
	Expr *wireExpr `json:"expr,omitempty" msgpack:"expr,omitempty"`
	Name string    `json:"name,omitempty" msgpack:"name,omitempty"`
	Init *wireExpr `json:"init,omitempty" msgpack:"init,omitempty"`
}

type wireArm struct {
	Span  wireSpan  `json:"span" msgpack:"span"`
	Pat   string    `json:"pat" msgpack:"pat"`
	Guard *wireExpr `json:"guard,omitempty" msgpack:"guard,omitempty"`
	Body  *wireExpr `json:"body" msgpack:"body"`
}

type wireTy struct {
	Kind string  `json:"kind" msgpack:"kind"`
	Mut  bool    `json:"mut,omitempty" msgpack:"mut,omitempty"`
	Name string  `json:"name,omitempty" msgpack:"name,omitempty"`
	Elem *wireTy `json:"elem,omitempty" msgpack:"elem,omitempty"`
}

type wireNodeType struct {
	ID uint32 `json:"id" msgpack:"id"`
	Ty wireTy `json:"ty" msgpack:"ty"`
}

type wireAdjustments struct {
	ID    uint32           `json:"id" msgpack:"id"`
	Steps []wireAdjustment `json:"steps" msgpack:"steps"`
}

type wireAdjustment struct {
	Kind   string `json:"kind" msgpack:"kind"`
	Target wireTy `json:"target" msgpack:"target"`
}
