package parser

import (
	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string // Returns the literal value of the token associated with the node
	String() string       // Source rendering of the node
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a binding target: an identifier or a destructuring pattern.
type Pattern interface {
	Node
	patternNode()
}

// TypeNode is a type annotation.
type TypeNode interface {
	Node
	typeNode()
}

// InterfaceMember is one entry of an interface body or object type literal.
type InterfaceMember interface {
	Node
	memberNode()
}

// render prints a single node through the emitter. Nodes that cannot be
// printed render as an empty string.
func render(n Node) string {
	e := NewEmitter()
	out, _ := e.EmitNode(n)
	return out
}

// --- Program Node ---

// Program is the root node of the AST.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string { return render(p) }

// --- Statement Nodes ---

// BlockStatement is a braced list of statements.
type BlockStatement struct {
	Token      lexer.Token // '{'
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string       { return render(bs) }

// ExpressionStatement wraps an expression evaluated for its effect.
type ExpressionStatement struct {
	Token      lexer.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string       { return render(es) }

// VarDeclaration is a let, const or var declaration with one or more declarators.
type VarDeclaration struct {
	Token       lexer.Token // LET, CONST or VAR
	Kind        string      // "let", "const" or "var"
	Declarators []*VarDeclarator
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) String() string       { return render(vd) }

// VarDeclarator binds Target, optionally typed and initialized.
type VarDeclarator struct {
	Token          lexer.Token
	Target         Pattern
	Definite       bool // let x!: T
	TypeAnnotation TypeNode
	Value          Expression
}

func (d *VarDeclarator) TokenLiteral() string { return d.Token.Literal }
func (d *VarDeclarator) String() string       { return render(d) }

// FunctionDeclaration is a named function statement.
type FunctionDeclaration struct {
	Token    lexer.Token // FUNCTION, or the 'async' identifier
	Function *FunctionLiteral
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) String() string       { return render(fd) }

// InterfaceDeclaration is `interface Name extends A, B { members }`.
type InterfaceDeclaration struct {
	Token   lexer.Token // 'interface'
	Name    *Identifier
	Extends []TypeNode
	Members []InterfaceMember
}

func (id *InterfaceDeclaration) statementNode()       {}
func (id *InterfaceDeclaration) TokenLiteral() string { return id.Token.Literal }
func (id *InterfaceDeclaration) String() string       { return render(id) }

// TypeAliasStatement is `type Name = Type`.
type TypeAliasStatement struct {
	Token lexer.Token // 'type'
	Name  *Identifier
	Type  TypeNode
}

func (ta *TypeAliasStatement) statementNode()       {}
func (ta *TypeAliasStatement) TokenLiteral() string { return ta.Token.Literal }
func (ta *TypeAliasStatement) String() string       { return render(ta) }

// IfStatement is `if (Condition) Consequence else Alternative`.
type IfStatement struct {
	Token       lexer.Token
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string       { return render(is) }

// ForStatement is the three-clause for loop. Init is nil, a *VarDeclaration
// or an Expression.
type ForStatement struct {
	Token     lexer.Token
	Init      Node
	Condition Expression
	Update    Expression
	Body      Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string       { return render(fs) }

// ForInStatement is `for (Left in Right) Body`. Left is a *VarDeclaration
// without initializer or an assignable Expression.
type ForInStatement struct {
	Token lexer.Token
	Left  Node
	Right Expression
	Body  Statement
}

func (fs *ForInStatement) statementNode()       {}
func (fs *ForInStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForInStatement) String() string       { return render(fs) }

// ForOfStatement is `for (Left of Right) Body`, or `for await` when Await is set.
type ForOfStatement struct {
	Token lexer.Token
	Await bool
	Left  Node
	Right Expression
	Body  Statement
}

func (fs *ForOfStatement) statementNode()       {}
func (fs *ForOfStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForOfStatement) String() string       { return render(fs) }

// WhileStatement is `while (Condition) Body`.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string       { return render(ws) }

// DoWhileStatement is `do Body while (Condition)`.
type DoWhileStatement struct {
	Token     lexer.Token
	Body      Statement
	Condition Expression
}

func (dws *DoWhileStatement) statementNode()       {}
func (dws *DoWhileStatement) TokenLiteral() string { return dws.Token.Literal }
func (dws *DoWhileStatement) String() string       { return render(dws) }

// ReturnStatement is `return ReturnValue`.
type ReturnStatement struct {
	Token       lexer.Token
	ReturnValue Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string       { return render(rs) }

// BreakStatement is `break Label`.
type BreakStatement struct {
	Token lexer.Token
	Label *Identifier
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) String() string       { return render(bs) }

// ContinueStatement is `continue Label`.
type ContinueStatement struct {
	Token lexer.Token
	Label *Identifier
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) String() string       { return render(cs) }

// ThrowStatement is `throw Value`.
type ThrowStatement struct {
	Token lexer.Token
	Value Expression
}

func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *ThrowStatement) String() string       { return render(ts) }

// TryStatement is try/catch/finally. At least one of Handler and Finalizer is set.
type TryStatement struct {
	Token     lexer.Token
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) String() string       { return render(ts) }

// CatchClause is `catch (Param: ParamType) Body`. Param is nil for `catch { }`.
type CatchClause struct {
	Token     lexer.Token
	Param     Pattern
	ParamType TypeNode
	Body      *BlockStatement
}

func (cc *CatchClause) TokenLiteral() string { return cc.Token.Literal }
func (cc *CatchClause) String() string       { return render(cc) }

// SwitchStatement is `switch (Discriminant) { Cases }`.
type SwitchStatement struct {
	Token        lexer.Token
	Discriminant Expression
	Cases        []*SwitchCase
}

func (ss *SwitchStatement) statementNode()       {}
func (ss *SwitchStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SwitchStatement) String() string       { return render(ss) }

// SwitchCase is one `case Test:` or `default:` arm.
type SwitchCase struct {
	Token      lexer.Token
	Test       Expression // nil for default
	Consequent []Statement
}

func (sc *SwitchCase) TokenLiteral() string { return sc.Token.Literal }
func (sc *SwitchCase) String() string       { return render(sc) }

// LabeledStatement is `Label: Body`.
type LabeledStatement struct {
	Token lexer.Token
	Label *Identifier
	Body  Statement
}

func (ls *LabeledStatement) statementNode()       {}
func (ls *LabeledStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LabeledStatement) String() string       { return render(ls) }

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	Token lexer.Token
}

func (es *EmptyStatement) statementNode()       {}
func (es *EmptyStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EmptyStatement) String() string       { return ";" }

// --- Expressions ---

// Identifier is a name. It is also a binding pattern.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) patternNode()         {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// PrivateName is `#name`; it only appears as a member property.
type PrivateName struct {
	Token lexer.Token
	Name  string // without the leading '#'
}

func (pn *PrivateName) expressionNode()      {}
func (pn *PrivateName) TokenLiteral() string { return pn.Token.Literal }
func (pn *PrivateName) String() string       { return "#" + pn.Name }

// NumberLiteral keeps the source spelling of a numeric literal.
type NumberLiteral struct {
	Token lexer.Token
	Raw   string
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return n.Raw }

// StringLiteral holds the cooked value. Raw is the quoted source text, empty
// for synthesized literals.
type StringLiteral struct {
	Token lexer.Token
	Value string
	Raw   string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return render(s) }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// NullLiteral is null.
type NullLiteral struct {
	Token lexer.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) String() string       { return "null" }

// RegexLiteral is /Pattern/Flags.
type RegexLiteral struct {
	Token   lexer.Token
	Pattern string
	Flags   string
}

func (rl *RegexLiteral) expressionNode()      {}
func (rl *RegexLiteral) TokenLiteral() string { return rl.Token.Literal }
func (rl *RegexLiteral) String() string       { return "/" + rl.Pattern + "/" + rl.Flags }

// TemplateLiteral is a backtick string. Quasis holds the raw text chunks and
// has exactly one more element than Expressions.
type TemplateLiteral struct {
	Token       lexer.Token
	Quasis      []string
	Expressions []Expression
}

func (tl *TemplateLiteral) expressionNode()      {}
func (tl *TemplateLiteral) TokenLiteral() string { return tl.Token.Literal }
func (tl *TemplateLiteral) String() string       { return render(tl) }

// ThisExpression is `this`.
type ThisExpression struct {
	Token lexer.Token
}

func (te *ThisExpression) expressionNode()      {}
func (te *ThisExpression) TokenLiteral() string { return te.Token.Literal }
func (te *ThisExpression) String() string       { return "this" }

// ArrayLiteral is `[a, , ...b]`. Holes are nil elements.
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string       { return render(al) }

// ObjectLiteral is `{ k: v, m() {}, ...o }`.
type ObjectLiteral struct {
	Token      lexer.Token
	Properties []*ObjectProperty
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) String() string       { return render(ol) }

// ObjectProperty is one object literal entry. A spread entry has a nil Key and
// a *SpreadElement Value. A method entry has a *FunctionLiteral Value.
type ObjectProperty struct {
	Token     lexer.Token
	Key       Expression // *Identifier, *StringLiteral, *NumberLiteral, or any expression when Computed
	Computed  bool
	Value     Expression
	Shorthand bool
	Method    bool
}

func (op *ObjectProperty) TokenLiteral() string { return op.Token.Literal }
func (op *ObjectProperty) String() string       { return render(op) }

// SpreadElement is `...Argument` in calls, arrays and objects.
type SpreadElement struct {
	Token    lexer.Token
	Argument Expression
}

func (se *SpreadElement) expressionNode()      {}
func (se *SpreadElement) TokenLiteral() string { return se.Token.Literal }
func (se *SpreadElement) String() string       { return "..." + se.Argument.String() }

// Parameter is one function parameter.
type Parameter struct {
	Token          lexer.Token
	Target         Pattern
	Optional       bool
	Rest           bool
	TypeAnnotation TypeNode
	Default        Expression
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) String() string       { return render(p) }

// FunctionLiteral is a function expression, the body of a function
// declaration, or an object literal method.
type FunctionLiteral struct {
	Token      lexer.Token // FUNCTION, or the method name for object methods
	Async      bool
	Name       *Identifier // nil for anonymous function expressions
	Parameters []*Parameter
	ReturnType TypeNode
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FunctionLiteral) String() string       { return render(fl) }

// ArrowFunctionLiteral is `(params) => Body`. Body is a *BlockStatement or an Expression.
type ArrowFunctionLiteral struct {
	Token      lexer.Token
	Async      bool
	Parameters []*Parameter
	ReturnType TypeNode
	Body       Node
}

func (afl *ArrowFunctionLiteral) expressionNode()      {}
func (afl *ArrowFunctionLiteral) TokenLiteral() string { return afl.Token.Literal }
func (afl *ArrowFunctionLiteral) String() string       { return render(afl) }

// TaggedTemplateExpression is tag`quasi`. It is not a call.
type TaggedTemplateExpression struct {
	Token lexer.Token // the template token
	Tag   Expression
	Quasi *TemplateLiteral
}

func (te *TaggedTemplateExpression) expressionNode()      {}
func (te *TaggedTemplateExpression) TokenLiteral() string { return te.Token.Literal }
func (te *TaggedTemplateExpression) String() string       { return render(te) }

// CallExpression is `Function(Arguments)` or `Function?.(Arguments)`.
type CallExpression struct {
	Token     lexer.Token // '('
	Function  Expression
	Arguments []Expression
	Optional  bool
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string       { return render(ce) }

// NewExpression is `new Constructor(Arguments)`.
type NewExpression struct {
	Token       lexer.Token
	Constructor Expression
	Arguments   []Expression
}

func (ne *NewExpression) expressionNode()      {}
func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) String() string       { return render(ne) }

// MemberExpression is a property access: `o.p`, `o[expr]`, `o.#p`, or their
// optional-chaining forms. Property is an *Identifier for static access, a
// *PrivateName for private access, or any Expression when Computed.
type MemberExpression struct {
	Token    lexer.Token // '.', '[' or '?.'
	Object   Expression
	Property Expression
	Computed bool
	Optional bool
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string       { return render(me) }

// AssignmentExpression is `Left Operator Value` for = and every compound operator.
type AssignmentExpression struct {
	Token    lexer.Token
	Operator string
	Left     Expression
	Value    Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) String() string       { return render(ae) }

// InfixExpression is a binary or logical operation.
type InfixExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string       { return render(ie) }

// PrefixExpression is a unary operation: ! - + ~ typeof void delete.
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string       { return render(pe) }

// UpdateExpression is ++ or -- in prefix or postfix position.
type UpdateExpression struct {
	Token    lexer.Token
	Operator string
	Argument Expression
	Prefix   bool
}

func (ue *UpdateExpression) expressionNode()      {}
func (ue *UpdateExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UpdateExpression) String() string       { return render(ue) }

// TernaryExpression is `Condition ? Consequence : Alternative`.
type TernaryExpression struct {
	Token       lexer.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (te *TernaryExpression) expressionNode()      {}
func (te *TernaryExpression) TokenLiteral() string { return te.Token.Literal }
func (te *TernaryExpression) String() string       { return render(te) }

// SequenceExpression is `a, b, c`.
type SequenceExpression struct {
	Token       lexer.Token
	Expressions []Expression
}

func (se *SequenceExpression) expressionNode()      {}
func (se *SequenceExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SequenceExpression) String() string       { return render(se) }

// AwaitExpression is `await Argument`.
type AwaitExpression struct {
	Token    lexer.Token
	Argument Expression
}

func (ae *AwaitExpression) expressionNode()      {}
func (ae *AwaitExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AwaitExpression) String() string       { return render(ae) }

// AsExpression is `Expression as Type`, or `Expression satisfies Type`.
type AsExpression struct {
	Token      lexer.Token
	Expression Expression
	Type       TypeNode
	Satisfies  bool
}

func (ae *AsExpression) expressionNode()      {}
func (ae *AsExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AsExpression) String() string       { return render(ae) }

// NonNullExpression is the postfix assertion `Expression!`.
type NonNullExpression struct {
	Token      lexer.Token
	Expression Expression
}

func (ne *NonNullExpression) expressionNode()      {}
func (ne *NonNullExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NonNullExpression) String() string       { return render(ne) }

// --- Patterns ---

// ArrayPattern is `[a, , ...rest]` in binding position. Holes are nil.
type ArrayPattern struct {
	Token    lexer.Token
	Elements []Pattern
}

func (ap *ArrayPattern) patternNode()         {}
func (ap *ArrayPattern) TokenLiteral() string { return ap.Token.Literal }
func (ap *ArrayPattern) String() string       { return render(ap) }

// ObjectPattern is `{ a, b: c, ...rest }` in binding position.
type ObjectPattern struct {
	Token      lexer.Token
	Properties []*PatternProperty
	Rest       Pattern
}

func (op *ObjectPattern) patternNode()         {}
func (op *ObjectPattern) TokenLiteral() string { return op.Token.Literal }
func (op *ObjectPattern) String() string       { return render(op) }

// PatternProperty is one `key: target` entry of an object pattern.
type PatternProperty struct {
	Token     lexer.Token
	Key       Expression
	Computed  bool
	Value     Pattern
	Shorthand bool
}

func (pp *PatternProperty) TokenLiteral() string { return pp.Token.Literal }
func (pp *PatternProperty) String() string       { return render(pp) }

// AssignmentPattern is `Target = Default` inside a destructuring pattern.
type AssignmentPattern struct {
	Token   lexer.Token
	Target  Pattern
	Default Expression
}

func (ap *AssignmentPattern) patternNode()         {}
func (ap *AssignmentPattern) TokenLiteral() string { return ap.Token.Literal }
func (ap *AssignmentPattern) String() string       { return render(ap) }

// RestElement is `...Target` inside an array pattern.
type RestElement struct {
	Token  lexer.Token
	Target Pattern
}

func (re *RestElement) patternNode()         {}
func (re *RestElement) TokenLiteral() string { return re.Token.Literal }
func (re *RestElement) String() string       { return "..." + re.Target.String() }

// --- Interface members ---

// PropertySignature is `key?: Type` inside an interface or object type.
type PropertySignature struct {
	Token          lexer.Token
	Key            Expression // *Identifier, *StringLiteral, *NumberLiteral, or any expression when Computed
	Computed       bool
	Optional       bool
	Readonly       bool
	TypeAnnotation TypeNode // nil when unannotated
}

func (ps *PropertySignature) memberNode()          {}
func (ps *PropertySignature) TokenLiteral() string { return ps.Token.Literal }
func (ps *PropertySignature) String() string       { return render(ps) }

// MethodSignature is `key(params): Type` inside an interface or object type.
type MethodSignature struct {
	Token      lexer.Token
	Key        Expression
	Computed   bool
	Optional   bool
	Parameters []*Parameter
	ReturnType TypeNode
}

func (ms *MethodSignature) memberNode()          {}
func (ms *MethodSignature) TokenLiteral() string { return ms.Token.Literal }
func (ms *MethodSignature) String() string       { return render(ms) }

// IndexSignature is `[key: KeyType]: ValueType`.
type IndexSignature struct {
	Token     lexer.Token
	Readonly  bool
	Param     *Identifier
	KeyType   TypeNode
	ValueType TypeNode
}

func (is *IndexSignature) memberNode()          {}
func (is *IndexSignature) TokenLiteral() string { return is.Token.Literal }
func (is *IndexSignature) String() string       { return render(is) }

// --- Type nodes ---

// KeywordType is a built-in type keyword: number, string, boolean, void,
// any, unknown, never, null, undefined, object, symbol, bigint.
type KeywordType struct {
	Token lexer.Token
	Name  string
}

func (kt *KeywordType) typeNode()            {}
func (kt *KeywordType) TokenLiteral() string { return kt.Token.Literal }
func (kt *KeywordType) String() string       { return kt.Name }

// ArrayType is `ElementType[]`.
type ArrayType struct {
	Token       lexer.Token
	ElementType TypeNode
}

func (at *ArrayType) typeNode()            {}
func (at *ArrayType) TokenLiteral() string { return at.Token.Literal }
func (at *ArrayType) String() string       { return render(at) }

// UnionType is `A | B | C`.
type UnionType struct {
	Token lexer.Token
	Types []TypeNode
}

func (ut *UnionType) typeNode()            {}
func (ut *UnionType) TokenLiteral() string { return ut.Token.Literal }
func (ut *UnionType) String() string       { return render(ut) }

// IntersectionType is `A & B`.
type IntersectionType struct {
	Token lexer.Token
	Types []TypeNode
}

func (it *IntersectionType) typeNode()            {}
func (it *IntersectionType) TokenLiteral() string { return it.Token.Literal }
func (it *IntersectionType) String() string       { return render(it) }

// ParenthesizedType is `(Type)`.
type ParenthesizedType struct {
	Token lexer.Token
	Type  TypeNode
}

func (pt *ParenthesizedType) typeNode()            {}
func (pt *ParenthesizedType) TokenLiteral() string { return pt.Token.Literal }
func (pt *ParenthesizedType) String() string       { return render(pt) }

// TypeReference names a type. Name is an *Identifier or a *QualifiedName.
type TypeReference struct {
	Token         lexer.Token
	Name          Node
	TypeArguments []TypeNode
}

func (tr *TypeReference) typeNode()            {}
func (tr *TypeReference) TokenLiteral() string { return tr.Token.Literal }
func (tr *TypeReference) String() string       { return render(tr) }

// QualifiedName is a dotted type name such as `Scrap.Sprite`.
type QualifiedName struct {
	Token lexer.Token
	Left  Node // *Identifier or *QualifiedName
	Right *Identifier
}

func (qn *QualifiedName) TokenLiteral() string { return qn.Token.Literal }
func (qn *QualifiedName) String() string       { return qn.Left.String() + "." + qn.Right.String() }

// LiteralType is a string, number or boolean literal used as a type.
type LiteralType struct {
	Token   lexer.Token
	Literal Expression
}

func (lt *LiteralType) typeNode()            {}
func (lt *LiteralType) TokenLiteral() string { return lt.Token.Literal }
func (lt *LiteralType) String() string       { return render(lt) }

// TupleType is `[A, B]`.
type TupleType struct {
	Token    lexer.Token
	Elements []TypeNode
}

func (tt *TupleType) typeNode()            {}
func (tt *TupleType) TokenLiteral() string { return tt.Token.Literal }
func (tt *TupleType) String() string       { return render(tt) }

// FunctionType is `(params) => ReturnType`.
type FunctionType struct {
	Token      lexer.Token
	Parameters []*Parameter
	ReturnType TypeNode
}

func (ft *FunctionType) typeNode()            {}
func (ft *FunctionType) TokenLiteral() string { return ft.Token.Literal }
func (ft *FunctionType) String() string       { return render(ft) }

// ObjectType is an inline object type `{ a: number; b(): void }`.
type ObjectType struct {
	Token   lexer.Token
	Members []InterfaceMember
}

func (ot *ObjectType) typeNode()            {}
func (ot *ObjectType) TokenLiteral() string { return ot.Token.Literal }
func (ot *ObjectType) String() string       { return render(ot) }
