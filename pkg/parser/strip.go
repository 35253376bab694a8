package parser

// StripTypes removes all type-level syntax from a program in place:
// interfaces and type aliases are dropped, annotations are cleared, and
// `as`, `satisfies` and non-null assertions are unwrapped. The result
// prints as plain JavaScript.
func StripTypes(program *Program) {
	if program == nil {
		return
	}
	program.Statements = stripStatements(program.Statements)
}

func stripStatements(list []Statement) []Statement {
	out := list[:0]
	for _, stmt := range list {
		if s := stripStatement(stmt); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// stripBody strips a statement in a position that requires one.
func stripBody(stmt Statement) Statement {
	if s := stripStatement(stmt); s != nil {
		return s
	}
	return &EmptyStatement{}
}

func stripStatement(stmt Statement) Statement {
	switch s := stmt.(type) {
	case *InterfaceDeclaration, *TypeAliasStatement:
		return nil
	case *BlockStatement:
		stripBlock(s)
	case *ExpressionStatement:
		s.Expression = stripExpression(s.Expression)
	case *VarDeclaration:
		stripVarDeclaration(s)
	case *FunctionDeclaration:
		stripFunction(s.Function)
	case *IfStatement:
		s.Condition = stripExpression(s.Condition)
		s.Consequence = stripBody(s.Consequence)
		if s.Alternative != nil {
			s.Alternative = stripBody(s.Alternative)
		}
	case *ForStatement:
		s.Init = stripForLeft(s.Init)
		s.Condition = stripExpression(s.Condition)
		s.Update = stripExpression(s.Update)
		s.Body = stripBody(s.Body)
	case *ForInStatement:
		s.Left = stripForLeft(s.Left)
		s.Right = stripExpression(s.Right)
		s.Body = stripBody(s.Body)
	case *ForOfStatement:
		s.Left = stripForLeft(s.Left)
		s.Right = stripExpression(s.Right)
		s.Body = stripBody(s.Body)
	case *WhileStatement:
		s.Condition = stripExpression(s.Condition)
		s.Body = stripBody(s.Body)
	case *DoWhileStatement:
		s.Body = stripBody(s.Body)
		s.Condition = stripExpression(s.Condition)
	case *ReturnStatement:
		s.ReturnValue = stripExpression(s.ReturnValue)
	case *ThrowStatement:
		s.Value = stripExpression(s.Value)
	case *TryStatement:
		stripBlock(s.Block)
		if s.Handler != nil {
			s.Handler.Param = stripPattern(s.Handler.Param)
			s.Handler.ParamType = nil
			stripBlock(s.Handler.Body)
		}
		stripBlock(s.Finalizer)
	case *SwitchStatement:
		s.Discriminant = stripExpression(s.Discriminant)
		for _, c := range s.Cases {
			c.Test = stripExpression(c.Test)
			c.Consequent = stripStatements(c.Consequent)
		}
	case *LabeledStatement:
		s.Body = stripBody(s.Body)
	}
	return stmt
}

func stripBlock(block *BlockStatement) {
	if block != nil {
		block.Statements = stripStatements(block.Statements)
	}
}

func stripVarDeclaration(decl *VarDeclaration) {
	for _, d := range decl.Declarators {
		d.Target = stripPattern(d.Target)
		d.Definite = false
		d.TypeAnnotation = nil
		d.Value = stripExpression(d.Value)
	}
}

func stripForLeft(n Node) Node {
	switch l := n.(type) {
	case *VarDeclaration:
		stripVarDeclaration(l)
	case Expression:
		return stripExpression(l)
	}
	return n
}

func stripFunction(fn *FunctionLiteral) {
	if fn == nil {
		return
	}
	stripParameters(fn.Parameters)
	fn.ReturnType = nil
	stripBlock(fn.Body)
}

func stripParameters(params []*Parameter) {
	for _, p := range params {
		p.Target = stripPattern(p.Target)
		p.Optional = false
		p.TypeAnnotation = nil
		p.Default = stripExpression(p.Default)
	}
}

func stripPattern(p Pattern) Pattern {
	switch x := p.(type) {
	case *ArrayPattern:
		for i, el := range x.Elements {
			if el != nil {
				x.Elements[i] = stripPattern(el)
			}
		}
	case *ObjectPattern:
		for _, prop := range x.Properties {
			if prop.Computed {
				prop.Key = stripExpression(prop.Key)
			}
			prop.Value = stripPattern(prop.Value)
		}
		if x.Rest != nil {
			x.Rest = stripPattern(x.Rest)
		}
	case *AssignmentPattern:
		x.Target = stripPattern(x.Target)
		x.Default = stripExpression(x.Default)
	case *RestElement:
		x.Target = stripPattern(x.Target)
	}
	return p
}

func stripExpression(expr Expression) Expression {
	switch x := expr.(type) {
	case nil:
		return nil
	case *AsExpression:
		return stripExpression(x.Expression)
	case *NonNullExpression:
		return stripExpression(x.Expression)
	case *TemplateLiteral:
		stripExpressions(x.Expressions)
	case *ArrayLiteral:
		stripExpressions(x.Elements)
	case *ObjectLiteral:
		for _, p := range x.Properties {
			if p.Computed {
				p.Key = stripExpression(p.Key)
			}
			p.Value = stripExpression(p.Value)
		}
	case *SpreadElement:
		x.Argument = stripExpression(x.Argument)
	case *FunctionLiteral:
		stripFunction(x)
	case *ArrowFunctionLiteral:
		stripParameters(x.Parameters)
		x.ReturnType = nil
		switch body := x.Body.(type) {
		case *BlockStatement:
			stripBlock(body)
		case Expression:
			x.Body = stripExpression(body)
		}
	case *CallExpression:
		x.Function = stripExpression(x.Function)
		stripExpressions(x.Arguments)
	case *TaggedTemplateExpression:
		x.Tag = stripExpression(x.Tag)
		if x.Quasi != nil {
			stripExpressions(x.Quasi.Expressions)
		}
	case *NewExpression:
		x.Constructor = stripExpression(x.Constructor)
		stripExpressions(x.Arguments)
	case *MemberExpression:
		x.Object = stripExpression(x.Object)
		if x.Computed {
			x.Property = stripExpression(x.Property)
		}
	case *AssignmentExpression:
		x.Left = stripExpression(x.Left)
		x.Value = stripExpression(x.Value)
	case *InfixExpression:
		x.Left = stripExpression(x.Left)
		x.Right = stripExpression(x.Right)
	case *PrefixExpression:
		x.Right = stripExpression(x.Right)
	case *UpdateExpression:
		x.Argument = stripExpression(x.Argument)
	case *TernaryExpression:
		x.Condition = stripExpression(x.Condition)
		x.Consequence = stripExpression(x.Consequence)
		x.Alternative = stripExpression(x.Alternative)
	case *SequenceExpression:
		stripExpressions(x.Expressions)
	case *AwaitExpression:
		x.Argument = stripExpression(x.Argument)
	}
	return expr
}

func stripExpressions(list []Expression) {
	for i, e := range list {
		if e != nil {
			list[i] = stripExpression(e)
		}
	}
}
