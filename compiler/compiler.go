// Package compiler implements the single-pass Pratt parser and bytecode
// emitter. Parsing and code generation are interleaved: no intermediate
// tree is ever built. Each token type maps to a parse rule describing its
// prefix behavior (how to start an expression when this token is seen),
// its infix behavior (how to continue one), and its precedence.
package compiler

import (
	"fmt"
	"strconv"

	"nilan/bytecode"
	"nilan/lexer"
	"nilan/token"
)

// Precedence levels, lowest to highest, per the grammar's binding rules.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment      // =
	PrecOr              // or
	PrecAnd             // and
	PrecEquality        // == !=
	PrecComparison      // < > <= >=
	PrecTerm            // + -
	PrecFactor          // * /
	PrecUnary           // ! -
	PrecCall            // . (
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

const (
	maxLocals    = 256
	maxUpvalues  = 256
	maxArgs      = 255
	maxConstants = bytecode.MaxConstants
	maxJump      = 1<<16 - 1
)

type local struct {
	name       token.Token
	depth      int
	isCaptured bool
}

type upvalueRef struct {
	index   byte
	isLocal bool
}

// functionType distinguishes the implicit top-level script context from a
// user-declared function, since a handful of rules (can you `return`?
// where does slot 0 come from?) differ between them.
type functionType int

const (
	typeScript functionType = iota
	typeFunction
)

// funcState is one function-compilation context: the locals currently in
// scope, the upvalues this function has captured so far, and the Function
// object code is being emitted into. Nested function declarations push a
// new funcState and chain it to the enclosing one via enclosing.
type funcState struct {
	enclosing *funcState

	function *bytecode.ObjFunction
	funcType functionType

	locals        []local
	upvaluesField []upvalueRef
	scopeDepth    int
}

func (fs *funcState) upvalues() []upvalueRef { return fs.upvaluesField }

// Compiler drives the Pratt parser over a token stream pulled lazily from
// a Lexer, emitting bytecode into the current funcState's Function as it
// goes.
type Compiler struct {
	lex  *lexer.Lexer
	heap *bytecode.Heap

	current *funcState

	previous token.Token
	curTok   token.Token

	hadError  bool
	panicMode bool
	errors    []error

	rules map[token.TokenType]parseRule
}

// Compile parses source into a top-level Function ready to hand to the VM.
// On any compile error, the returned Function is nil and errs is non-empty
// — per the error model, the VM is never invoked over a partially compiled
// program.
func Compile(source string, heap *bytecode.Heap) (fn *bytecode.ObjFunction, errs []error) {
	c := &Compiler{
		lex:  lexer.New(source),
		heap: heap,
	}
	c.rules = c.buildRules()
	c.pushFuncState(typeScript, "")

	// A DeveloperError means the parse-rule table called literal/unary/
	// binary for a token type it was never wired to dispatch — a bug in
	// the compiler itself, not in the program being compiled.
	defer func() {
		if r := recover(); r != nil {
			de, ok := r.(DeveloperError)
			if !ok {
				panic(r)
			}
			fn = nil
			errs = append(c.errors, de)
		}
	}()

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	fn = c.endFuncState()

	if c.hadError {
		return nil, c.errors
	}
	return fn, nil
}

func (c *Compiler) pushFuncState(ft functionType, name string) {
	fn := c.heap.NewFunction(nil)
	if name != "" {
		fn.Name = c.heap.InternString(name, nil)
	}
	c.heap.PushCompilerRoot(fn)

	state := &funcState{
		enclosing: c.current,
		function:  fn,
		funcType:  ft,
	}
	// Slot 0 is reserved: for a function it is the callee itself (never
	// directly nameable by source), for the script it is simply unused.
	state.locals = append(state.locals, local{name: token.Token{Lexeme: ""}, depth: 0})
	c.current = state
}

// endFuncState closes out the current funcState, emitting the implicit
// `nil; return;` every function gets if control falls off its end, and
// returns to compiling the enclosing function (nil if this was the
// script).
func (c *Compiler) endFuncState() *bytecode.ObjFunction {
	c.emitReturn()
	fn := c.current.function
	c.heap.PopCompilerRoot()
	c.current = c.current.enclosing
	return fn
}

func (c *Compiler) chunk() *bytecode.Chunk {
	return &c.current.function.Chunk
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.curTok
	for {
		c.curTok = c.lex.NextToken()
		if c.curTok.Type != token.ERROR {
			break
		}
		c.errorAtCurrent(c.curTok.Lexeme)
	}
}

func (c *Compiler) check(t token.TokenType) bool {
	return c.curTok.Type == t
}

func (c *Compiler) match(t token.TokenType) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.TokenType, message string) {
	if c.curTok.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting ----------------------------------------------------

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.curTok, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.previous, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errors = append(c.errors, SemanticError{
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		AtEnd:   tok.Type == token.EOF,
		Message: message,
	})
}

// synchronize discards tokens until it reaches what looks like a
// statement boundary, so a single error doesn't cascade into a wall of
// spurious follow-on errors.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.curTok.Type != token.EOF {
		if c.previous.Type == token.SEMICOLON {
			return
		}
		switch c.curTok.Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- emission helpers ---------------------------------------------------

func (c *Compiler) emitByte(b byte) { c.chunk().WriteByte(b, c.previous.Line) }
func (c *Compiler) emitOp(op bytecode.OpCode) {
	c.chunk().WriteOp(op, c.previous.Line)
}
func (c *Compiler) emitOpByte(op bytecode.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

// emitJump emits op followed by a two-byte placeholder, returning the
// offset of the placeholder for a later patchJump call.
func (c *Compiler) emitJump(op bytecode.OpCode) int {
	c.emitOp(op)
	pos := c.chunk().WriteShort(0xFFFF, c.previous.Line)
	return pos
}

func (c *Compiler) patchJump(pos int) {
	jump := len(c.chunk().Code) - pos - 2
	if jump > maxJump {
		c.error("Too much code to jump over.")
		return
	}
	c.chunk().PatchJump(pos)
}

// emitLoop emits Loop with an operand that jumps execution back to start.
func (c *Compiler) emitLoop(start int) {
	c.emitOp(bytecode.OpLoop)
	offset := len(c.chunk().Code) - start + 2
	if offset > maxJump {
		c.error("Loop body too large.")
	}
	c.chunk().WriteShort(uint16(offset), c.previous.Line)
}

func (c *Compiler) emitConstant(v bytecode.Value) {
	c.emitOpByte(bytecode.OpConstant, c.makeConstant(v))
}

func (c *Compiler) makeConstant(v bytecode.Value) byte {
	idx := c.chunk().AddConstant(v)
	if idx > maxConstants-1 {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitReturn() {
	c.emitOp(bytecode.OpNil)
	c.emitOp(bytecode.OpReturn)
}

// --- declarations and statements ---------------------------------------

func (c *Compiler) declaration() {
	switch {
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.LCUR):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RCUR) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RCUR, "Expect '}' after block.")
}

func (c *Compiler) beginScope() { c.current.scopeDepth++ }

func (c *Compiler) endScope() {
	c.current.scopeDepth--
	locals := c.current.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.current.scopeDepth {
		if locals[len(locals)-1].isCaptured {
			c.emitOp(bytecode.OpCloseUpvalue)
		} else {
			c.emitOp(bytecode.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	c.current.locals = locals
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOp(bytecode.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) returnStatement() {
	if c.current.funcType == typeScript {
		c.error("Cannot return from top-level code.")
	}
	if c.match(token.SEMICOLON) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after return value.")
	c.emitOp(bytecode.OpReturn)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPA, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPA, "Expect ')' after condition.")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk().Code)
	c.consume(token.LPA, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPA, "Expect ')' after condition.")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

// forStatement de-sugars `for (init; cond; incr) body` at emit time into
// the initializer followed by a while-shaped loop with the increment
// spliced in right before the jump back to the condition.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPA, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk().Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.match(token.RPA) {
		bodyJump := c.emitJump(bytecode.OpJump)
		incrementStart := len(c.chunk().Code)
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(token.RPA, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}
	c.endScope()
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

func (c *Compiler) function(ft functionType) {
	name := c.previous.Lexeme
	c.pushFuncState(ft, name)
	c.beginScope()

	c.consume(token.LPA, "Expect '(' after function name.")
	if !c.check(token.RPA) {
		for {
			c.current.function.Arity++
			if c.current.function.Arity > maxArgs {
				c.errorAtCurrent("Cannot have more than 255 parameters.")
			}
			constant := c.parseVariable("Expect parameter name.")
			c.defineVariable(constant)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPA, "Expect ')' after parameters.")
	c.consume(token.LCUR, "Expect '{' before function body.")
	c.block()

	upvalues := c.current.upvalues()
	fn := c.endFuncState()

	c.emitOpByte(bytecode.OpClosure, c.makeConstant(bytecode.FromObject(fn)))
	for _, uv := range upvalues {
		isLocal := byte(0)
		if uv.isLocal {
			isLocal = 1
		}
		c.emitByte(isLocal)
		c.emitByte(uv.index)
	}
}

// --- variables -----------------------------------------------------

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.ASSIGN) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

// parseVariable consumes an identifier and either declares it as a local
// (returning 0, a don't-care value for defineVariable) or, at global
// scope, interns its name and returns the resulting constant index.
func (c *Compiler) parseVariable(message string) byte {
	c.consume(token.IDENTIFIER, message)

	c.declareVariable()
	if c.current.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(bytecode.FromObject(c.heap.InternString(name.Lexeme, nil)))
}

func (c *Compiler) declareVariable() {
	if c.current.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := len(c.current.locals) - 1; i >= 0; i-- {
		l := c.current.locals[i]
		if l.depth != -1 && l.depth < c.current.scopeDepth {
			break
		}
		if l.name.Lexeme == name.Lexeme {
			c.error("Variable with this name already declared in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name token.Token) {
	if len(c.current.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.current.locals = append(c.current.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	if c.current.scopeDepth == 0 {
		return
	}
	c.current.locals[len(c.current.locals)-1].depth = c.current.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.current.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(bytecode.OpDefineGlobal, global)
}

// resolveLocal returns the slot index of name among the locals of fs, or
// -1 if not found there.
func resolveLocal(fs *funcState, name token.Token) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name.Lexeme == name.Lexeme {
			return i
		}
	}
	return -1
}

// resolveLocalForRead is resolveLocal plus the "own initializer" check: a
// local whose depth is still -1 hasn't finished initializing (its
// declaring statement is still being compiled), so reading it now would
// read stack garbage.
func (c *Compiler) resolveLocalForRead(fs *funcState, name token.Token) int {
	slot := resolveLocal(fs, name)
	if slot != -1 && fs.locals[slot].depth == -1 {
		c.error("Cannot read local variable in its own initializer.")
		return -1
	}
	return slot
}

// resolveUpvalue recursively searches enclosing functions for name,
// marking the captured local as such and threading an upvalue-of-upvalue
// chain through any intermediate functions, per the capture algorithm.
func (c *Compiler) resolveUpvalue(fs *funcState, name token.Token) int {
	if fs.enclosing == nil {
		return -1
	}
	if localIdx := resolveLocal(fs.enclosing, name); localIdx != -1 {
		fs.enclosing.locals[localIdx].isCaptured = true
		return c.addUpvalue(fs, byte(localIdx), true)
	}
	if up := c.resolveUpvalue(fs.enclosing, name); up != -1 {
		return c.addUpvalue(fs, byte(up), false)
	}
	return -1
}

func (c *Compiler) addUpvalue(fs *funcState, index byte, isLocal bool) int {
	for i, uv := range fs.upvaluesField {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fs.upvaluesField) >= maxUpvalues {
		c.error("Too many closure variables in function.")
		return 0
	}
	fs.upvaluesField = append(fs.upvaluesField, upvalueRef{index: index, isLocal: isLocal})
	fs.function.UpvalueCount = len(fs.upvaluesField)
	return len(fs.upvaluesField) - 1
}

// --- expressions --------------------------------------------------------

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	rule := c.getRule(c.previous.Type)
	if rule.prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	rule.prefix(c, canAssign)

	for prec <= c.getRule(c.curTok.Type).precedence {
		c.advance()
		infix := c.getRule(c.previous.Type).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.ASSIGN) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) getRule(t token.TokenType) parseRule {
	if r, ok := c.rules[t]; ok {
		return r
	}
	return parseRule{}
}

func number(c *Compiler, _ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(bytecode.Number(n))
}

func stringLiteral(c *Compiler, _ bool) {
	// The lexer already excludes the surrounding quotes from the lexeme.
	content := c.previous.Lexeme
	c.emitConstant(bytecode.FromObject(c.heap.InternString(content, nil)))
}

func literal(c *Compiler, _ bool) {
	switch c.previous.Type {
	case token.NIL:
		c.emitOp(bytecode.OpNil)
	case token.TRUE:
		c.emitOp(bytecode.OpTrue)
	case token.FALSE:
		c.emitOp(bytecode.OpFalse)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("literal() called for non-literal token %v", c.previous.Type)})
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPA, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	opType := c.previous.Type
	c.parsePrecedence(PrecUnary)
	switch opType {
	case token.SUB:
		c.emitOp(bytecode.OpNegate)
	case token.BANG:
		c.emitOp(bytecode.OpNot)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unary() called for non-unary-operator token %v", opType)})
	}
}

func binary(c *Compiler, _ bool) {
	opType := c.previous.Type
	rule := c.getRule(opType)
	c.parsePrecedence(rule.precedence + 1)

	switch opType {
	case token.ADD:
		c.emitOp(bytecode.OpAdd)
	case token.SUB:
		c.emitOp(bytecode.OpSubtract)
	case token.MULT:
		c.emitOp(bytecode.OpMultiply)
	case token.DIV:
		c.emitOp(bytecode.OpDivide)
	case token.EQUAL_EQUAL:
		c.emitOp(bytecode.OpEqual)
	case token.NOT_EQUAL:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.LESS:
		c.emitOp(bytecode.OpLess)
	case token.LARGER:
		c.emitOp(bytecode.OpGreater)
	case token.LESS_EQUAL:
		c.emitOp(bytecode.OpGreater)
		c.emitOp(bytecode.OpNot)
	case token.LARGER_EQUAL:
		c.emitOp(bytecode.OpLess)
		c.emitOp(bytecode.OpNot)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("binary() called for non-binary-operator token %v", opType)})
	}
}

// and_/or_ implement short-circuit evaluation: JumpIfFalse deliberately
// leaves the condition on the stack, so the second operand is only
// evaluated (and only its value kept) when short-circuiting doesn't apply.
func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)

	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)

	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp bytecode.OpCode
	var arg int

	if slot := c.resolveLocalForRead(c.current, name); slot != -1 {
		getOp, setOp, arg = bytecode.OpGetLocal, bytecode.OpSetLocal, slot
	} else if slot := c.resolveUpvalue(c.current, name); slot != -1 {
		getOp, setOp, arg = bytecode.OpGetUpvalue, bytecode.OpSetUpvalue, slot
	} else {
		getOp, setOp, arg = bytecode.OpGetGlobal, bytecode.OpSetGlobal, int(c.identifierConstant(name))
	}

	if canAssign && c.match(token.ASSIGN) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

func call(c *Compiler, _ bool) {
	argCount := c.argumentList()
	c.emitOpByte(bytecode.OpCall, argCount)
}

func (c *Compiler) argumentList() byte {
	var count int
	if !c.check(token.RPA) {
		for {
			if count == maxArgs {
				c.errorAtCurrent("Cannot have more than 255 arguments.")
			}
			c.expression()
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPA, "Expect ')' after arguments.")
	return byte(count)
}

// buildRules constructs the parse-rule table once per Compiler. It's built
// as a method rather than a package-level map literal because the parse
// functions reach the table again through getRule, which a package-level
// variable would turn into an initialization cycle — keeping it here keeps
// the grammar readable as one table.
func (c *Compiler) buildRules() map[token.TokenType]parseRule {
	return map[token.TokenType]parseRule{
		token.LPA:          {prefix: grouping, infix: call, precedence: PrecCall},
		token.RPA:          {},
		token.LCUR:         {},
		token.RCUR:         {},
		token.COMMA:        {},
		token.DOT:          {},
		token.SEMICOLON:    {},
		token.SUB:          {prefix: unary, infix: binary, precedence: PrecTerm},
		token.ADD:          {infix: binary, precedence: PrecTerm},
		token.DIV:          {infix: binary, precedence: PrecFactor},
		token.MULT:         {infix: binary, precedence: PrecFactor},
		token.BANG:         {prefix: unary},
		token.NOT_EQUAL:    {infix: binary, precedence: PrecEquality},
		token.ASSIGN:       {},
		token.EQUAL_EQUAL:  {infix: binary, precedence: PrecEquality},
		token.LARGER:       {infix: binary, precedence: PrecComparison},
		token.LARGER_EQUAL: {infix: binary, precedence: PrecComparison},
		token.LESS:         {infix: binary, precedence: PrecComparison},
		token.LESS_EQUAL:   {infix: binary, precedence: PrecComparison},
		token.IDENTIFIER:   {prefix: variable},
		token.STRING:       {prefix: stringLiteral},
		token.NUMBER:       {prefix: number},
		token.AND:          {infix: and_, precedence: PrecAnd},
		token.OR:           {infix: or_, precedence: PrecOr},
		token.TRUE:         {prefix: literal},
		token.FALSE:        {prefix: literal},
		token.NIL:          {prefix: literal},
	}
}
