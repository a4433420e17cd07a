// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

// A Scanner tokenizes JSON input according to a Config. A Scanner is safe
// for concurrent use by multiple goroutines; each scan keeps its own state.
type Scanner struct {
	cfg   Config
	depth int
}

// NewScanner constructs a new Scanner with the given configuration.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg, depth: cfg.maxDepth()}
}

// Config returns the configuration of s.
func (s *Scanner) Config() Config { return s.cfg }

// Scan tokenizes the complete input of src and returns its tokens in
// pre-order. In case of a syntax error, the returned error has concrete type
// [*SyntaxError].
func (s *Scanner) Scan(src *Source) (*TokenList, error) {
	out := &listSink{toks: NewTokenList(src.Len()/4 + 1)}
	if err := s.run(src, out); err != nil {
		return nil, err
	}
	return out.toks, nil
}

// ScanBytes is a convenience wrapper for s.Scan(NewSource(data)).
func (s *Scanner) ScanBytes(data []byte) (*TokenList, error) { return s.Scan(NewSource(data)) }

// Scan tokenizes data using the default configuration.
func Scan(data []byte) (*TokenList, error) {
	return NewScanner(DefaultConfig()).Scan(NewSource(data))
}

// A parseFunc consumes one value beginning at the cursor.
type parseFunc func(*scan)

// valueTable is the dispatch table of value parsers, indexed by the first
// byte of the value.
var valueTable [256]parseFunc

func init() {
	t := &valueTable
	t['{'] = (*scan).parseObject
	t['['] = (*scan).parseArray
	t['"'] = (*scan).parseString
	t['t'] = (*scan).parseTrue
	t['f'] = (*scan).parseFalse
	t['n'] = (*scan).parseNull
	for c := '0'; c <= '9'; c++ {
		t[c] = (*scan).parseNumber
	}
	t['-'] = (*scan).parseNumber

	// In strict mode, a leading plus is dispatched as a number so that the
	// number scanner reports a specific error for it.
	t['+'] = (*scan).parseNumber
}

// scan is the state of a single tokenization.
type scan struct {
	*Scanner
	src   *Source
	out   sink
	level int
}

func (s *Scanner) run(src *Source, out sink) (err error) {
	defer recoverScanError(&err)

	p := &scan{Scanner: s, src: src, out: out}
	src.Reset()
	src.Next()
	ch := p.skip()
	if ch == ETX {
		p.fail("Scanning JSON", "no JSON value found")
	}
	p.parseValue(ch, "Scanning JSON")
	if s.cfg.Strict {
		if s.cfg.Comments() {
			p.skip()
		}
		p.check(src.CheckForJunk())
	}
	return nil
}

func recoverScanError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case sinkError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// parseValue parses a value whose first byte ch is at the cursor. On return
// the cursor is on the first byte after the value.
func (p *scan) parseValue(ch byte, op string) {
	f := valueTable[ch]
	if f == nil {
		if ch == ETX {
			p.fail(op, "unexpected end of input")
		}
		p.fail(op, "unexpected character")
	}
	f(p)
}

func (p *scan) parseObject() {
	start := p.src.Index()
	p.enter()
	h := p.out.begin(Object, start)

	ch := p.nextSkip()
	if ch == '}' {
		p.src.Next()
		p.out.end(h, Object, start, p.src.Index())
		p.leave()
		return
	}
	for {
		if done := p.parseMember(ch); done {
			break
		}
		// The cursor is on a comma.
		comma := p.src.Index()
		ch = p.nextSkip()
		if ch == '}' {
			if p.cfg.Strict {
				p.failAt("Parsing Object Key", comma, "trailing comma in object")
			}
			break
		}
	}
	p.src.Next()
	p.out.end(h, Object, start, p.src.Index())
	p.leave()
}

// parseMember parses one "key": value member starting at the key. On return
// the cursor is on the "," or "}" following the value, and done reports
// whether it was a "}".
func (p *scan) parseMember(ch byte) (done bool) {
	const keyOp = "Parsing Object Key"
	kpos := p.src.Index()
	hk := p.out.begin(AttrKey, kpos)
	switch {
	case ch == '"':
		if p.cfg.KeysEncoded {
			end, esc, err := p.src.FindEndOfEncodedString()
			p.check(err)
			p.out.scalar(Token{Start: kpos + 1, End: end, Kind: String, Escaped: esc})
		} else {
			end, err := p.src.FindEndString()
			p.check(err)
			p.out.scalar(Token{Start: kpos + 1, End: end, Kind: String})
		}
	case p.cfg.BareKeys && isNameByte(ch) && !isDigit(ch):
		end := kpos
		for isNameByte(p.src.At(end)) {
			end++
		}
		p.src.pos = end
		p.out.scalar(Token{Start: kpos, End: end, Kind: String})
	case ch == ETX:
		p.fail(keyOp, "unexpected end of input")
	default:
		p.fail(keyOp, "expected a string key")
	}

	if ch := p.skip(); ch != ':' {
		p.fail(keyOp, "expected ':' after key")
	}
	p.out.end(hk, AttrKey, kpos, p.src.Index()+1)

	ch = p.nextSkip()
	vpos := p.src.Index()
	hv := p.out.begin(AttrValue, vpos)
	p.parseValue(ch, "Parsing Value")

	switch p.src.CurrentSafe() {
	case ',':
	case '}':
		done = true
	default:
		if p.cfg.Comments() {
			switch p.skip() {
			case ',':
			case '}':
				done = true
			default:
				p.fail("Parsing Value", "expected ',' or '}'")
			}
		} else {
			var err error
			done, err = p.src.FindObjectEndOrAttributeSep()
			p.check(err)
		}
	}
	p.out.end(hv, AttrValue, vpos, p.src.Index())
	return done
}

func (p *scan) parseArray() {
	const op = "Parsing Array Item"
	start := p.src.Index()
	p.enter()
	h := p.out.begin(Array, start)

	ch := p.nextSkip()
	for ch != ']' {
		p.parseValue(ch, op)

		var done bool
		switch p.src.CurrentSafe() {
		case ',':
		case ']':
			done = true
		default:
			if p.cfg.Comments() {
				switch p.skip() {
				case ',':
				case ']':
					done = true
				default:
					p.fail(op, "expected ',' or ']'")
				}
			} else {
				var err error
				done, err = p.src.FindCommaOrEnd()
				p.check(err)
			}
		}
		if done {
			break
		}
		comma := p.src.Index()
		ch = p.nextSkip()
		if ch == ']' && p.cfg.Strict {
			p.failAt(op, comma, "trailing comma in array")
		}
	}
	p.src.Next()
	p.out.end(h, Array, start, p.src.Index())
	p.leave()
}

func (p *scan) parseString() {
	start := p.src.Index()
	var end int
	var esc bool
	var err error
	if p.cfg.Strict {
		end, esc, err = p.src.FindEndOfEncodedString()
	} else {
		end, esc, err = p.src.FindEndOfEncodedStringFast()
	}
	p.check(err)
	p.out.scalar(Token{Start: start + 1, End: end, Kind: String, Escaped: esc})
}

func (p *scan) parseNumber() {
	start := p.src.Index()
	var end int
	var isFloat bool
	var err error
	if p.cfg.Strict {
		end, isFloat, err = p.src.FindEndOfNumber()
	} else {
		end, isFloat, err = p.src.FindEndOfNumberFast()
	}
	p.check(err)
	kind := Int
	if isFloat {
		kind = Float
	}
	p.out.scalar(Token{Start: start, End: end, Kind: kind})
}

func (p *scan) parseTrue()  { p.parseLiteral(Bool, p.src.FindTrueEnd) }
func (p *scan) parseFalse() { p.parseLiteral(Bool, p.src.FindFalseEnd) }
func (p *scan) parseNull()  { p.parseLiteral(Null, p.src.FindNullEnd) }

func (p *scan) parseLiteral(kind Kind, find func() (int, error)) {
	start := p.src.Index()
	end, err := find()
	p.check(err)
	p.out.scalar(Token{Start: start, End: end, Kind: kind})
}

// nextSkip advances past the current byte and skips whitespace and any
// enabled comments, returning the next significant byte.
func (p *scan) nextSkip() byte {
	p.src.Next()
	return p.skip()
}

// skip skips whitespace and any enabled comments at the cursor, returning
// the next significant byte.
func (p *scan) skip() byte {
	for {
		ch := p.src.SkipSpace()
		if !p.skipComment(ch) {
			return ch
		}
	}
}

// skipComment consumes a comment beginning with ch at the cursor, if comments
// of that kind are enabled. It reports whether a comment was consumed.
func (p *scan) skipComment(ch byte) bool {
	const op = "Parsing Comment"
	switch {
	case ch == '#' && p.cfg.HashComments:
		p.skipLine()
		return true
	case ch != '/':
		return false
	}
	switch next := p.src.At(p.src.Index() + 1); {
	case next == '/' && p.cfg.SlashComments:
		p.skipLine()
	case next == '*' && p.cfg.BlockComments:
		start := p.src.Index()
		p.src.Next()
		for {
			c := p.src.Next()
			if c == ETX {
				p.failAt(op, start, "unterminated block comment")
			} else if c == '*' && p.src.At(p.src.Index()+1) == '/' {
				p.src.Next()
				p.src.Next()
				break
			}
		}
	default:
		return false
	}
	return true
}

// skipLine advances the cursor to the first byte after the next newline, or
// to the end of input.
func (p *scan) skipLine() {
	for {
		if c := p.src.Next(); c == '\n' || c == ETX {
			break
		}
	}
	p.src.Next()
}

func (p *scan) enter() {
	p.level++
	if p.depth > 0 && p.level > p.depth {
		p.check(p.src.errorw("Checking Nesting Depth", p.src.Index(), ErrDepthLimit,
			"nesting depth exceeds %d", p.depth))
	}
}

func (p *scan) leave() { p.level-- }

func (p *scan) fail(op, msg string) { p.failAt(op, p.src.Index(), msg) }

func (p *scan) failAt(op string, at int, msg string) {
	panic(p.src.Errorf(op, at, "%s", msg))
}

func (p *scan) check(err error) {
	if err != nil {
		panic(err)
	}
}
