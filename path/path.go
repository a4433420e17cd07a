// Package path implements a small path expression language for addressing a
// single value inside a JSON document.
package path

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/node"
	"go4.org/mem"
)

/*
Grammar:

	path    = { segment }
	segment = ident
	segment = "." ident
	segment = "[" index "]"
	segment = "[" "'" qtext "'" "]"
	ident   = RE `[A-Za-z_][A-Za-z_0-9]*`
	index   = RE `[0-9]+`
	qtext   = RE `([^'\\]|\\.)*`

An ident or qtext denotes an object key, an index denotes an array offset.
Segments follow one another with no separator before a "[", for example:

	key1.key2[3]['key with spaces'].key4

Backslash escapes in a qtext are decoded as in JSON strings, and \' denotes
a single quotation mark.
*/

const parseOp = "Parsing Path"

// A Path is a parsed path expression.
type Path struct {
	expr  string
	toks  *jindex.TokenList
	elems []Element
}

// An Element is a single segment of a path, either a *Key or an *Index.
type Element interface {
	node.Node

	// Label returns the decoded key or the decimal index of the segment.
	Label() string
}

// Parse parses expr as a path expression. In case of a syntax error, the
// error has concrete type *jindex.SyntaxError.
func Parse(expr string) (*Path, error) {
	src := jindex.NewSourceString(expr)
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &Path{expr: expr, toks: toks, elems: make([]Element, toks.Len())}
	for i, tok := range toks.Tokens() {
		e := elem{src: src, tok: tok}
		if tok.Kind == jindex.PathIndex {
			p.elems[i] = &Index{e}
		} else {
			p.elems[i] = &Key{e}
		}
	}
	return p, nil
}

// MustParse parses expr as a path expression, and panics if it is invalid.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression from which p was parsed.
func (p *Path) String() string { return p.expr }

// Len reports the number of segments in p.
func (p *Path) Len() int { return len(p.elems) }

// Elements returns the segments of p. The caller must not modify the slice.
func (p *Path) Elements() []Element { return p.elems }

// Tokens returns the token list of p.
func (p *Path) Tokens() *jindex.TokenList { return p.toks }

// scan tokenizes the complete input of src as a path.
func scan(src *jindex.Source) (*jindex.TokenList, error) {
	toks := jindex.NewTokenList(4)
	ch := src.Next()
	for ch != jindex.ETX {
		switch {
		case ch == '[':
			switch ch = src.Next(); {
			case isDigit(ch):
				start := src.Index()
				for isDigit(ch) {
					ch = src.Next()
				}
				toks.Append(jindex.Token{Start: start, End: src.Index(), Kind: jindex.PathIndex})

			case ch == '\'':
				start := src.Index() + 1
				var esc bool
				for {
					ch = src.Next()
					if ch == '\\' {
						esc = true
						ch = src.Next()
					} else if ch == '\'' {
						break
					}
					if ch == jindex.ETX {
						return nil, src.Errorf(parseOp, src.Index(), "unterminated quoted key")
					}
				}
				toks.Append(jindex.Token{Start: start, End: src.Index(), Kind: jindex.PathKey, Escaped: esc})
				ch = src.Next()

			default:
				return nil, src.Errorf(parseOp, src.Index(), "expected an index or a quoted key")
			}
			if ch != ']' {
				return nil, src.Errorf(parseOp, src.Index(), "expected ']'")
			}
			ch = src.Next()

		case ch == '.':
			if ch = src.Next(); !isIdentStart(ch) {
				return nil, src.Errorf(parseOp, src.Index(), "expected a key after '.'")
			}
			ch = scanIdent(src, toks)

		case isIdentStart(ch):
			ch = scanIdent(src, toks)

		default:
			return nil, src.Errorf(parseOp, src.Index(), "unexpected character")
		}
	}
	return toks, nil
}

// scanIdent scans an identifier starting at the cursor, and returns the
// first byte after it.
func scanIdent(src *jindex.Source, toks *jindex.TokenList) byte {
	start := src.Index()
	ch := src.Next()
	for isIdentStart(ch) || isDigit(ch) {
		ch = src.Next()
	}
	toks.Append(jindex.Token{Start: start, End: src.Index(), Kind: jindex.PathKey})
	return ch
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// elem carries the token and source of a path element.
type elem struct {
	src *jindex.Source
	tok jindex.Token
}

func (e elem) Kind() jindex.Kind      { return e.tok.Kind }
func (e elem) Token() jindex.Token    { return e.tok }
func (e elem) Source() *jindex.Source { return e.src }
func (e elem) Original() string       { return e.src.String(e.tok.Start, e.tok.End) }
func (e elem) Text() mem.RO           { return e.src.Text(e.tok.Start, e.tok.End) }

// A Key is a path element that selects an object member by key.
type Key struct{ elem }

// Name returns the decoded key.
func (k *Key) Name() (string, error) {
	if !k.tok.Escaped {
		return k.Original(), nil
	}
	return k.src.Decoded(k.tok.Start, k.tok.End)
}

// Label implements the Element interface. If the key cannot be decoded, its
// original text is returned.
func (k *Key) Label() string {
	name, err := k.Name()
	if err != nil {
		return k.Original()
	}
	return name
}

// Equal reports whether n is a key with the same name as k.
func (k *Key) Equal(n node.Node) bool {
	o, ok := n.(*Key)
	return ok && o.Label() == k.Label()
}

// Hash returns a hash of the name of k.
func (k *Key) Hash() uint64 { return xxhash.Sum64String("k" + k.Label()) }

// An Index is a path element that selects an array element by offset.
type Index struct{ elem }

// Value returns the offset denoted by x.
func (x *Index) Value() (int, error) { return x.src.Int(x.tok.Start, x.tok.End) }

// Label implements the Element interface.
func (x *Index) Label() string {
	if v, err := x.Value(); err == nil {
		return strconv.Itoa(v)
	}
	return x.Original()
}

// Equal reports whether n is an index with the same offset as x.
func (x *Index) Equal(n node.Node) bool {
	o, ok := n.(*Index)
	return ok && o.Label() == x.Label()
}

// Hash returns a hash of the offset of x.
func (x *Index) Hash() uint64 { return xxhash.Sum64String("i" + x.Label()) }

// segmentText renders e as it would be written in a path.
func segmentText(e Element) string {
	if _, ok := e.(*Index); ok {
		return "[" + e.Original() + "]"
	}
	name := e.Label()
	if name == "" {
		return "['']"
	}
	for i := 0; i < len(name); i++ {
		if !isIdentStart(name[i]) && (i == 0 || !isDigit(name[i])) {
			return "['" + quoteEsc.Replace(name) + "']"
		}
	}
	return name
}

var quoteEsc = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
