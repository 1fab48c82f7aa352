package format

// issueFunc receives structural problems found while scanning. Formatting
// passes a nil issueFunc; Check collects them.
type issueFunc func(offset int, msg string)

// scanner is the brace-indentation engine. The markup engine embeds it and
// defers to it for everything outside tags and markup content.
type scanner struct {
	src    string
	out    *writer
	lex    lexer
	depth  int
	braces []int
	report issueFunc
}

func newScanner(src, unit string, report issueFunc) scanner {
	return scanner{
		src:    src,
		out:    newWriter(len(src), unit),
		lex:    newCodeLexer(),
		report: report,
	}
}

func formatBraces(src, unit string, report issueFunc) (string, []span) {
	s := newScanner(src, unit, report)
	for i := 0; i < len(src); {
		if n := s.region(i, s.depth); n > 0 {
			i += n
			continue
		}
		s.code(i)
		i++
	}
	s.finish()
	return s.out.finish()
}

func (s *scanner) issue(offset int, msg string) {
	if s.report != nil {
		s.report(offset, msg)
	}
}

func (s *scanner) peek(i int) byte {
	if i+1 < len(s.src) {
		return s.src[i+1]
	}
	return 0
}

func (s *scanner) dedent() {
	if s.depth > 0 {
		s.depth--
	}
}

// region copies string and comment regions verbatim and returns the number of
// input bytes consumed, or 0 when src[i] is code. cont is the depth used for
// the line that follows a line comment.
func (s *scanner) region(i, cont int) int {
	if !s.lex.inside() {
		n := s.lex.enter(s.src, i)
		if n > 0 {
			s.copyOpaque(s.src[i : i+n])
		}
		return n
	}
	mode := s.lex.mode
	n := s.lex.exit(s.src, i)
	switch {
	case n == 0:
		s.copyOpaque(s.src[i : i+1])
		return 1
	case mode == modeLineComment:
		s.out.newline(cont)
	default:
		s.copyOpaque(s.src[i : i+n])
	}
	return n
}

func (s *scanner) copyOpaque(text string) {
	prev := s.out.opaque
	s.out.opaque = true
	s.out.puts(text)
	s.out.opaque = prev
}

func (s *scanner) code(i int) {
	c := s.src[i]
	switch c {
	case '{':
		s.openBrace(i)
	case '}':
		s.closeBrace(i)
	case ';':
		s.out.put(c)
		if next := s.peek(i); next != 0 && next != '\n' && next != '}' {
			s.out.newline(s.depth)
		}
	case ',':
		s.out.put(c)
		if next := s.peek(i); next != ' ' && next != '\n' {
			s.out.put(' ')
		}
	case '\n', '\r':
		s.lineBreak(s.depth)
	case ' ', '\t':
		s.out.space()
	default:
		s.out.put(c)
	}
}

func (s *scanner) lineBreak(depth int) {
	if !s.out.atLineStart() {
		s.out.newline(depth)
	}
}

func (s *scanner) openBrace(i int) {
	s.out.put('{')
	s.depth++
	s.braces = append(s.braces, i)
	if s.peek(i) != '}' {
		s.out.newline(s.depth)
	}
}

func (s *scanner) closeBrace(i int) {
	if n := len(s.braces); n > 0 {
		s.braces = s.braces[:n-1]
	} else {
		s.issue(i, "unexpected '}'")
	}
	if i > 0 && s.src[i-1] == '{' {
		s.dedent()
	} else {
		s.out.trimRight(whitespace)
		s.dedent()
		s.out.newline(s.depth)
	}
	s.out.put('}')
	switch s.peek(i) {
	case 0, ';', ',', ')', '}':
	default:
		s.out.newline(s.depth)
	}
}

func (s *scanner) finish() {
	if msg := s.lex.unterminated(); msg != "" {
		s.issue(s.lex.start, msg)
	}
	for _, offset := range s.braces {
		s.issue(offset, "unclosed '{'")
	}
}

// nextSignificant returns the first non-whitespace byte after src[i], or 0.
func nextSignificant(src string, i int) byte {
	for j := i + 1; j < len(src); j++ {
		if !isSpace(src[j]) {
			return src[j]
		}
	}
	return 0
}
