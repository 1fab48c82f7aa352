package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatWith(t *testing.T, src string, v Variant) string {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Variant = v
	res := Format(src, cfg)
	require.True(t, res.OK(), "format failed: %s", res.Message())
	return res.Text()
}

func TestFormatJavaScript(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "function body",
			src:  "function f(){let x=1;return x;}",
			want: "function f(){\n  let x=1;\n  return x;\n}",
		},
		{
			name: "empty block stays closed",
			src:  "if(a){}",
			want: "if(a){}",
		},
		{
			name: "comma spacing",
			src:  "foo(1,2,3)",
			want: "foo(1, 2, 3)",
		},
		{
			name: "semicolons break inside parentheses too",
			src:  "for(let i=0;i<n;i++){x();}",
			want: "for(let i=0;\ni<n;\ni++){\n  x();\n}",
		},
		{
			name: "strings keep braces",
			src:  `const s="{";const t='}';`,
			want: "const s=\"{\";\nconst t='}';",
		},
		{
			name: "template literal",
			src:  "const s=`a{b}c`;",
			want: "const s=`a{b}c`;",
		},
		{
			name: "line comment ends with a break",
			src:  "// a {\nlet x;",
			want: "// a {\nlet x;",
		},
		{
			name: "block comment copied verbatim",
			src:  "/* {;} */x();",
			want: "/* {;} */x();",
		},
		{
			name: "nested blocks",
			src:  "a{b{c;}}",
			want: "a{\n  b{\n    c;\n  }\n}",
		},
		{
			name: "closing brace followed by code",
			src:  "if(a){b();}c();",
			want: "if(a){\n  b();\n}\nc();",
		},
		{
			name: "non-ascii text",
			src:  `const s="héllo {";`,
			want: `const s="héllo {";`,
		},
		{
			name: "collapses blanks and blank lines",
			src:  "a  =   1;\n\n\n\nb = 2;",
			want: "a = 1;\nb = 2;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatWith(t, tt.src, JavaScript))
		})
	}
}

func TestFormatIndentOptions(t *testing.T) {
	src := "function f(){let x=1;return x;}"

	res := Format(src, Config{Variant: JavaScript, UseSpaces: false})
	require.True(t, res.OK())
	assert.Equal(t, "function f(){\n\tlet x=1;\n\treturn x;\n}", res.Text())

	res = Format(src, Config{Variant: JavaScript, IndentWidth: 4, UseSpaces: true})
	require.True(t, res.OK())
	assert.Equal(t, "function f(){\n    let x=1;\n    return x;\n}", res.Text())
}

func TestFormatTypeScript(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "parameter annotations",
			src:  "function f(a:number,b:string):void{}",
			want: "function f(a: number, b: string): void{}",
		},
		{
			name: "arrow",
			src:  "const f=(a:number)=>a",
			want: "const f=(a: number) => a",
		},
		{
			name: "union",
			src:  "type T=A|B;",
			want: "type T=A | B;",
		},
		{
			name: "intersection",
			src:  "type U=A&B;",
			want: "type U=A & B;",
		},
		{
			name: "logical operators untouched",
			src:  "const ok=a||b&&c;",
			want: "const ok=a||b&&c;",
		},
		{
			name: "leading union members keep indentation",
			src:  "type T =\n| A\n| B",
			want: "type T =\n| A\n| B",
		},
		{
			name: "strings untouched",
			src:  `const u="http://x|y";`,
			want: `const u="http://x|y";`,
		},
		{
			name: "object literal",
			src:  "const o={a:1,b:2};",
			want: "const o={\n  a: 1, b: 2\n};",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatWith(t, tt.src, TypeScript))
		})
	}
}

func TestFormatJSX(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "nested elements",
			src:  "<div><span>hi</span></div>",
			want: "<div>\n  <span>\n    hi\n  </span>\n</div>",
		},
		{
			name: "empty element",
			src:  "<div></div>",
			want: "<div></div>",
		},
		{
			name: "self-closing and void elements",
			src:  `<div><br/><img src="a.png"/></div>`,
			want: "<div>\n  <br/>\n  <img src=\"a.png\"/>\n</div>",
		},
		{
			name: "returned element",
			src:  "function App(){return <div>{name}</div>;}",
			want: "function App(){\n  return <div>\n    {name}\n  </div>;\n}",
		},
		{
			name: "apostrophe in text",
			src:  "<p>Don't {x}</p>",
			want: "<p>\n  Don't {x}\n</p>",
		},
		{
			name: "comparison is not a tag",
			src:  "if (a<b) {x();}",
			want: "if (a<b) {\n  x();\n}",
		},
		{
			name: "fragment",
			src:  "<><a>x</a></>",
			want: "<>\n  <a>\n    x\n  </a>\n</>",
		},
		{
			name: "attribute expression",
			src:  "<div onClick={() => go(1,2)}></div>",
			want: "<div onClick={() => go(1,2)}></div>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatWith(t, tt.src, JSX))
		})
	}
}

func TestFormatTSX(t *testing.T) {
	src := `const f=(p:Props)=><div className="a:b">{p.x}</div>`
	want := "const f=(p: Props) => <div className=\"a:b\">\n  {p.x}\n</div>"
	assert.Equal(t, want, formatWith(t, src, TSX))

	assert.Equal(t, "<p>\n  a&b | c\n</p>", formatWith(t, "<p>a&b | c</p>", TSX))
}

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "valid document keeps key order",
			src:  `{"b":1,"a":[true,null]}`,
			want: "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}",
		},
		{
			name: "duplicate keys and literals kept as written",
			src:  `{"a":1.0,"a":"\u0041"}`,
			want: "{\n  \"a\": 1.0,\n  \"a\": \"\\u0041\"\n}",
		},
		{
			name: "empty object",
			src:  "  {}  ",
			want: "{}",
		},
		{
			name: "trailing comma",
			src:  "{a:1,}",
			want: "{\n  a: 1,\n}",
		},
		{
			name: "trailing comma in array",
			src:  "[1,2,]",
			want: "[\n  1,\n  2,\n]",
		},
		{
			name: "single quotes and empty array",
			src:  "{'a': [ ]}",
			want: "{\n  'a': []\n}",
		},
		{
			name: "blank between bare words kept",
			src:  "{a b:1}",
			want: "{\n  a b: 1\n}",
		},
		{
			name: "escaped quote",
			src:  `{"a\"b":x}`,
			want: "{\n  \"a\\\"b\": x\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatWith(t, tt.src, JSON))
		})
	}
}

func TestFormatBlankInput(t *testing.T) {
	for v := JavaScript; v <= JSON; v++ {
		res := Format(" \n\t ", Config{Variant: v})
		assert.True(t, res.OK())
		assert.Equal(t, "", res.Text())
	}
}

func TestFormatUnknownVariantFallsBackToJavaScript(t *testing.T) {
	src := "function f(){return 1;}"
	want := formatWith(t, src, JavaScript)
	assert.Equal(t, want, formatWith(t, src, Variant(42)))
	assert.Equal(t, want, FormatString(src, "cobol").Text())
}

func TestFormatRecoversFromPanics(t *testing.T) {
	saved := engines[JSON]
	engines[JSON] = func(string, string) string { panic("boom") }
	t.Cleanup(func() { engines[JSON] = saved })

	res := Format("{}", Config{Variant: JSON})
	require.False(t, res.OK())
	assert.Empty(t, res.Text())
	assert.Equal(t, "error formatting json: boom", res.Message())
}

var idempotenceSamples = map[Variant][]string{
	JavaScript: {
		"function f(){let x=1;return x;}",
		"for(let i=0;i<n;i++){x();}",
		"if(a){b();}else{c();}",
		"// c\nconst o={a:[1,2],b:{c:3}};",
	},
	TypeScript: {
		"function f(a:number,b:string):void{}",
		"type T=A|B;type U=A&B;const f=(a:T)=>a;",
		"interface I{a:string;b?:number;}",
		"x=>=>=>y",
	},
	JSX: {
		"<div><span>hi</span></div>",
		"function App(){return <div>{name}</div>;}",
		`<ul><li key="a">one</li><li>two {x}</li></ul>`,
	},
	TSX: {
		`const f=(p:Props)=><div className="a:b">{p.x}</div>`,
		"=>=>=>",
	},
	JSON: {
		`{"b":1,"a":[true,null]}`,
		"{a:1,}",
		"{'a': [ ]}",
	},
}

func TestFormatAdjacentArrowsShareOneBlank(t *testing.T) {
	for _, v := range []Variant{TypeScript, TSX} {
		once := formatWith(t, "=>=>=>", v)
		assert.Equal(t, "=> => =>", once, v.String())
		assert.Equal(t, once, formatWith(t, once, v), v.String())
	}
	assert.Equal(t, "a => => b", formatWith(t, "a=>=>b", TypeScript))
	assert.Equal(t, "a==>b", formatWith(t, "a==>b", TypeScript))
}

func TestFormatIsIdempotent(t *testing.T) {
	for v, samples := range idempotenceSamples {
		for _, src := range samples {
			once := formatWith(t, src, v)
			twice := formatWith(t, once, v)
			assert.Equal(t, once, twice, "%s: %q", v, src)
		}
	}
}

func TestFormatIndentationUsesOnlyTheUnit(t *testing.T) {
	for v, samples := range idempotenceSamples {
		for _, src := range samples {
			for _, cfg := range []Config{
				{Variant: v, UseSpaces: false},
				{Variant: v, IndentWidth: 3, UseSpaces: true},
				{Variant: v, IndentWidth: 20, UseSpaces: true},
			} {
				res := Format(src, cfg)
				require.True(t, res.OK())
				for _, line := range strings.Split(res.Text(), "\n") {
					indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
					if cfg.UseSpaces {
						assert.NotContains(t, indent, "\t", "%s: %q", v, line)
						assert.Zero(t, len(indent)%cfg.IndentWidth, "%s width %d: %q", v, cfg.IndentWidth, line)
					} else {
						assert.NotContains(t, indent, " ", "%s: %q", v, line)
					}
					assert.Equal(t, strings.TrimRight(line, " \t"), line, "trailing blanks in %q", line)
				}
			}
		}
	}
}

func TestFormatWideIndentIsHonored(t *testing.T) {
	for _, w := range []int{16, 17, 20} {
		res := Format("function f(){let x=1;}", Config{Variant: JavaScript, IndentWidth: w, UseSpaces: true})
		require.True(t, res.OK())
		assert.Equal(t, "function f(){\n"+strings.Repeat(" ", w)+"let x=1;\n}", res.Text(), "width %d", w)
	}
}

func TestFormatUnbalancedInputNeverIndentsNegatively(t *testing.T) {
	text := formatWith(t, "}}}a", JavaScript)
	assert.Equal(t, "}\n}\n}\na", text)

	text = formatWith(t, "</a></b>x", JSX)
	for _, line := range strings.Split(text, "\n") {
		assert.Equal(t, strings.TrimLeft(line, " "), line)
	}
}
