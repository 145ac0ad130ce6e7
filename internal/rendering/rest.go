package rendering

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// RenderReST renders the subset of reStructuredText used by help topics:
// section titles, paragraphs, bullet and enumerated lists, literal blocks,
// block quotes, transitions, admonitions, images, comments and inline
// markup.
func RenderReST(_ context.Context, source string) (g.Node, error) {
	p := &restParser{}
	return h.Div(h.Class("rest"), g.Group(p.blocks(splitLines(source)))), nil
}

type restParser struct {
	// adornment styles in order of first appearance; the index is the
	// section level
	styles []string
}

var (
	enumPattern      = regexp.MustCompile(`^(?:\d+|#)[.)] +`)
	directivePattern = regexp.MustCompile(`^([A-Za-z][\w-]*)::\s*(.*)$`)
	inlinePattern    = regexp.MustCompile("``(.+?)``" +
		"|`([^`<]+?)\\s*<([^>`]+)>`__?" +
		`|\*\*(.+?)\*\*` +
		`|\*([^*\s](?:[^*]*[^*\s])?)\*` +
		"|`([^`]+)`" +
		`|(https?://[^\s<>"]*[^\s<>".,;:!?)])`)
	admonitions = map[string]bool{
		"note": true, "warning": true, "tip": true, "hint": true, "important": true,
		"caution": true, "attention": true, "danger": true, "error": true,
	}
)

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\t", "        ")
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func (p *restParser) blocks(lines []string) []g.Node {
	var nodes []g.Node
	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case line == "":
			i++

		case isAdornment(line) && i+2 < len(lines) && lines[i+1] != "" &&
			isAdornment(lines[i+2]) && lines[i+2][0] == line[0]:
			nodes = append(nodes, p.heading("over"+line[:1], strings.TrimSpace(lines[i+1])))
			i += 3

		case !isIndented(line) && i+1 < len(lines) && isAdornment(lines[i+1]) &&
			utf8.RuneCountInString(lines[i+1]) >= utf8.RuneCountInString(line):
			nodes = append(nodes, p.heading("under"+lines[i+1][:1], line))
			i += 2

		case isAdornment(line) && len(line) >= 4:
			nodes = append(nodes, h.Hr())
			i++

		case line == ".." || strings.HasPrefix(line, ".. "):
			block, next := indentedBlock(lines, i+1)
			nodes = append(nodes, p.directive(strings.TrimSpace(line[2:]), block)...)
			i = next

		case bulletMarker(line) != "":
			items, next := p.listItems(lines, i, bulletMarker)
			nodes = append(nodes, h.Ul(items...))
			i = next

		case enumMarker(line) != "":
			items, next := p.listItems(lines, i, enumMarker)
			nodes = append(nodes, h.Ol(items...))
			i = next

		case isIndented(line):
			block, next := indentedBlock(lines, i)
			nodes = append(nodes, g.El("blockquote", p.blocks(block)...))
			i = next

		default:
			var next int
			nodes, next = p.paragraph(nodes, lines, i)
			i = next
		}
	}
	return nodes
}

// paragraph consumes lines up to the next blank line. A paragraph ending in
// "::" introduces the indented literal block that follows it.
func (p *restParser) paragraph(nodes []g.Node, lines []string, i int) ([]g.Node, int) {
	var parts []string
	for i < len(lines) && lines[i] != "" {
		parts = append(parts, strings.TrimSpace(lines[i]))
		i++
	}
	text := strings.Join(parts, " ")

	if !strings.HasSuffix(text, "::") {
		return append(nodes, h.P(inline(text)...)), i
	}

	switch {
	case text == "::":
		text = ""
	case strings.HasSuffix(text, " ::"):
		text = strings.TrimSuffix(text, " ::")
	default:
		text = strings.TrimSuffix(text, ":")
	}
	if text != "" {
		nodes = append(nodes, h.P(inline(text)...))
	}

	j := i
	for j < len(lines) && lines[j] == "" {
		j++
	}
	if j < len(lines) && isIndented(lines[j]) {
		block, next := indentedBlock(lines, j)
		nodes = append(nodes, h.Pre(h.Class("literal-block"), g.Text(strings.Join(block, "\n"))))
		return nodes, next
	}
	return nodes, i
}

func (p *restParser) heading(style, title string) g.Node {
	level := -1
	for i, s := range p.styles {
		if s == style {
			level = i
			break
		}
	}
	if level < 0 {
		p.styles = append(p.styles, style)
		level = len(p.styles) - 1
	}

	children := inline(title)
	switch level {
	case 0:
		return h.H1(children...)
	case 1:
		return h.H2(children...)
	case 2:
		return h.H3(children...)
	case 3:
		return h.H4(children...)
	case 4:
		return h.H5(children...)
	default:
		return h.H6(children...)
	}
}

// directive renders explicit markup blocks. Unknown directives and comments
// produce no output.
func (p *restParser) directive(head string, block []string) []g.Node {
	m := directivePattern.FindStringSubmatch(head)
	if m == nil {
		return nil
	}
	name, arg := strings.ToLower(m[1]), strings.TrimSpace(m[2])

	switch {
	case admonitions[name]:
		body := block
		if arg != "" {
			body = append([]string{arg, ""}, block...)
		}
		return []g.Node{h.Div(
			h.Class("admonition "+name),
			h.P(h.Class("admonition-title"), g.Text(cases.Title(language.English).String(name))),
			g.Group(p.blocks(body)),
		)}

	case name == "image" || name == "figure":
		if arg == "" || !safeURL(arg) {
			return nil
		}
		alt := ""
		for _, opt := range block {
			if v, ok := strings.CutPrefix(strings.TrimSpace(opt), ":alt:"); ok {
				alt = strings.TrimSpace(v)
			}
		}
		return []g.Node{h.Img(h.Src(arg), h.Alt(alt))}

	case name == "code" || name == "code-block" || name == "sourcecode":
		attrs := []g.Node{}
		if arg != "" {
			attrs = append(attrs, h.Class("language-"+arg))
		}
		return []g.Node{h.Pre(h.Code(append(attrs, g.Text(strings.Join(block, "\n")))...))}

	default:
		return nil
	}
}

func (p *restParser) listItems(lines []string, i int, marker func(string) string) ([]g.Node, int) {
	var items []g.Node
	for i < len(lines) {
		if lines[i] == "" {
			j := nextNonBlank(lines, i)
			if j < len(lines) && marker(lines[j]) != "" {
				i = j
				continue
			}
			break
		}

		m := marker(lines[i])
		if m == "" {
			break
		}
		indent := len(m)
		itemLines := []string{lines[i][indent:]}
		i++
		for i < len(lines) {
			if lines[i] == "" {
				j := nextNonBlank(lines, i)
				if j < len(lines) && leadingSpaces(lines[j]) >= indent {
					for ; i < j; i++ {
						itemLines = append(itemLines, "")
					}
					continue
				}
				break
			}
			if leadingSpaces(lines[i]) < indent {
				break
			}
			itemLines = append(itemLines, lines[i][indent:])
			i++
		}

		content := p.blocks(itemLines)
		items = append(items, h.Li(content...))
	}
	return items, i
}

// inline renders inline markup: literals, links, strong and emphasized
// text, interpreted text and bare URLs.
func inline(text string) []g.Node {
	var nodes []g.Node
	last := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			nodes = append(nodes, g.Text(text[last:m[0]]))
		}
		group := func(n int) string {
			if m[2*n] < 0 {
				return ""
			}
			return text[m[2*n]:m[2*n+1]]
		}

		switch {
		case m[2] >= 0:
			nodes = append(nodes, h.Code(h.Class("literal"), g.Text(group(1))))
		case m[4] >= 0:
			label, target := strings.TrimSpace(group(2)), strings.TrimSpace(group(3))
			if safeURL(target) {
				nodes = append(nodes, h.A(h.Href(target), g.Text(label)))
			} else {
				nodes = append(nodes, g.Text(label))
			}
		case m[8] >= 0:
			nodes = append(nodes, h.Strong(g.Text(group(4))))
		case m[10] >= 0:
			nodes = append(nodes, h.Em(g.Text(group(5))))
		case m[12] >= 0:
			nodes = append(nodes, g.El("cite", g.Text(group(6))))
		case m[14] >= 0:
			nodes = append(nodes, h.A(h.Href(group(7)), g.Text(group(7))))
		}
		last = m[1]
	}
	if last < len(text) {
		nodes = append(nodes, g.Text(text[last:]))
	}
	return nodes
}

func safeURL(u string) bool {
	lower := strings.ToLower(strings.TrimSpace(u))
	i := strings.IndexAny(lower, ":/?#")
	if i < 0 || lower[i] != ':' {
		return true
	}
	switch lower[:i] {
	case "http", "https", "mailto":
		return true
	default:
		return false
	}
}

func isAdornment(line string) bool {
	if len(line) < 2 || !strings.ContainsRune(`=-~^*#+'"._:`, rune(line[0])) {
		return false
	}
	return strings.Count(line, line[:1]) == len(line)
}

func isIndented(line string) bool {
	return line != "" && line[0] == ' '
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func nextNonBlank(lines []string, i int) int {
	for i < len(lines) && lines[i] == "" {
		i++
	}
	return i
}

func bulletMarker(line string) string {
	if len(line) >= 2 && strings.ContainsRune("-*+", rune(line[0])) && line[1] == ' ' {
		return line[:2+leadingSpaces(line[2:])]
	}
	return ""
}

func enumMarker(line string) string {
	return enumPattern.FindString(line)
}

// indentedBlock returns the indented lines starting at start, dedented, and
// the index of the first line after the block. Trailing blank lines are not
// part of the block.
func indentedBlock(lines []string, start int) ([]string, int) {
	end := start
	for i := start; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		if !isIndented(lines[i]) {
			break
		}
		end = i + 1
	}

	block := lines[start:end]
	indent := -1
	for _, l := range block {
		if l == "" {
			continue
		}
		if n := leadingSpaces(l); indent < 0 || n < indent {
			indent = n
		}
	}
	out := make([]string, len(block))
	for i, l := range block {
		if l != "" {
			out[i] = l[indent:]
		}
	}
	return out, end
}
