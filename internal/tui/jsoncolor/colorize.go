// Package jsoncolor pretty-prints JSON with the active theme's colors.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/colonyops/dialogview/internal/core/styles"
)

const indent = "  "

type frame struct {
	object bool
	n      int // tokens written: keys and values for objects, values for arrays
}

type printer struct {
	out   strings.Builder
	stack []frame
}

// Colorize indents data two spaces per level and colors keys, strings,
// numbers, booleans, and null. Invalid JSON is returned unchanged.
func Colorize(data []byte) string {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var p printer
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return string(data)
		}
		p.token(tok)
	}

	if len(p.stack) != 0 {
		return string(data)
	}
	return p.out.String()
}

// Marshal encodes v and colorizes it.
func Marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Colorize(data), nil
}

func (p *printer) token(tok json.Token) {
	if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
		p.close(d)
		return
	}

	isKey := p.inKeyPosition()
	p.separate()

	switch v := tok.(type) {
	case json.Delim:
		p.out.WriteString(styles.JSONPunctStyle.Render(v.String()))
		p.stack = append(p.stack, frame{object: v == '{'})
	case string:
		if isKey {
			p.out.WriteString(styles.JSONKeyStyle.Render(quote(v)))
		} else {
			p.out.WriteString(styles.JSONStringStyle.Render(quote(v)))
		}
	case json.Number:
		p.out.WriteString(styles.JSONNumberStyle.Render(v.String()))
	case bool:
		if v {
			p.out.WriteString(styles.JSONBoolStyle.Render("true"))
		} else {
			p.out.WriteString(styles.JSONBoolStyle.Render("false"))
		}
	case nil:
		p.out.WriteString(styles.JSONNullStyle.Render("null"))
	}
}

func (p *printer) inKeyPosition() bool {
	if len(p.stack) == 0 {
		return false
	}
	top := p.stack[len(p.stack)-1]
	return top.object && top.n%2 == 0
}

// separate writes whatever goes between the previous token and the next
// one: a comma and newline between elements, or a colon after a key.
func (p *printer) separate() {
	if len(p.stack) == 0 {
		return
	}

	top := &p.stack[len(p.stack)-1]
	if top.object && top.n%2 == 1 {
		p.out.WriteString(styles.JSONPunctStyle.Render(":") + " ")
	} else {
		if top.n > 0 {
			p.out.WriteString(styles.JSONPunctStyle.Render(","))
		}
		p.newline(len(p.stack))
	}
	top.n++
}

func (p *printer) close(d json.Delim) {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	if top.n > 0 {
		p.newline(len(p.stack))
	}
	p.out.WriteString(styles.JSONPunctStyle.Render(d.String()))
}

func (p *printer) newline(depth int) {
	p.out.WriteByte('\n')
	p.out.WriteString(strings.Repeat(indent, depth))
}

// quote encodes s as a JSON string without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
