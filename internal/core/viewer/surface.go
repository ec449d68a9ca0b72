package viewer

import "github.com/colonyops/dialogview/internal/core/dialog"

// Display strings shared by every frontend.
const (
	PlaceholderText = "No dialog content available"
	ErrorPrefix     = "Failed to load dialog: "
	ImageAlt        = "Meme Image"
	PrevLabel       = "Previous"
	NextLabel       = "Next"
)

// NodeKind identifies what a Node draws.
type NodeKind string

const (
	NodeTitle       NodeKind = "title"
	NodeText        NodeKind = "text"
	NodeImage       NodeKind = "image"
	NodeNav         NodeKind = "nav"
	NodePlaceholder NodeKind = "placeholder"
	NodeError       NodeKind = "error"
)

// Node is one element of the display surface.
type Node struct {
	Kind NodeKind    `json:"kind"`
	Role dialog.Role `json:"role,omitempty"`
	Text string      `json:"text,omitempty"`
	Src  string      `json:"src,omitempty"`
	Alt  string      `json:"alt,omitempty"`
	Nav  *Nav        `json:"nav,omitempty"`
}

// Nav describes the Previous/Next control pair for the rendered index.
type Nav struct {
	Index       int  `json:"index"`
	Total       int  `json:"total"`
	PrevEnabled bool `json:"prev_enabled"`
	NextEnabled bool `json:"next_enabled"`
}

// Prev returns the index Previous navigates to.
func (n Nav) Prev() int { return n.Index - 1 }

// Next returns the index Next navigates to.
func (n Nav) Next() int { return n.Index + 1 }

// Surface is a declarative description of everything the viewer displays.
// Frontends map the nodes, in order, to their own primitives. The zero value
// is the blank surface shown before the load resolves.
type Surface struct {
	Nodes []Node `json:"nodes"`
}

// IsBlank reports whether nothing has been rendered yet.
func (s Surface) IsBlank() bool {
	return len(s.Nodes) == 0
}

// Title returns the title text, if the surface has one.
func (s Surface) Title() (string, bool) {
	for _, n := range s.Nodes {
		if n.Kind == NodeTitle {
			return n.Text, true
		}
	}
	return "", false
}

// Nav returns the navigation controls, if the surface has them.
func (s Surface) Nav() (Nav, bool) {
	for _, n := range s.Nodes {
		if n.Kind == NodeNav && n.Nav != nil {
			return *n.Nav, true
		}
	}
	return Nav{}, false
}

// Body returns the transcript nodes between the title and the controls.
func (s Surface) Body() []Node {
	body := make([]Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		switch n.Kind {
		case NodeTitle, NodeNav:
			continue
		}
		body = append(body, n)
	}
	return body
}

// PlaceholderSurface is shown when the collection has no dialogs.
func PlaceholderSurface() Surface {
	return Surface{Nodes: []Node{{Kind: NodePlaceholder, Text: PlaceholderText}}}
}

// ErrorSurface is shown when the load fails.
func ErrorSurface(err error) Surface {
	return Surface{Nodes: []Node{{Kind: NodeError, Text: ErrorPrefix + err.Error()}}}
}
