package viewer

import "github.com/colonyops/dialogview/internal/core/dialog"

// Render describes dialog index of dialogs. It returns false, and an empty
// surface, when index is out of range. An empty collection always renders
// the placeholder.
func Render(dialogs dialog.Collection, index int, assetDir string) (Surface, bool) {
	if dialogs.Len() == 0 {
		return PlaceholderSurface(), true
	}

	rec, ok := dialogs.At(index)
	if !ok {
		return Surface{}, false
	}

	nodes := make([]Node, 0, len(rec.Lines)+2)
	nodes = append(nodes, Node{Kind: NodeTitle, Text: rec.Title(index)})

	for _, line := range rec.Classified() {
		nodes = append(nodes, lineNode(line, assetDir))
	}

	nodes = append(nodes, Node{
		Kind: NodeNav,
		Nav: &Nav{
			Index:       index,
			Total:       dialogs.Len(),
			PrevEnabled: index > 0,
			NextEnabled: index < dialogs.Len()-1,
		},
	})

	return Surface{Nodes: nodes}, true
}

func lineNode(line dialog.Line, assetDir string) Node {
	if line.IsImage() {
		return Node{
			Kind: NodeImage,
			Role: line.Role,
			Src:  dialog.AssetURL(assetDir, line.Content),
			Alt:  ImageAlt,
			Text: line.Content,
		}
	}
	return Node{Kind: NodeText, Role: line.Role, Text: line.Content}
}
