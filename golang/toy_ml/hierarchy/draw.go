package hierarchy

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

func nodeName(id int) string {
	return fmt.Sprint("node_", id)
}

//GraphDescription returns the label of a merge node in the rendered tree.
func (merge Merge) GraphDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("#", merge.Size))
	sb.WriteString(fmt.Sprintln("id: ", merge.ID))
	sb.WriteString(fmt.Sprintf("h = %6.3f", merge.Height))
	return sb.String()
}

func recurrentDraw(g *cgraph.Graph, d Dendrogram, id int, parentNode *cgraph.Node) error {
	currentNode, err := g.CreateNode(nodeName(id))
	if err != nil {
		return err
	}

	if parentNode != nil {
		if _, err = g.CreateEdge("", parentNode, currentNode); err != nil {
			return err
		}
	}

	if id < d.N {
		currentNode.Set("label", fmt.Sprint("p", id))
		currentNode.Set("shape", "box")
		return nil
	}

	merge := d.Merges[id-d.N]
	currentNode.Set("label", merge.GraphDescription())
	if err = recurrentDraw(g, d, merge.Left, currentNode); err != nil {
		return err
	}
	return recurrentDraw(g, d, merge.Right, currentNode)
}

//DrawGraph builds the dendrogram as a graphviz tree rooted at the last merge.
//The caller closes both returned values.
func (d Dendrogram) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	if err := d.validate(); err != nil {
		return nil, nil, hierarchyErrorf(opDraw, err)
	}

	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		_ = graphViz.Close()
		return nil, nil, hierarchyErrorf(opDraw, err)
	}

	if d.N > 0 {
		if err = recurrentDraw(graph, d, d.Root(), nil); err != nil {
			_ = graph.Close()
			_ = graphViz.Close()
			return nil, nil, hierarchyErrorf(opDraw, err)
		}
	}
	return graphViz, graph, nil
}

var graphvizType = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

//Render draws the dendrogram into filename; figureType is png, svg, jpg or dot.
func (d Dendrogram) Render(filename, figureType string) (err error) {
	format, ok := graphvizType[figureType]
	if !ok {
		return hierarchyErrorf(opRender, fmt.Errorf("figure type %q: %w", figureType, ErrConfiguration))
	}

	graphViz, graph, err := d.DrawGraph()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := graph.Close(); err == nil {
			err = closeErr
		}
		if closeErr := graphViz.Close(); err == nil {
			err = closeErr
		}
	}()

	if err = graphViz.RenderFilename(graph, format, filename); err != nil {
		return hierarchyErrorf(opRender, err)
	}
	return nil
}
