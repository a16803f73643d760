// ABOUTME: Graphviz rendering of the lead pipeline
// ABOUTME: Stage nodes in order, each lead attached to its stage
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

// PipelineGraph renders the leads of st grouped by stage as DOT source.
func PipelineGraph(st demo.State) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Lead Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	stageNodes := make(map[string]*cgraph.Node)
	var prev *cgraph.Node
	for _, stage := range Stages {
		node, err := graph.CreateNodeByName("stage:" + stage)
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(stage)
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor("lightblue")
		stageNodes[stage] = node

		if prev != nil {
			if _, err := graph.CreateEdgeByName("", prev, node); err != nil {
				return "", fmt.Errorf("failed to create stage edge: %w", err)
			}
		}
		prev = node
	}

	for _, lead := range st.Leads {
		stageNode, ok := stageNodes[lead.Stage]
		if !ok {
			continue
		}
		node, err := graph.CreateNodeByName("lead:" + lead.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create lead node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d", lead.Name, lead.Score))
		node.SetShape("ellipse")
		if lead.Score >= HotLeadScore {
			node.SetStyle("filled")
			node.SetFillColor("lightsalmon")
		}
		edge, err := graph.CreateEdgeByName("", stageNode, node)
		if err != nil {
			return "", fmt.Errorf("failed to create lead edge: %w", err)
		}
		edge.SetStyle("dashed")
		if lead.Status != "" && lead.Status != models.LeadStatusActive {
			edge.SetLabel(lead.Status)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
