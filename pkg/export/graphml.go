package export

import (
	"encoding/xml"
	"io"

	"mercator-hq/ganymede/pkg/machine"
)

// GraphMLExporter writes the machine as a GraphML document. Variables
// and attributes are carried as node data keys, the rule name as an
// edge data key.
type GraphMLExporter struct{}

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Format returns FormatGraphML.
func (e *GraphMLExporter) Format() Format { return FormatGraphML }

// Export writes the machine to w.
func (e *GraphMLExporter) Export(w io.Writer, m *machine.StateMachine) error {
	if m == nil {
		return &machine.ArgumentError{Name: "m", Message: "machine must not be nil"}
	}

	doc := graphmlDoc{
		XMLNS: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "variables", For: "node", Name: "variables", Type: "string"},
			{ID: "attributes", For: "node", Name: "attributes", Type: "string"},
			{ID: "starting", For: "node", Name: "starting", Type: "boolean"},
			{ID: "rule", For: "edge", Name: "rule", Type: "string"},
		},
		Graph: graphmlGraph{
			ID:          m.ID(),
			EdgeDefault: "directed",
		},
	}

	for _, id := range m.StateIDs() {
		s, _ := m.State(id)
		node := graphmlNode{ID: id}
		if vars := summarize(s.Variables); vars != "" {
			node.Data = append(node.Data, graphmlData{Key: "variables", Value: vars})
		}
		if attrs := summarize(s.Attributes); attrs != "" {
			node.Data = append(node.Data, graphmlData{Key: "attributes", Value: attrs})
		}
		if id == m.StartingStateID() {
			node.Data = append(node.Data, graphmlData{Key: "starting", Value: "true"})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}

	for _, t := range m.Transitions() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: t.SourceID,
			Target: t.TargetID,
			Data:   []graphmlData{{Key: "rule", Value: t.RuleName}},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
