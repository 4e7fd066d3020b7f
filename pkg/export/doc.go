// Package export renders generated state machines into interchange
// formats.
//
// Four formats are supported: a JSON document for programmatic
// consumption, Graphviz DOT and Mermaid stateDiagram-v2 for rendering,
// and GraphML for graph analysis tools. All exporters are
// deterministic: states appear in discovery order and variables in
// sorted name order.
package export
