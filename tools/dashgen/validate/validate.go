// Package validate checks generated dashboards and rules for PromQL that
// does not parse or that references metrics the gateway does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/marketplace-gateway/tools/dashgen/rules"
)

// histogramSuffixes are the series a histogram exports besides its base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Expr parses a PromQL expression and returns every metric it selects that
// is not in known.
func Expr(expr string, known map[string]bool) error {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", expr, err)
	}

	var unknown []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			unknown = append(unknown, vs.Name)
		}
		return nil
	})

	if len(unknown) > 0 {
		return fmt.Errorf("unknown metrics in %q: %s", expr, strings.Join(unknown, ", "))
	}
	return nil
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

type panelJSON struct {
	Title   string       `json:"title"`
	Type    string       `json:"type"`
	Targets []targetJSON `json:"targets"`
	Panels  []panelJSON  `json:"panels"`
}

type targetJSON struct {
	Expr  string `json:"expr"`
	RefID string `json:"refId"`
}

// Dashboard validates every query target of a built dashboard. dash is
// anything that marshals to Grafana dashboard JSON.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	for i := range doc.Panels {
		res.merge(panel(doc.Panels[i], known))
	}
	return res
}

func panel(p panelJSON, known map[string]bool) Result {
	var res Result

	if p.Type == "row" {
		for i := range p.Panels {
			res.merge(panel(p.Panels[i], known))
		}
		return res
	}

	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", p.Title))
	}
	for _, t := range p.Targets {
		if t.Expr == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q target %s has no expression", p.Title, t.RefID))
			continue
		}
		if err := Expr(t.Expr, known); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("panel %q: %v", p.Title, err))
		}
	}
	return res
}

// Rules validates the expressions of a PrometheusRule and reports duplicate
// rule names.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	seen := make(map[string]bool)

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			if name == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("group %s: rule without record or alert name", g.Name))
			}
			if seen[name] {
				res.Errors = append(res.Errors, fmt.Sprintf("group %s: duplicate rule %s", g.Name, name))
			}
			seen[name] = true

			if err := Expr(r.Expr, known); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("rule %s: %v", name, err))
			}
		}
	}
	return res
}
