// Package pnml parses PNML (Petri Net Markup Language) files into the
// in-memory net model. It accepts the common place/transition/arc subset,
// including nets split over <page> elements, and the three initial
// marking spellings found in the wild: <value>, <token><value> and
// <text>. The parser produces a structurally validated net; weighted
// markings are clamped to one token with a warning (1-safe semantics).
package pnml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pnet-tools/go-pnet/petri"
)

// Parser reads PNML documents. Non-fatal findings (token clamping,
// isolated transitions) are logged; structural errors abort the parse.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a parser logging warnings to the given logger.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// ParseFile reads a PNML file from disk.
func (p *Parser) ParseFile(path string) (*petri.Net, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pnml: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads one PNML document and returns the first net it declares.
func (p *Parser) Parse(r io.Reader) (*petri.Net, error) {
	var doc pnmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid XML: %w", err)
	}
	if len(doc.Nets) == 0 {
		return nil, fmt.Errorf("no <net> element found")
	}

	src := doc.Nets[0]
	name := src.ID
	if name == "" {
		name = "unnamed"
	}
	net := petri.NewNet(name)

	places := collectPlaces(&src.pnmlPage)
	transitions := collectTransitions(&src.pnmlPage)
	arcs := collectArcs(&src.pnmlPage)

	for _, place := range places {
		if place.ID == "" {
			return nil, fmt.Errorf("place missing id attribute")
		}
		if err := net.AddPlace(place.ID); err != nil {
			return nil, err
		}
	}
	for _, trans := range transitions {
		if trans.ID == "" {
			return nil, fmt.Errorf("transition missing id attribute")
		}
		if err := net.AddTransition(trans.ID); err != nil {
			return nil, err
		}
	}
	for _, arc := range arcs {
		if arc.Source == "" || arc.Target == "" {
			return nil, fmt.Errorf("arc %q missing source or target", arc.ID)
		}
		if err := net.AddArc(arc.Source, arc.Target); err != nil {
			return nil, err
		}
	}

	for _, place := range places {
		tokens, err := place.tokens()
		if err != nil {
			return nil, fmt.Errorf("place %q: %w", place.ID, err)
		}
		clamped, err := net.SetInitial(place.ID, tokens)
		if err != nil {
			return nil, err
		}
		if clamped {
			p.logger.Warn("initial marking clamped to one token",
				zap.String("place", place.ID),
				zap.Int("tokens", tokens))
		}
	}

	for _, t := range net.Transitions() {
		if len(net.Preset(t)) == 0 {
			p.logger.Warn("transition has no input places", zap.String("transition", t))
		}
		if len(net.Postset(t)) == 0 {
			p.logger.Warn("transition has no output places", zap.String("transition", t))
		}
	}

	return net, nil
}

// ParseFile reads a PNML file with a no-op logger.
func ParseFile(path string) (*petri.Net, error) {
	return NewParser(nil).ParseFile(path)
}

// Parse reads a PNML document with a no-op logger.
func Parse(r io.Reader) (*petri.Net, error) {
	return NewParser(nil).Parse(r)
}

type pnmlDoc struct {
	XMLName xml.Name  `xml:"pnml"`
	Nets    []pnmlNet `xml:"net"`
}

type pnmlNet struct {
	ID string `xml:"id,attr"`
	pnmlPage
}

// pnmlPage holds the node declarations of a net or nested page.
type pnmlPage struct {
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
	Pages       []pnmlPage       `xml:"page"`
}

type pnmlPlace struct {
	ID      string       `xml:"id,attr"`
	Marking *pnmlMarking `xml:"initialMarking"`
}

type pnmlTransition struct {
	ID string `xml:"id,attr"`
}

type pnmlArc struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type pnmlMarking struct {
	Value string `xml:"value"`
	Token struct {
		Value string `xml:"value"`
	} `xml:"token"`
	Text string `xml:"text"`
}

// tokens resolves the initial token count, trying the three marking
// spellings in order.
func (p *pnmlPlace) tokens() (int, error) {
	if p.Marking == nil {
		return 0, nil
	}
	raw := p.Marking.Value
	if raw == "" {
		raw = p.Marking.Token.Value
	}
	if raw == "" {
		raw = p.Marking.Text
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	tokens, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid initial marking %q", raw)
	}
	return tokens, nil
}

func collectPlaces(page *pnmlPage) []pnmlPlace {
	out := append([]pnmlPlace(nil), page.Places...)
	for i := range page.Pages {
		out = append(out, collectPlaces(&page.Pages[i])...)
	}
	return out
}

func collectTransitions(page *pnmlPage) []pnmlTransition {
	out := append([]pnmlTransition(nil), page.Transitions...)
	for i := range page.Pages {
		out = append(out, collectTransitions(&page.Pages[i])...)
	}
	return out
}

func collectArcs(page *pnmlPage) []pnmlArc {
	out := append([]pnmlArc(nil), page.Arcs...)
	for i := range page.Pages {
		out = append(out, collectArcs(&page.Pages[i])...)
	}
	return out
}
