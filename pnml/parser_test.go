package pnml

import (
	"errors"
	"strings"
	"testing"

	"github.com/pnet-tools/go-pnet/petri"
)

const simpleNet = `<?xml version="1.0" encoding="UTF-8"?>
<pnml xmlns="http://www.pnml.org/version-2009/grammar/pnml">
  <net id="simple" type="http://www.pnml.org/version-2009/grammar/ptnet">
    <place id="p0">
      <initialMarking><text>1</text></initialMarking>
    </place>
    <place id="p1"/>
    <transition id="t0"/>
    <arc id="a0" source="p0" target="t0"/>
    <arc id="a1" source="t0" target="p1"/>
  </net>
</pnml>`

func TestParseSimpleNet(t *testing.T) {
	net, err := Parse(strings.NewReader(simpleNet))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if net.Name != "simple" {
		t.Errorf("name = %q, want simple", net.Name)
	}
	if got := net.Places(); len(got) != 2 {
		t.Errorf("places = %v, want 2", got)
	}
	if got := net.Transitions(); len(got) != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}
	initial := net.Initial()
	if !initial.Has("p0") || initial.Has("p1") {
		t.Errorf("initial = %v, want {p0}", initial)
	}
	if !net.Enabled("t0", initial) {
		t.Errorf("t0 not enabled in initial marking")
	}
}

func TestParseMarkingSpellings(t *testing.T) {
	doc := `<pnml><net id="n">
	  <place id="a"><initialMarking><value>1</value></initialMarking></place>
	  <place id="b"><initialMarking><token><value>1</value></token></initialMarking></place>
	  <place id="c"><initialMarking><text>1</text></initialMarking></place>
	  <place id="d"/>
	</net></pnml>`
	net, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	initial := net.Initial()
	for _, p := range []string{"a", "b", "c"} {
		if !initial.Has(p) {
			t.Errorf("place %s not marked", p)
		}
	}
	if initial.Has("d") {
		t.Errorf("place d marked without initialMarking")
	}
}

func TestParseNestedPages(t *testing.T) {
	doc := `<pnml><net id="paged">
	  <page id="pg0">
	    <place id="p0"><initialMarking><text>1</text></initialMarking></place>
	    <page id="pg1">
	      <transition id="t0"/>
	      <arc id="a0" source="p0" target="t0"/>
	    </page>
	  </page>
	</net></pnml>`
	net, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !net.HasPlace("p0") || !net.HasTransition("t0") {
		t.Fatalf("nested page nodes not collected")
	}
	if got := net.Preset("t0"); len(got) != 1 || got[0] != "p0" {
		t.Errorf("preset(t0) = %v, want [p0]", got)
	}
}

func TestParseClampsWeightedMarking(t *testing.T) {
	doc := `<pnml><net id="n">
	  <place id="p"><initialMarking><text>3</text></initialMarking></place>
	</net></pnml>`
	net, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !net.Initial().Has("p") {
		t.Errorf("clamped place should remain marked")
	}
}

func TestParseStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate id",
			doc:  `<pnml><net id="n"><place id="x"/><transition id="x"/></net></pnml>`,
			want: petri.ErrDuplicateID,
		},
		{
			name: "dangling arc",
			doc:  `<pnml><net id="n"><place id="p"/><arc id="a" source="p" target="ghost"/></net></pnml>`,
			want: petri.ErrUnknownNode,
		},
		{
			name: "place to place arc",
			doc:  `<pnml><net id="n"><place id="p"/><place id="q"/><arc id="a" source="p" target="q"/></net></pnml>`,
			want: petri.ErrInvalidArc,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("not xml at all <<<")); err == nil {
		t.Errorf("expected error for malformed XML")
	}
	if _, err := Parse(strings.NewReader(`<pnml></pnml>`)); err == nil {
		t.Errorf("expected error for document without a net")
	}
	doc := `<pnml><net id="n"><place id="p"><initialMarking><text>many</text></initialMarking></place></net></pnml>`
	if _, err := Parse(strings.NewReader(doc)); err == nil {
		t.Errorf("expected error for non-numeric marking")
	}
}
