package results

import (
	"path/filepath"
	"testing"
)

func sampleReport() *Report {
	r := NewReport(NetInfo{Name: "chain", Places: 3, Transitions: 2, Arcs: 4})
	r.Reachability = &ReachabilityReport{
		ExplicitCount: 3,
		SymbolicCount: "3",
		CountsAgree:   true,
		Markings:      []string{"{P0}", "{P1}", "{P2}"},
	}
	r.Deadlock = &DeadlockReport{Method: "explicit", Found: true, Marking: "{P2}"}
	r.Optimum = &OptimumReport{
		Method:  "scan",
		Found:   true,
		Marking: "{P2}",
		Value:   5,
		Weights: map[string]float64{"P2": 5},
	}
	return r
}

func TestReportJSONRoundTrip(t *testing.T) {
	report := sampleReport()
	path := filepath.Join(t.TempDir(), "report.json")

	if err := WriteJSON(report, path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	loaded, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if loaded.RunID != report.RunID {
		t.Errorf("run id = %s, want %s", loaded.RunID, report.RunID)
	}
	if loaded.Reachability == nil || loaded.Reachability.ExplicitCount != 3 {
		t.Errorf("reachability section lost in round trip")
	}
	if loaded.Optimum == nil || loaded.Optimum.Value != 5 {
		t.Errorf("optimum section lost in round trip")
	}
}

func TestNewReportAssignsRunID(t *testing.T) {
	a := NewReport(NetInfo{Name: "a"})
	b := NewReport(NetInfo{Name: "b"})
	if a.RunID == "" || b.RunID == "" {
		t.Fatalf("empty run id")
	}
	if a.RunID == b.RunID {
		t.Errorf("run ids should be unique, both %s", a.RunID)
	}
}

func TestStoreSaveGetList(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	report := sampleReport()
	if err := store.Save(report); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Get(report.RunID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Net.Name != "chain" {
		t.Errorf("net name = %s, want chain", loaded.Net.Name)
	}
	if loaded.Deadlock == nil || loaded.Deadlock.Marking != "{P2}" {
		t.Errorf("deadlock section lost in archive")
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != report.RunID {
		t.Errorf("List = %v, want single run %s", runs, report.RunID)
	}
}

func TestStoreGetMissingRun(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("no-such-run"); err == nil {
		t.Errorf("expected error for missing run")
	}
}
