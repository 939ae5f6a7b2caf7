package cycles

import "testing"

func TestLoadTable(t *testing.T) {
	table, err := LoadTable([]byte(`{"move.w dn,dn": [4], "bne.w xxx.l": [12, 10]}`))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	comps, ok := table.Lookup("bne.w xxx.l")
	if !ok || len(comps) != 2 || comps[0] != 12 || comps[1] != 10 {
		t.Errorf("Lookup(bne.w xxx.l) = %v, %v, want [12 10], true", comps, ok)
	}
	if _, ok := table.Lookup("missing.w dn"); ok {
		t.Error("Lookup of a missing key reported ok")
	}
}

func TestLoadTableRejectsBadData(t *testing.T) {
	if _, err := LoadTable([]byte(`{"move.w`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := LoadTable([]byte(`{"move.w dn,dn": []}`)); err == nil {
		t.Error("entry without cycle values accepted")
	}
}

func TestBuiltinTable(t *testing.T) {
	table, err := BuiltinTable()
	if err != nil {
		t.Fatalf("BuiltinTable: %v", err)
	}
	// Spot-check entries the default template and sample lean on.
	checks := map[string]int{
		"nop.w":           4,
		"move.b dn,xxx.w": 12,
		"move.w dn,xxx.w": 12,
		"moveq.l #xxx,dn": 4,
		"lea.l xxx.l,an":  12,
	}
	for key, want := range checks {
		comps, ok := table.Lookup(key)
		if !ok {
			t.Errorf("builtin table is missing %q", key)
			continue
		}
		if comps[0] != want {
			t.Errorf("builtin %q = %v, want base %d", key, comps, want)
		}
	}
}
