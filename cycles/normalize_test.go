package cycles

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"data to addr", "move.l d0,a1", "move.l dn,an"},
		{"addr to addr upper case", "MOVE.W A1,A2", "move.w an,an"},
		{"moveq forces long", "moveq #12,d2", "moveq.l #xxx,dn"},
		{"moveq keeps explicit suffix", "moveq.l #16,d0", "moveq.l #xxx,dn"},
		{"default word suffix", " add #12,d2  ", "add.w #xxx,dn"},
		{"lea absolute short", "lea $ffff8240.w,a0", "lea.l xxx.w,an"},
		{"lea absolute long", "lea $ffff8240,a0", "lea.l xxx.l,an"},
		{"hex read short", "move.w $ffff8240.w,d0", "move.w xxx.w,dn"},
		{"hex write short", "move.w d0,$ffff8240.w", "move.w dn,xxx.w"},
		{"hex read long", "move.w $ffff8240,d0", "move.w xxx.l,dn"},
		{"hex write long", "move.w d0,$ffff8240", "move.w dn,xxx.l"},
		{"trailing comment", "move.b\td7,$ffff8260.w\t\t\t;", "move.b dn,xxx.w"},
		{"displacement", "lea 100(sp),a1", "lea.l d(an),an"},
		{"named displacement", "lea SCREEN_WIDTH(a1),a1", "lea.l d(an),an"},
		{"predecrement kept", "move.l d0,-(sp)", "move.l dn,-(an)"},
		{"postincrement", "movea.l (a3),a2", "movea.l (an),an"},
		{"register list", "movem.l d0-d7/a0-a6,-(sp)", "movem.l reglist,-(an)"},
		{"register list restore", "movem.l (sp)+,d0-d7/a0-a6", "movem.l (an)+,reglist"},
		{"absolute label", "movea.l my_label,a0", "movea.l xxx.l,an"},
		{"leading label", "my_label:\tmoveq #16,d1", "moveq.l #xxx,dn"},
		{"whitespace collapse", "   add.l     d0,d1 ", "add.l dn,dn"},
		{"branch short", "bne.s label.w", "bne.b xxx.w"},
		{"branch default word", "bne label", "bne.w xxx.l"},
		{"branch keeps explicit size", "bra.w loop", "bra.w xxx.l"},
		{"btst is not a branch", "btst #0,d0", "btst.w #xxx,dn"},
		{"no operands", "rts", "rts.w"},
		{"nop", "nop", "nop.w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Normalize(tt.line)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

// Canonical keys must be fixpoints, otherwise a renormalized document would
// resolve differently from its source.
func TestNormalizeIdempotent(t *testing.T) {
	keys := []string{
		"moveq.l #xxx,dn",
		"move.w an,an",
		"move.b dn,xxx.w",
		"lea.l d(an),an",
		"movem.l reglist,-(an)",
		"movem.l (an)+,reglist",
		"bne.b xxx.w",
		"bra.w xxx.l",
		"nop.w",
		"rts.w",
	}
	for _, key := range keys {
		got, _ := Normalize(key)
		if got != key {
			t.Errorf("Normalize(%q) = %q, want unchanged", key, got)
		}
	}
}

func TestNormalizeRegisterCount(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"movem.l d0-d3,-(sp)", 4},
		{"movem.l d0/d2/d5,-(sp)", 3},
		{"movem.l d0-d3/d5,-(sp)", 5},
		{"movem.l d0-d7/a0-a6,-(sp)", 15},
		{"movem.l (sp)+,d0-d2/a0/a3", 5},
		{"move.l d0,a1", 0},
	}
	for _, tt := range tests {
		if _, got := Normalize(tt.line); got != tt.want {
			t.Errorf("Normalize(%q) register count = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	// Normalization is total: even nonsense yields some key.
	for _, line := range []string{"moveq #16", "customop $FF,d1", "???", ""} {
		got, _ := Normalize(line)
		if line != "" && got == "" {
			t.Errorf("Normalize(%q) produced an empty key", line)
		}
	}
}
