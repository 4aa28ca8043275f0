package vesync

import (
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		code    string
		family  Family
		dialect Dialect
		ok      bool
	}{
		{"wifi-switch-1.3", FamilyOutlet, DialectOutlet7A, true},
		{"ESW15-USA", FamilyOutlet, DialectOutlet15A, true},
		{"ESW01-EU", FamilyOutlet, DialectOutlet10A, true},
		{"ESWL01", FamilySwitch, DialectInWallSwitch, true},
		{"ESWL02", FamilySwitch, DialectInWallSwitch, true},
		{"LV-PUR131S", FamilyPurifier, DialectPurifier131, true},
		{"ESW15-EU", FamilyUnknown, DialectUnknown, false},
		{"esw15-usa", FamilyUnknown, DialectUnknown, false},
		{"", FamilyUnknown, DialectUnknown, false},
	}

	for _, c := range cases {
		family, dialect, ok := Classify(c.code)
		if ok != c.ok {
			t.Errorf("Classify(%q) ok = %t, want %t", c.code, ok, c.ok)
		}
		if family != c.family {
			t.Errorf("Classify(%q) family = %s, want %s", c.code, family, c.family)
		}
		if dialect != c.dialect {
			t.Errorf("Classify(%q) dialect = %s, want %s", c.code, dialect, c.dialect)
		}
	}
}

func TestDialectCapabilities(t *testing.T) {
	if !DialectOutlet7A.hasEnergy() || !DialectOutlet15A.hasEnergy() || !DialectOutlet10A.hasEnergy() {
		t.Error("outlet dialects must report energy capability")
	}
	if DialectInWallSwitch.hasEnergy() || DialectPurifier131.hasEnergy() {
		t.Error("switch and purifier dialects must not report energy capability")
	}
	if DialectOutlet7A.usesUUID() {
		t.Error("7A devices are addressed by cid")
	}
	for _, d := range []Dialect{DialectOutlet15A, DialectOutlet10A, DialectInWallSwitch, DialectPurifier131} {
		if !d.usesUUID() {
			t.Errorf("%s devices are addressed by uuid", d)
		}
	}
}
