package dx7

import "testing"

func TestFindDuplicatesAllSame(t *testing.T) {
	dupes := FindDuplicates(InitBank())
	if len(dupes) != NumVoices*(NumVoices-1)/2 {
		t.Fatalf("found %d duplicates, want 496", len(dupes))
	}
	if d := dupes[0]; d.A != 0 || d.B != 1 || d.String() != "1 = 2" {
		t.Errorf("first duplicate = %+v", d)
	}
	last := dupes[len(dupes)-1]
	if last.String() != "31 = 32" {
		t.Errorf("last duplicate = %v", last)
	}
}

func TestFindDuplicatesNone(t *testing.T) {
	var voices [NumVoices]Voice
	for i := range voices {
		voices[i] = InitVoice()
		voices[i].Algorithm = byte(i)
	}
	if dupes := FindDuplicates(NewBank(voices)); len(dupes) != 0 {
		t.Fatalf("found duplicates %v", dupes)
	}
}

func TestFindDuplicatesIgnoresName(t *testing.T) {
	var voices [NumVoices]Voice
	for i := range voices {
		voices[i] = InitVoice()
		voices[i].Algorithm = byte(i)
	}
	voices[20] = voices[4]
	voices[20].Name = NewName("COPY")
	dupes := FindDuplicates(NewBank(voices))
	if len(dupes) != 1 || dupes[0] != (Duplicate{4, 20}) {
		t.Fatalf("duplicates = %v, want [5 = 21]", dupes)
	}
}
