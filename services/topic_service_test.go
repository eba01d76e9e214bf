package services

import "testing"

func TestIsDiabetesRelated(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"Apa kadar gula darah normal?", true},
		{"Apa gejala diabetes?", true},
		{"Berapa hasil HbA1c yang bagus?", true},
		{"gula  darah saya tinggi", true}, // double space caught by the regex pass
		{"tipe 2 itu apa bedanya?", true},
		{"what is a normal blood sugar level", true},
		{"Bagaimana cuaca hari ini?", false},
		{"Siapa presiden pertama Indonesia?", true}, // interrogative trigger, intentionally permissive
		{"kapan vaksin covid?", true},               // same
		{"Tolong rekomendasikan film bagus", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsDiabetesRelated(c.message); got != c.want {
			t.Fatalf("IsDiabetesRelated(%q)=%v, want %v", c.message, got, c.want)
		}
	}
}

func TestIsDiabetesRelatedCaseInsensitive(t *testing.T) {
	if !IsDiabetesRelated("APAKAH INSULIN ITU MAHAL") {
		t.Fatal("uppercase keyword not matched")
	}
	if !IsDiabetesRelated("Kencing  Manis") {
		t.Fatal("mixed-case spaced phrase not matched")
	}
}

func TestTopicsListsNonEmpty(t *testing.T) {
	if len(SupportedTopics()) != 10 {
		t.Fatalf("supported topics = %d, want 10", len(SupportedTopics()))
	}
	if len(SampleQuestions()) != 5 {
		t.Fatalf("sample questions = %d, want 5", len(SampleQuestions()))
	}
}
