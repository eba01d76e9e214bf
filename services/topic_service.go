package services

import (
	"regexp"
	"strings"
)

// The gate is a deliberately permissive substring filter: no tokenization,
// no stemming. Incidental matches ("berat badan" inside an unrelated
// sentence) are an accepted tradeoff.
var diabetesKeywords = []string{
	"diabetes", "diabetesi", "gula darah", "glukosa", "insulin", "hiperglikemia",
	"hipoglikemia", "kencing manis", "prediabetes", "resistensi insulin",
	"hba1c", "a1c", "gdp", "gds", "ttgo", "ogtt",
	"metformin", "glibenklamid", "glimepirid", "sulfonilurea",
	"retinopati", "neuropati", "nefropati", "kaki diabetik",
	"pankreas", "sel beta", "hormon",
	"obesitas", "kegemukan", "berat badan", "diet", "karbohidrat",
	"kalori", "indeks glikemik", "serat", "nutrisi",
	"komplikasi", "amputasi", "luka", "kesemutan", "baal",
	"sering kencing", "haus", "lapar", "lelah", "lemas",
	"mata kabur", "penglihatan", "ginjal", "jantung", "stroke",
	"kolesterol", "trigliserida", "tekanan darah", "hipertensi",
	"olahraga", "aktivitas fisik", "gaya hidup", "sehat",
	"puasa", "makan", "makanan", "minuman", "buah", "sayur",
	"gula", "manis", "pemanis", "stevia", "sukrosa",
	"cek gula", "tes darah", "monitor", "glucometer",
	"pompa insulin", "suntik", "injeksi", "pen insulin",
	"blood sugar", "glucose", "glycemic", "carbohydrate", "carbs",
	"type 1", "type 2", "gestational", "mellitus", "blood test",
	"endokrin", "metabolik", "metabolisme", "sindrom metabolik",
	"lidah", "kuku", "deteksi", "screening", "skrining",
}

// Whitespace-tolerant phrasings the plain substring pass would miss.
var diabetesPatterns = []*regexp.Regexp{
	regexp.MustCompile(`gula\s*darah`),
	regexp.MustCompile(`kadar\s*gula`),
	regexp.MustCompile(`cek\s*gula`),
	regexp.MustCompile(`tes\s*gula`),
	regexp.MustCompile(`kencing\s*manis`),
	regexp.MustCompile(`sakit\s*gula`),
	regexp.MustCompile(`penyakit\s*gula`),
	regexp.MustCompile(`blood\s*sugar`),
	regexp.MustCompile(`type\s*[12]`),
	regexp.MustCompile(`tipe\s*[12]`),
}

// Interrogative triggers admit concrete "when/where/who/how much" questions.
// A blunt heuristic with known false positives, kept for compatibility with
// the deployed behavior.
var interrogativeTriggers = []string{"kapan", "dimana", "siapa", "berapa"}

const OffTopicResponse = `Maaf, saya adalah Glucare - asisten AI yang khusus membahas topik seputar **diabetes mellitus**.

Saya dapat membantu Anda dengan pertanyaan tentang:
🩸 Diabetes Tipe 1, Tipe 2, dan Gestasional
💉 Insulin dan pengobatan diabetes
🍽️ Diet dan nutrisi untuk penderita diabetes
🏃 Gaya hidup sehat dan olahraga
⚠️ Gejala dan komplikasi diabetes
🔬 Pemeriksaan gula darah (GDP, GDS, HbA1c)

Silakan ajukan pertanyaan seputar diabetes, dan saya akan dengan senang hati membantu! 😊`

// IsDiabetesRelated reports whether a free-text message is in-domain.
func IsDiabetesRelated(message string) bool {
	lower := strings.ToLower(message)

	for _, kw := range diabetesKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, p := range diabetesPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	for _, w := range interrogativeTriggers {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// SupportedTopics backs GET /topics.
func SupportedTopics() []string {
	return []string{
		"Diabetes Tipe 1",
		"Diabetes Tipe 2",
		"Diabetes Gestasional",
		"Gejala dan diagnosis diabetes",
		"Pengobatan dan manajemen diabetes",
		"Diet dan nutrisi untuk diabetes",
		"Olahraga dan gaya hidup sehat",
		"Komplikasi diabetes",
		"Pemeriksaan gula darah (GDP, GDS, HbA1c)",
		"Insulin dan obat diabetes",
	}
}

// SampleQuestions backs GET /topics.
func SampleQuestions() []string {
	return []string{
		"Apa gejala diabetes?",
		"Berapa kadar gula darah normal?",
		"Apa perbedaan diabetes tipe 1 dan tipe 2?",
		"Makanan apa yang baik untuk diabetes?",
		"Bagaimana cara mencegah diabetes?",
	}
}
