package services

import (
	"github.com/zelphyx/Glucoin-AI/models"
	"github.com/zelphyx/Glucoin-AI/utils"
)

// RiskLevel is the ordinal band a score falls in. Wire values keep the
// Indonesian labels the mobile clients already consume.
type RiskLevel string

const (
	RiskNone     RiskLevel = "tidak"
	RiskLow      RiskLevel = "rendah"
	RiskModerate RiskLevel = "sedang"
	RiskHigh     RiskLevel = "tinggi"
)

// ClassifyRisk maps a score in [0,1] to its band. Boundaries are closed on
// the lower end and shared by every caller (questionnaire, image, combined).
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score >= 0.75:
		return RiskHigh
	case score >= 0.50:
		return RiskModerate
	case score >= 0.25:
		return RiskLow
	default:
		return RiskNone
	}
}

// Both questionnaire variants normalize against the same denominator.
const questionnaireMaxScore = 12.0

// A contribution is one independent predicate→weight rule over the answers.
// Keeping them as named entries keeps each rule testable on its own.
type nonDiabeticRule struct {
	name   string
	points func(q *models.QuestionnaireNonDiabetic) float64
}

type diabeticRule struct {
	name   string
	points func(q *models.QuestionnaireDiabetic) float64
}

func flagPoints(b *bool, pts float64) float64 {
	if b != nil && *b {
		return pts
	}
	return 0
}

var nonDiabeticRules = []nonDiabeticRule{
	{"penglihatan_buram", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.PenglihatanBuram, 1) }},
	{"sering_bak", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.SeringBAK, 1) }},
	{"luka_lama_sembuh", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.LukaLamaSembuh, 1) }},
	{"kesemutan", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.Kesemutan, 1) }},
	{"obesitas", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.Obesitas, 1) }},
	{"sering_lapar", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.SeringLapar, 1) }},
	{"bmi", func(q *models.QuestionnaireNonDiabetic) float64 {
		bmi := utils.CalculateBMI(q.TinggiBadan, q.BeratBadan)
		switch {
		case bmi >= 30:
			return 1.5
		case bmi >= 25:
			return 1
		default:
			return 0
		}
	}},
	{"riwayat_keluarga", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.RiwayatKeluarga, 1.5) }},
	{"tekanan_darah_tinggi", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.TekananDarahTinggi, 1) }},
	{"kolesterol_tinggi", func(q *models.QuestionnaireNonDiabetic) float64 { return flagPoints(q.KolesterolTinggi, 1) }},
	{"frekuensi_olahraga", func(q *models.QuestionnaireNonDiabetic) float64 {
		switch *q.FrekuensiOlahraga {
		case 0:
			return 1
		case 1:
			return 0.5
		default:
			return 0
		}
	}},
	{"pola_makan", func(q *models.QuestionnaireNonDiabetic) float64 {
		switch *q.PolaMakan {
		case 0:
			return 1
		case 1:
			return 0.5
		default:
			return 0
		}
	}},
}

var diabeticRules = []diabeticRule{
	{"peningkatan_bak", func(q *models.QuestionnaireDiabetic) float64 { return flagPoints(q.PeningkatanBAK, 1) }},
	{"kesemutan", func(q *models.QuestionnaireDiabetic) float64 { return flagPoints(q.Kesemutan, 1) }},
	{"perubahan_berat", func(q *models.QuestionnaireDiabetic) float64 {
		switch {
		case *q.PerubahanBerat >= 2: // rapid loss or rapid gain
			return 1.5
		case *q.PerubahanBerat == 1:
			return 0.5
		default:
			return 0
		}
	}},
	{"gula_darah_puasa", func(q *models.QuestionnaireDiabetic) float64 {
		switch {
		case q.GulaDarahPuasa >= 180:
			return 2
		case q.GulaDarahPuasa >= 130:
			return 1.5
		case q.GulaDarahPuasa >= 100:
			return 1
		default:
			return 0
		}
	}},
	{"hba1c", func(q *models.QuestionnaireDiabetic) float64 {
		if *q.RutinHBA1C {
			if q.HasilHBA1C == nil {
				return 0
			}
			switch {
			case *q.HasilHBA1C >= 9:
				return 2
			case *q.HasilHBA1C >= 7:
				return 1
			default:
				return 0
			}
		}
		// not monitoring at all counts against control
		return 0.5
	}},
	{"tekanan_darah_sistolik", func(q *models.QuestionnaireDiabetic) float64 {
		switch {
		case q.TekananDarahSistolik >= 140:
			return 1
		case q.TekananDarahSistolik >= 130:
			return 0.5
		default:
			return 0
		}
	}},
	{"kondisi_kolesterol", func(q *models.QuestionnaireDiabetic) float64 {
		switch *q.KondisiKolesterol {
		case 2:
			return 1
		case 1:
			return 0.5
		default:
			return 0
		}
	}},
	{"konsumsi_obat", func(q *models.QuestionnaireDiabetic) float64 {
		if !*q.KonsumsiObat {
			return 0.5
		}
		return 0
	}},
	{"pernah_hipoglikemia", func(q *models.QuestionnaireDiabetic) float64 { return flagPoints(q.PernahHipoglikemia, 1) }},
	{"olahraga_rutin", func(q *models.QuestionnaireDiabetic) float64 {
		if !*q.OlahragaRutin {
			return 1
		}
		return 0
	}},
	{"pola_makan", func(q *models.QuestionnaireDiabetic) float64 {
		switch *q.PolaMakan {
		case 0:
			return 1
		case 1:
			return 0.5
		default:
			return 0
		}
	}},
}

// ScoreNonDiabetic computes the screening risk score in [0,1] for a
// respondent without a diabetes diagnosis.
func ScoreNonDiabetic(q *models.QuestionnaireNonDiabetic) float64 {
	var sum float64
	for _, r := range nonDiabeticRules {
		sum += r.points(q)
	}
	return clampScore(sum / questionnaireMaxScore)
}

// ScoreDiabetic computes the severity score in [0,1] for a respondent
// already diagnosed with diabetes.
func ScoreDiabetic(q *models.QuestionnaireDiabetic) float64 {
	var sum float64
	for _, r := range diabeticRules {
		sum += r.points(q)
	}
	return clampScore(sum / questionnaireMaxScore)
}

func clampScore(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	return s
}

// CombineScores blends an optional image-classifier probability with the
// questionnaire score: 70% image + 30% questionnaire when an image score is
// present, otherwise the questionnaire score alone. Precondition: both
// inputs already lie in [0,1]; the combiner does not re-validate.
func CombineScores(questionnaireScore float64, imageScore *float64) float64 {
	if imageScore != nil {
		return 0.70*(*imageScore) + 0.30*questionnaireScore
	}
	return questionnaireScore
}

// Interpret returns the band's interpretation sentence for the variant.
func Interpret(score float64, isDiabetic bool) string {
	band := ClassifyRisk(score)
	if isDiabetic {
		switch band {
		case RiskHigh:
			return "DIABETES TIDAK TERKONTROL - Kondisi diabetes kurang terkontrol dengan baik. Diperlukan tindakan segera."
		case RiskModerate:
			return "DIABETES PERLU PERHATIAN - Ada beberapa aspek yang perlu diperbaiki."
		case RiskLow:
			return "DIABETES CUKUP TERKONTROL - Kondisi cukup baik, pertahankan!"
		default:
			return "DIABETES TERKONTROL BAIK - Diabetes terkontrol dengan baik."
		}
	}
	switch band {
	case RiskHigh:
		return "RISIKO SANGAT TINGGI - Risiko sangat tinggi terkena diabetes. Diperlukan tindakan segera."
	case RiskModerate:
		return "RISIKO TINGGI - Risiko tinggi terkena diabetes."
	case RiskLow:
		return "RISIKO SEDANG - Ada beberapa faktor risiko yang perlu diperhatikan."
	default:
		return "RISIKO RENDAH - Risiko diabetes rendah. Pertahankan pola hidup sehat!"
	}
}

// Recommend returns the band's ordered recommendation list for the variant.
func Recommend(score float64, isDiabetic bool) []string {
	band := ClassifyRisk(score)
	if isDiabetic {
		switch band {
		case RiskHigh:
			return []string{
				"Konsultasi dengan dokter/endokrinolog secepatnya",
				"Review dosis obat/insulin",
				"Periksa gula darah lebih sering",
				"Evaluasi pola makan dan olahraga",
				"Periksa komplikasi (mata, ginjal, kaki)",
			}
		case RiskModerate:
			return []string{
				"Kontrol rutin ke dokter",
				"Jaga pola makan rendah gula/karbo",
				"Tingkatkan aktivitas fisik",
				"Pantau gula darah secara teratur",
			}
		case RiskLow:
			return []string{
				"Lanjutkan pengobatan sesuai anjuran dokter",
				"Pertahankan pola hidup sehat",
				"Kontrol rutin sesuai jadwal",
			}
		default:
			return []string{
				"Pertahankan pola makan sehat",
				"Olahraga teratur",
				"Minum obat sesuai anjuran",
			}
		}
	}
	switch band {
	case RiskHigh:
		return []string{
			"Periksa gula darah puasa dan HbA1c segera",
			"Konsultasi ke dokter secepatnya",
			"Kurangi konsumsi gula dan karbohidrat",
			"Mulai program olahraga teratur",
			"Turunkan berat badan jika berlebih",
		}
	case RiskModerate:
		return []string{
			"Periksa gula darah untuk skrining",
			"Konsultasi ke dokter untuk evaluasi",
			"Mulai pola hidup sehat",
			"Olahraga minimal 3x seminggu",
		}
	case RiskLow:
		return []string{
			"Periksa gula darah rutin (1x setahun)",
			"Jaga pola makan seimbang",
			"Olahraga teratur",
		}
	default:
		return []string{
			"Tetap jaga pola makan sehat",
			"Olahraga teratur",
			"Periksa kesehatan rutin tahunan",
		}
	}
}
