package models

// QuestionnaireNonDiabetic screens respondents without a diabetes diagnosis.
// Booleans and ordinal codes bind through pointers so that false/0 answers
// survive `required` validation; every field is mandatory and range-checked
// at the boundary, never clamped.
type QuestionnaireNonDiabetic struct {
	// Symptom flags
	PenglihatanBuram *bool `json:"penglihatan_buram" binding:"required"` // sudden blurred vision
	SeringBAK        *bool `json:"sering_bak" binding:"required"`        // frequent urination
	LukaLamaSembuh   *bool `json:"luka_lama_sembuh" binding:"required"`  // slow-healing wounds
	Kesemutan        *bool `json:"kesemutan" binding:"required"`         // tingling hands/feet
	Obesitas         *bool `json:"obesitas" binding:"required"`
	SeringLapar      *bool `json:"sering_lapar" binding:"required"` // hungry despite eating

	BeratBadan  float64 `json:"berat_badan" binding:"required,gte=20,lte=300"`   // kg
	TinggiBadan float64 `json:"tinggi_badan" binding:"required,gte=100,lte=250"` // cm

	// History flags
	RiwayatKeluarga    *bool `json:"riwayat_keluarga" binding:"required"` // family type-2 history
	TekananDarahTinggi *bool `json:"tekanan_darah_tinggi" binding:"required"`
	KolesterolTinggi   *bool `json:"kolesterol_tinggi" binding:"required"`

	// 0=never, 1=1-2x, 2=3-4x, 3=5+x per week
	FrekuensiOlahraga *int `json:"frekuensi_olahraga" binding:"required,gte=0,lte=3"`
	// 0=high sugar/carb, 1=balanced, 2=healthy
	PolaMakan *int `json:"pola_makan" binding:"required,gte=0,lte=2"`
}

// QuestionnaireDiabetic monitors respondents already diagnosed with diabetes.
type QuestionnaireDiabetic struct {
	PeningkatanBAK *bool `json:"peningkatan_bak" binding:"required"`
	Kesemutan      *bool `json:"kesemutan" binding:"required"`

	// 0=stable, 1=slight gain, 2=rapid loss, 3=rapid gain
	PerubahanBerat *int `json:"perubahan_berat" binding:"required,gte=0,lte=3"`

	GulaDarahPuasa float64 `json:"gula_darah_puasa" binding:"required,gte=50,lte=500"` // mg/dL

	RutinHBA1C *bool    `json:"rutin_hba1c" binding:"required"`
	HasilHBA1C *float64 `json:"hasil_hba1c" binding:"omitempty,gte=4,lte=15"` // %, only when tracked

	TekananDarahSistolik float64 `json:"tekanan_darah_sistolik" binding:"required,gte=80,lte=250"` // mmHg

	// 0=normal, 1=slightly high, 2=high
	KondisiKolesterol *int `json:"kondisi_kolesterol" binding:"required,gte=0,lte=2"`

	KonsumsiObat       *bool `json:"konsumsi_obat" binding:"required"`
	PernahHipoglikemia *bool `json:"pernah_hipoglikemia" binding:"required"`
	OlahragaRutin      *bool `json:"olahraga_rutin" binding:"required"`

	// 0=high sugar/carb, 1=controlled, 2=strict diet
	PolaMakan *int `json:"pola_makan" binding:"required,gte=0,lte=2"`
}
