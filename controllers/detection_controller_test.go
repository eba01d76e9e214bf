package controllers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/zelphyx/Glucoin-AI/models"
	"github.com/zelphyx/Glucoin-AI/services"

	"github.com/gin-gonic/gin"
)

func newDetectionRouter(classifier *services.ClassifierService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	dc := NewDetectionController(classifier)
	r.GET("/health", dc.Health)
	r.POST("/detect/image", dc.DetectImage)
	r.POST("/detect/questionnaire/non-diabetic", dc.QuestionnaireNonDiabetic)
	r.POST("/detect/questionnaire/diabetic", dc.QuestionnaireDiabetic)
	r.POST("/detect/combined", dc.DetectCombined)
	return r
}

func unconfiguredClassifier(t *testing.T) *services.ClassifierService {
	t.Helper()
	t.Setenv("CLASSIFIER_URL", "")
	t.Setenv("CLASSIFIER_TOKEN", "")
	return services.NewClassifierService()
}

func fakeClassifier(t *testing.T, probability float64) *services.ClassifierService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"probability": probability})
	}))
	t.Cleanup(srv.Close)
	t.Setenv("CLASSIFIER_URL", srv.URL)
	t.Setenv("CLASSIFIER_TOKEN", "")
	return services.NewClassifierService()
}

// tonguePNG encodes a reddish, textured image that passes all tongue checks.
func tonguePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{200, 60, 60, 255})
			} else {
				img.Set(x, y, color.RGBA{150, 30, 100, 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func grayPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, data []byte, imageType, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="upload.png"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)

	if imageType != "" {
		w.WriteField("image_type", imageType)
	}
	w.Close()
	return &body, w.FormDataContentType()
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDetectionHealth(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["classifier_configured"] != false {
		t.Errorf("classifier_configured = %v, want false", body["classifier_configured"])
	}
}

func TestDetectImageRequiresFile(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	rec := postJSON(r, "/detect/image", "{}")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without a file", rec.Code)
	}
}

func TestDetectImageRejectsUnknownType(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	body, ct := multipartUpload(t, tonguePNG(t), "ear", "image/png")
	req := httptest.NewRequest("POST", "/detect/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for image_type=ear", rec.Code)
	}
}

func TestDetectImageRejectsNonImageUpload(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	body, ct := multipartUpload(t, []byte("not an image"), "tongue", "text/plain")
	req := httptest.NewRequest("POST", "/detect/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for non-image content type", rec.Code)
	}
}

func TestDetectImageRejectsUndecodableBytes(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	body, ct := multipartUpload(t, []byte("garbage bytes"), "tongue", "image/png")
	req := httptest.NewRequest("POST", "/detect/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for undecodable image", rec.Code)
	}
}

func TestDetectImageInvalidSubject(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	body, ct := multipartUpload(t, grayPNG(t), "tongue", "image/png")
	req := httptest.NewRequest("POST", "/detect/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// A failed validity check is a normal outcome, not an HTTP error.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res models.ImageDetectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Success || res.IsValidImage {
		t.Errorf("gray image accepted: %+v", res)
	}
	if res.ValidationConfidence == nil || *res.ValidationConfidence >= 0.5 {
		t.Errorf("validation_confidence = %v, want < 0.5", res.ValidationConfidence)
	}
	if !strings.Contains(res.Message, "lidah") {
		t.Errorf("message should name the subject in Indonesian: %q", res.Message)
	}
}

func TestDetectImageClassifierUnavailable(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	body, ct := multipartUpload(t, tonguePNG(t), "tongue", "image/png")
	req := httptest.NewRequest("POST", "/detect/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when classifier is not configured", rec.Code)
	}
}

func TestDetectImageSuccess(t *testing.T) {
	r := newDetectionRouter(fakeClassifier(t, 0.83))

	body, ct := multipartUpload(t, tonguePNG(t), "tongue", "image/png")
	req := httptest.NewRequest("POST", "/detect/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res models.ImageDetectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || !res.IsValidImage {
		t.Fatalf("result not successful: %+v", res)
	}
	if res.Probability == nil || *res.Probability != 0.83 {
		t.Errorf("probability = %v, want 0.83", res.Probability)
	}
	if res.Prediction != services.PredictionDiabetes {
		t.Errorf("prediction = %q, want %q", res.Prediction, services.PredictionDiabetes)
	}
	if res.RiskLevel != string(services.RiskHigh) {
		t.Errorf("risk_level = %q, want %q", res.RiskLevel, services.RiskHigh)
	}
	if res.ValidationConfidence == nil || *res.ValidationConfidence != 1.0 {
		t.Errorf("validation_confidence = %v, want 1.0", res.ValidationConfidence)
	}
}

const healthyNonDiabeticJSON = `{
	"penglihatan_buram": false,
	"sering_bak": false,
	"luka_lama_sembuh": false,
	"kesemutan": false,
	"obesitas": false,
	"sering_lapar": false,
	"berat_badan": 60,
	"tinggi_badan": 170,
	"riwayat_keluarga": false,
	"tekanan_darah_tinggi": false,
	"kolesterol_tinggi": false,
	"frekuensi_olahraga": 3,
	"pola_makan": 2
}`

func TestQuestionnaireNonDiabetic(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	rec := postJSON(r, "/detect/questionnaire/non-diabetic", healthyNonDiabeticJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res models.QuestionnaireResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success {
		t.Error("success = false")
	}
	if res.Score != 0 {
		t.Errorf("score = %v, want 0 for a healthy profile", res.Score)
	}
	if res.RiskLevel != string(services.RiskNone) {
		t.Errorf("risk_level = %q, want %q", res.RiskLevel, services.RiskNone)
	}
	if res.Interpretation == "" || len(res.Recommendations) == 0 {
		t.Error("interpretation and recommendations must be populated")
	}
}

func TestQuestionnaireNonDiabeticValidation(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	cases := map[string]string{
		"missing fields":     `{"berat_badan": 60}`,
		"weight below min":   strings.Replace(healthyNonDiabeticJSON, `"berat_badan": 60`, `"berat_badan": 10`, 1),
		"exercise above max": strings.Replace(healthyNonDiabeticJSON, `"frekuensi_olahraga": 3`, `"frekuensi_olahraga": 4`, 1),
	}
	for name, body := range cases {
		if rec := postJSON(r, "/detect/questionnaire/non-diabetic", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

const controlledDiabeticJSON = `{
	"peningkatan_bak": false,
	"kesemutan": false,
	"perubahan_berat": 0,
	"gula_darah_puasa": 90,
	"rutin_hba1c": true,
	"hasil_hba1c": 6.0,
	"tekanan_darah_sistolik": 120,
	"kondisi_kolesterol": 0,
	"konsumsi_obat": true,
	"pernah_hipoglikemia": false,
	"olahraga_rutin": true,
	"pola_makan": 2
}`

func TestQuestionnaireDiabetic(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	rec := postJSON(r, "/detect/questionnaire/diabetic", controlledDiabeticJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res models.QuestionnaireResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("score = %v, want 0 for a controlled profile", res.Score)
	}
	if res.RiskLevel != string(services.RiskNone) {
		t.Errorf("risk_level = %q", res.RiskLevel)
	}
}

func TestQuestionnaireDiabeticValidation(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	cases := map[string]string{
		"missing fields":      `{"gula_darah_puasa": 90}`,
		"glucose above range": strings.Replace(controlledDiabeticJSON, `"gula_darah_puasa": 90`, `"gula_darah_puasa": 600`, 1),
		"glucose below range": strings.Replace(controlledDiabeticJSON, `"gula_darah_puasa": 90`, `"gula_darah_puasa": 40`, 1),
		"systolic below min":  strings.Replace(controlledDiabeticJSON, `"tekanan_darah_sistolik": 120`, `"tekanan_darah_sistolik": 60`, 1),
		"hba1c above max":     strings.Replace(controlledDiabeticJSON, `"hasil_hba1c": 6.0`, `"hasil_hba1c": 20`, 1),
	}
	for name, body := range cases {
		if rec := postJSON(r, "/detect/questionnaire/diabetic", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestDetectCombined(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	rec := postJSON(r, "/detect/combined", `{
		"is_diabetic": false,
		"image_score": 0.9,
		"questionnaire": `+healthyNonDiabeticJSON+`
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res models.CombinedResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 0.70*0.9 + 0.30*0
	if math.Abs(res.FinalScore-0.63) > 1e-9 {
		t.Errorf("final_score = %v, want 0.63", res.FinalScore)
	}
	if res.RiskLevel != string(services.RiskModerate) {
		t.Errorf("risk_level = %q, want %q", res.RiskLevel, services.RiskModerate)
	}
	if res.QuestionnaireScore != 0 {
		t.Errorf("questionnaire_score = %v, want 0", res.QuestionnaireScore)
	}
}

func TestDetectCombinedWithoutImage(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	rec := postJSON(r, "/detect/combined", `{
		"is_diabetic": true,
		"questionnaire": `+controlledDiabeticJSON+`
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res models.CombinedResult
	json.Unmarshal(rec.Body.Bytes(), &res)
	if res.ImageScore != nil {
		t.Errorf("image_score = %v, want null", res.ImageScore)
	}
	if res.FinalScore != 0 {
		t.Errorf("final_score = %v, want the questionnaire score alone", res.FinalScore)
	}
}

func TestDetectCombinedValidation(t *testing.T) {
	r := newDetectionRouter(unconfiguredClassifier(t))

	cases := map[string]string{
		"missing is_diabetic":   `{"questionnaire": ` + healthyNonDiabeticJSON + `}`,
		"image_score above one": `{"is_diabetic": false, "image_score": 1.5, "questionnaire": ` + healthyNonDiabeticJSON + `}`,
		"wrong variant answers": `{"is_diabetic": true, "questionnaire": ` + healthyNonDiabeticJSON + `}`,
	}
	for name, body := range cases {
		if rec := postJSON(r, "/detect/combined", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}
