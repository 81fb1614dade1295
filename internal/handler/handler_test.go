package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eatwise/internal/archiver"
	"eatwise/internal/assistant"
	"eatwise/internal/auth"
	"eatwise/internal/middleware"
	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/ocr"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const chipsReply = `{"product":{"name":"Classic Salted Potato Chips","net_weight_g":50},
"tracker_data":{"food":"Potato chips","quantity_g":30,"calories_kcal":160,"protein_g":2,"carbs_g":15,"fat_g":10}}`

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(context.Context, string) (string, error) {
	return f.reply, f.err
}

type fakeEngine struct {
	text string
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, in ocr.Input) (ocr.Result, error) {
	return ocr.Result{InputID: in.ID, PlainText: f.text}, nil
}

type testEnv struct {
	engine    *gin.Engine
	store     *storage.Store
	completer *fakeCompleter
	ocr       *fakeEngine
	issuer    *auth.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "eatwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		store:     store,
		completer: &fakeCompleter{reply: "Eat more vegetables."},
		ocr:       &fakeEngine{text: "Potato chips\nEnergy 540 kcal"},
		issuer:    issuer,
	}
	svc := assistant.New(env.completer, env.ocr, store, []string{"eng"}, zap.NewNop())
	images, err := archiver.New(filepath.Join(t.TempDir(), "labels"))
	require.NoError(t, err)
	h := New(store, issuer, svc, images, 1<<20)

	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/save-profile", h.SaveProfile)
	r.POST("/get-profile", h.GetProfile)
	r.POST("/ask-ai", h.AskAI)
	r.POST("/analyze-image", middleware.OptionalAuth(issuer), h.AnalyzeImage)
	r.GET("/ws/assistant", middleware.Auth(issuer), h.HandleAssistantConnection)
	r.GET("/api/discover/facts", h.Facts)

	api := r.Group("/api", middleware.Auth(issuer))
	api.GET("/profile", h.Profile)
	api.GET("/bmi", h.BMI)
	api.GET("/tracker", h.ListEntries)
	api.POST("/tracker", h.AddEntry)
	api.POST("/tracker/from-analysis", h.AddFromAnalysis)
	api.DELETE("/tracker/:id", h.DeleteEntry)
	api.POST("/tracker/reset", h.ResetDay)
	api.GET("/tracker/summary", h.Summary)
	api.GET("/focus", h.Focus)
	api.POST("/goal", h.SaveGoal)
	api.GET("/goal", h.GetGoal)
	api.GET("/tips", h.Tips)
	api.GET("/analyses", h.ListAnalyses)
	api.GET("/analyses/:id/image", h.AnalysisImage)
	api.POST("/assistant/ask", h.AssistantAsk)
	api.POST("/assistant/estimate", h.Estimate)
	api.POST("/assistant/snack", h.Snack)
	api.GET("/discover/insights", h.Insights)
	api.GET("/discover/snacks", h.SmartSnacks)
	api.GET("/discover/recipes", h.Recipes)

	env.engine = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/signup", "", CredentialsRequest{Email: email, Password: "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func ptr[T any](v T) *T { return &v }

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")
	assert.NotEmpty(t, token)

	w := env.do(t, http.MethodPost, "/signup", "", CredentialsRequest{Email: "ana@example.com", Password: "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/signup", "", CredentialsRequest{Email: "bo@example.com", Password: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/login", "", CredentialsRequest{Email: "ana@example.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[AuthResponse](t, w)
	assert.True(t, login.Success)
	assert.False(t, login.ProfileCompleted)
	claims, err := env.issuer.Validate(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	w = env.do(t, http.MethodPost, "/login", "", CredentialsRequest{Email: "ana@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/login", "", CredentialsRequest{Email: "nobody@example.com", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsProfileOnlyAccount(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/save-profile", "", SaveProfileRequest{
		Email:   "ghost@example.com",
		Profile: models.Profile{Name: ptr("Ghost")},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", CredentialsRequest{Email: "ghost@example.com", Password: ""})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, "/login", "", CredentialsRequest{Email: "ghost@example.com", Password: "guess"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	w := env.do(t, http.MethodGet, "/api/bmi", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Height and weight are required to calculate BMI", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/save-profile", "", SaveProfileRequest{
		Email: "ana@example.com",
		Profile: models.Profile{
			Name:     ptr("Ana"),
			Age:      ptr(30),
			Gender:   ptr("female"),
			Height:   ptr(170.0),
			Weight:   ptr(65.0),
			Diseases: []string{"diabetes"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profile saved successfully", decode[SuccessResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/get-profile", "", EmailRequest{Email: "ana@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[models.Profile](t, w)
	require.NotNil(t, p.Name)
	assert.Equal(t, "Ana", *p.Name)
	assert.Equal(t, []string{"diabetes"}, p.Diseases)

	w = env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	prof := decode[ProfileResponse](t, w)
	assert.True(t, prof.ProfileCompleted)
	require.NotNil(t, prof.BMI)
	assert.Equal(t, nutrition.Normal, prof.BMI.Category)

	w = env.do(t, http.MethodGet, "/api/bmi", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 22.5, decode[nutrition.BMIResult](t, w).Value, 0.1)

	w = env.do(t, http.MethodPost, "/login", "", CredentialsRequest{Email: "ana@example.com", Password: "secret123"})
	assert.True(t, decode[AuthResponse](t, w).ProfileCompleted)
}

func TestSaveProfileValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/save-profile", "", SaveProfileRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/save-profile", "", SaveProfileRequest{
		Email:   "ana@example.com",
		Profile: models.Profile{Age: ptr(-1)},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/get-profile", "", EmailRequest{Email: "missing@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode[ErrorResponse](t, w).Message)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/tracker", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodGet, "/api/tracker", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTrackerFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	w := env.do(t, http.MethodPost, "/api/tracker", token, EntryRequest{Food: "Oatmeal", Calories: 389})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all fields", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/api/tracker", token, EntryRequest{
		Food: "Oatmeal", Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9, MealType: "brunch",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/tracker", token, EntryRequest{
		Food: "Oatmeal", Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	oats := decode[models.FoodEntry](t, w)
	assert.Equal(t, 100.0, oats.QuantityG)
	assert.Equal(t, models.SourceManual, oats.Source)

	w = env.do(t, http.MethodPost, "/api/tracker", token, EntryRequest{
		Food: "Egg", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/tracker", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[EntriesResponse](t, w)
	assert.Len(t, list.Entries, 2)
	assert.Equal(t, time.Now().Format(models.DayLayout), list.Date)

	w = env.do(t, http.MethodGet, "/api/tracker/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[nutrition.Summary](t, w)
	assert.Equal(t, 2, sum.Entries)
	assert.InDelta(t, 544, sum.Totals.Calories, 0.001)
	assert.Equal(t, nutrition.DefaultTargets, sum.Targets)
	require.Len(t, sum.ByFood, 2)
	assert.Equal(t, "Oatmeal", sum.ByFood[0].Food)

	w = env.do(t, http.MethodGet, "/api/focus", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2000.0, decode[nutrition.Focus](t, w).Calories.Target)

	w = env.do(t, http.MethodDelete, "/api/tracker/"+jsonNumber(oats.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/tracker/"+jsonNumber(oats.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodDelete, "/api/tracker/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/tracker/reset", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[ResetResponse](t, w).Removed)

	w = env.do(t, http.MethodGet, "/api/tracker?date=15-10-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackerIsPerUser(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signup(t, "ana@example.com")
	bo := env.signup(t, "bo@example.com")

	w := env.do(t, http.MethodPost, "/api/tracker", ana, EntryRequest{
		Food: "Egg", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	egg := decode[models.FoodEntry](t, w)

	w = env.do(t, http.MethodGet, "/api/tracker", bo, nil)
	assert.Empty(t, decode[EntriesResponse](t, w).Entries)
	w = env.do(t, http.MethodDelete, "/api/tracker/"+jsonNumber(egg.ID), bo, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoalFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	w := env.do(t, http.MethodGet, "/api/goal", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No goal set", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/api/goal", token, GoalRequest{CurrentWeight: 80})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all fields", decode[ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodPost, "/api/goal", token, GoalRequest{
		CurrentWeight: 80, TargetWeight: 75, TimeFrame: 10, ActivityLevel: 2.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/goal", token, GoalRequest{
		CurrentWeight: 80, TargetWeight: 75, TimeFrame: 10, ActivityLevel: 1.55,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	goal := decode[models.WeightGoal](t, w)
	assert.Equal(t, models.GoalLoss, goal.GoalType)
	assert.Less(t, goal.TargetCalories, goal.MaintenanceCalories)

	w = env.do(t, http.MethodGet, "/api/goal", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, goal.TargetCalories, decode[models.WeightGoal](t, w).TargetCalories)

	w = env.do(t, http.MethodGet, "/api/focus", token, nil)
	assert.Equal(t, goal.TargetCalories, decode[nutrition.Focus](t, w).Calories.Target)
}

func TestTips(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")
	env.do(t, http.MethodPost, "/save-profile", "", SaveProfileRequest{
		Email:   "ana@example.com",
		Profile: models.Profile{Diseases: []string{"diabetes"}},
	})

	w := env.do(t, http.MethodGet, "/api/tips", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tips := decode[TipsResponse](t, w).Tips
	assert.Equal(t, nutrition.Tips([]string{"diabetes"}), tips)
}

func TestAskAI(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/ask-ai", "", AskRequest{Message: "Is rice healthy?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Eat more vegetables.", decode[ReplyResponse](t, w).Reply)

	env.completer.err = errors.New("down")
	w = env.do(t, http.MethodPost, "/ask-ai", "", AskRequest{Message: "Is rice healthy?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, assistant.DemoReply, decode[ReplyResponse](t, w).Reply)
}

func labelPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (e *testEnv) upload(t *testing.T, token, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, "label.png")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestAnalyzeImage(t *testing.T) {
	env := newTestEnv(t)
	env.completer.reply = chipsReply

	w := env.upload(t, "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No image uploaded.", decode[ReplyResponse](t, w).Reply)

	w = env.upload(t, "", "image", []byte("not an image"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Could not analyze the image. Please upload a clearer food label.", decode[ReplyResponse](t, w).Reply)

	w = env.upload(t, "", "image", bytes.Repeat([]byte{0}, 1<<20+512<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = env.upload(t, "", "image", labelPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	anon := decode[assistant.LabelResult](t, w)
	assert.Equal(t, "Potato chips Energy 540 kcal", anon.ExtractedText)
	assert.Empty(t, anon.AnalysisID)
	require.NotNil(t, anon.Analysis)
}

func TestAnalyzeThenTrackAndHistory(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	w := env.do(t, http.MethodPost, "/api/tracker/from-analysis", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Analyze a food item first.", decode[ErrorResponse](t, w).Message)
	w = env.do(t, http.MethodPost, "/api/assistant/snack", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.completer.reply = chipsReply
	w = env.upload(t, token, "image", labelPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[assistant.LabelResult](t, w)
	assert.NotEmpty(t, res.AnalysisID)

	w = env.do(t, http.MethodPost, "/api/tracker/from-analysis", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := decode[models.FoodEntry](t, w)
	assert.Equal(t, "Potato chips", entry.Food)
	assert.Equal(t, 160.0, entry.Calories)
	assert.Equal(t, models.SourceAnalysis, entry.Source)

	w = env.do(t, http.MethodGet, "/api/analyses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	hist := decode[HistoryResponse](t, w).Analyses
	require.Len(t, hist, 1)
	assert.Equal(t, res.AnalysisID, hist[0].ID)

	w = env.do(t, http.MethodGet, "/api/analyses?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/analyses/"+res.AnalysisID+"/image", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, labelPNG(t), w.Body.Bytes())

	other := env.signup(t, "bo@example.com")
	w = env.do(t, http.MethodGet, "/api/analyses/"+res.AnalysisID+"/image", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.completer.reply = "Try Greek yogurt."
	w = env.do(t, http.MethodPost, "/api/assistant/snack", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Try Greek yogurt.", decode[assistant.Reply](t, w).Text)
}

func TestAssistantAsk(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	w := env.do(t, http.MethodPost, "/api/assistant/ask", token, AskRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message is required", decode[ErrorResponse](t, w).Message)

	env.do(t, http.MethodPost, "/api/tracker", token, EntryRequest{
		Food: "Egg", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11,
	})
	w = env.do(t, http.MethodPost, "/api/assistant/ask", token, AskRequest{Message: "Can I eat more today?"})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[assistant.Reply](t, w)
	assert.Equal(t, "Eat more vegetables.", reply.Text)
	assert.Equal(t, "You’ve consumed about 155 kcal today.", reply.Note)
}

func TestEstimate(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	w := env.do(t, http.MethodPost, "/api/assistant/estimate", token, EstimateRequest{Food: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Food name is required", decode[ErrorResponse](t, w).Message)

	env.completer.reply = `{"calories": 130, "protein": 2.7, "carbs": 28, "fat": 0.3}`
	w = env.do(t, http.MethodPost, "/api/assistant/estimate", token, EstimateRequest{Food: "rice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 130.0, decode[nutrition.Estimate](t, w).Calories)

	env.completer.reply = "I am not sure."
	w = env.do(t, http.MethodPost, "/api/assistant/estimate", token, EstimateRequest{Food: "rice"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDiscover(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	env.completer.reply = `["Drink water", "Walk after meals"]`
	w := env.do(t, http.MethodGet, "/api/discover/insights", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Drink water", "Walk after meals"}, decode[InsightsResponse](t, w).Insights)

	env.completer.err = errors.New("down")
	w = env.do(t, http.MethodGet, "/api/discover/insights", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do(t, http.MethodGet, "/api/discover/snacks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	snacks := decode[SnacksResponse](t, w)
	assert.True(t, snacks.Fallback)
	assert.Equal(t, nutrition.DefaultSnacks, snacks.Snacks)

	w = env.do(t, http.MethodGet, "/api/discover/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decode[RecipesResponse](t, w)
	assert.True(t, recipes.Fallback)
	assert.Equal(t, nutrition.DefaultRecipes, recipes.Recipes)

	w = env.do(t, http.MethodGet, "/api/discover/facts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, nutrition.HealthFacts, decode[FactsResponse](t, w).Facts)
}

func TestAssistantWebsocket(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ana@example.com")

	srv := httptest.NewServer(env.engine)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/assistant"

	_, resp, err := websocket.DefaultDialer.Dial(base, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(base+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome ReplyResponse
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, welcomeMessage, welcome.Reply)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("   ")))
	var bad ErrorResponse
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "Message is required", bad.Message)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("What should I eat?")))
	var reply assistant.Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "Eat more vegetables.", reply.Text)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
