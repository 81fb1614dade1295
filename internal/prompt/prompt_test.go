package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLabelAnalysis(t *testing.T) {
	out, err := Render(LabelAnalysis, LabelData{Text: "Potatoes, Palmolein oil, Salt"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "You are an AI-native nutrition co-pilot."))
	assert.Contains(t, out, `"tracker_data": {`)
	assert.True(t, strings.HasSuffix(out, "Food label text:\nPotatoes, Palmolein oil, Salt\n"))
}

func TestRenderNutritionLookup(t *testing.T) {
	out, err := Render(NutritionLookup, FoodData{Food: "banana"})
	require.NoError(t, err)
	assert.Contains(t, out, `For the food "banana", provide ONLY a JSON response`)
}

func TestRenderContextQuestion(t *testing.T) {
	out, err := Render(ContextQuestion, ContextData{
		Question: "Can I eat more?",
		Calories: 1250,
		Protein:  60.5,
	})
	require.NoError(t, err)
	want := `User question: Can I eat more?

Context:
- Last analyzed food: None
- Calories consumed today: 1250 kcal
- Protein: 60.5 g
- Carbs: 0 g
- Fat: 0 g

If context is relevant, use it.`
	assert.Equal(t, want, out)
}

func TestRenderSnackQuestion(t *testing.T) {
	out, err := Render(SnackQuestion, ContextData{LastFood: "Potato chips"})
	require.NoError(t, err)
	assert.Equal(t, "Suggest a healthy snack considering I ate Potato chips", out)
}

func TestRenderProfilePrompts(t *testing.T) {
	out, err := Render(Insights, ProfileData{Name: "Ana", Diseases: []string{"diabetes", "asthma"}, Calories: 1499.5, Protein: 40.2})
	require.NoError(t, err)
	assert.Contains(t, out, "- Name: Ana\n- Age: Unknown\n- Health Conditions: diabetes,asthma\n")
	assert.Contains(t, out, "- Calories consumed today: 1500\n- Protein consumed: 40g")

	out, err = Render(SmartSnacks, ProfileData{})
	require.NoError(t, err)
	assert.Contains(t, out, "health conditions: general health.")

	out, err = Render(Recipes, ProfileData{Diseases: []string{"hypertension", "diabetes"}})
	require.NoError(t, err)
	assert.Contains(t, out, "Suggest 3 healthy recipes for someone with these health conditions: hypertension, diabetes.")
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := Render(Kind("nope"), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGet(t *testing.T) {
	tmpl, ok := Get(SnackQuestion)
	require.True(t, ok)
	assert.Equal(t, "Snack Question", tmpl.Name)

	_, ok = Get(Kind("nope"))
	assert.False(t, ok)
}
