package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/internal/utils"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// The generation call is bounded; a timeout surfaces as an upstream
	// (502) outcome, not an internal error.
	requestTimeout = 10 * time.Second

	temperature     = 0.2
	topP            = 0.8
	topK            = 40
	maxOutputTokens = 2048
)

const systemInstruction = "You are a reference service for food ingredients and nutrients, " +
	"covering both modern nutrition and traditional Chinese medicine. " +
	"You respond with exactly one JSON object and no surrounding text, markdown or explanation."

type (
	GeneratorService interface {
		// GenerateItem returns the raw JSON object synthesized for the search
		// term. The reply's prose and code fencing are tolerated; the span
		// between the first '{' and the last '}' is the record. A literal
		// "error": marker anywhere in the reply means the generator flagged
		// the term as not a real item (domain.ErrInvalidItem).
		GenerateItem(ctx context.Context, searchTerm string) ([]byte, error)
	}

	geminiGenerator struct {
		apiKey  string
		model   string
		baseURL string
		client  *http.Client
	}
)

func NewGeminiGenerator() GeneratorService {
	baseURL := utils.GetConfig("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &geminiGenerator{
		apiKey:  utils.GetConfig("GEMINI_API_KEY"),
		model:   utils.GetConfig("GEMINI_MODEL"),
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func userPrompt(searchTerm string) string {
	return fmt.Sprintf(`Provide structured data for the food ingredient or nutrient named %q.

For an ingredient, reply with a JSON object with these keys:
"ItemType" ("ingredient"), "Name" (object with "English" required, "Chinese" and "Spanish" optional), "AlternateNames" (array of strings), "Description" (object with "English" required, "Chinese" and "Spanish" optional), "ThermalNature" (one of "Yin-Cold", "Yin-Cool", "Neutral", "Yang-Warm", "Yang-Hot"), "Element", "Category", "Origin", "Season", "Allergens" (strings), "FlavorProfile", "MedicinalProperties", "CulinaryUses", "PreparationTips", "DietaryRestrictions", "Substitutes", "CulinaryTechniques", "TopFoodSources" (arrays of strings), "NutritionalInfo", "StorageMethods", "CulturalSignificance", "HistoricalUsage", "EnvironmentalImpact" (objects), "TCM" (object with "Functions" required array, "HerbalFormulations" and "Meridians" optional arrays).

For a nutrient, reply with a JSON object with these keys:
"ItemType" ("nutrient"), "Name" (string), "Description" (string), "Type" (one of "vitamin", "mineral", "other"), "Functions", "Sources", "DeficiencySymptoms", "ExcessSymptoms", "TopFoodSources" (arrays of strings), "RecommendedIntake" (string).

Do not include any other keys. If the term is not a real food ingredient or nutrient, reply with {"error": "Invalid item"}.`, searchTerm)
}

func (g *geminiGenerator) GenerateItem(ctx context.Context, searchTerm string) ([]byte, error) {
	geminiURL := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, g.model, g.apiKey,
	)

	requestBody := map[string]interface{}{
		"system_instruction": map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": systemInstruction},
			},
		},
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": userPrompt(searchTerm)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     temperature,
			"topP":            topP,
			"topK":            topK,
			"maxOutputTokens": maxOutputTokens,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrGeneratorUnavailable, resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", domain.ErrGeneratorParse)
	}

	return extractRecord(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// extractRecord turns a free-text model reply into the raw JSON record. The
// "error": marker is checked before any parse attempt; it is a cheap signal
// from the model, not a schema check.
func extractRecord(reply string) ([]byte, error) {
	if strings.Contains(strings.ToLower(reply), `"error":`) {
		return nil, domain.ErrInvalidItem
	}

	first := strings.Index(reply, "{")
	last := strings.LastIndex(reply, "}")
	if first < 0 || last < first {
		return nil, fmt.Errorf("%w: no object span in reply", domain.ErrGeneratorParse)
	}

	span := []byte(reply[first : last+1])
	var probe map[string]interface{}
	if err := json.Unmarshal(span, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneratorParse, err)
	}

	return span, nil
}
